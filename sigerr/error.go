package sigerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors accumulates the diagnostics of a call. A nil *Errors is empty.
type Errors struct {
	errs []CheckError
}

func (r *Errors) With(err ...CheckError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []CheckError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) Len() int {
	if r == nil {
		return 0
	}
	return len(r.errs)
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Codes lists the code of each error, in order
func (r *Errors) Codes() []ErrCode {
	codes := make([]ErrCode, 0, r.Len())
	for _, e := range r.Errors() {
		codes = append(codes, e.Code())
	}
	return codes
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}

// TypeError is returned to hosts when a call does not conform to its signature
type TypeError struct {
	Errors []CheckError
}

func (e *TypeError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "type error detected: [" + strings.Join(msgs, ", ") + "]"
}
