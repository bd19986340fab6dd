// Package tester keeps the checkers installed for classes under test, and checks the calls
// a host reports to them
package tester

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
	"github.com/google/uuid"
)

// ErrNotSelected is returned when installing a checker for a class the Tester's filter skips
var ErrNotSelected = errors.New("class is not a test target")

type target struct {
	receiver check.Receiver
	checker  *check.Checker
	methods  types.Fields[[]types.MethodType]
}

// Tester is safe for concurrent use
type Tester struct {
	cfg     check.Config
	filter  func(class string) bool
	metrics *Metrics
	logger  *slog.Logger

	mu      sync.RWMutex
	targets map[uuid.UUID]*target
}

type Option func(*Tester)

// WithFilter only lets classes for which selects is true be installed
func WithFilter(selects func(class string) bool) Option {
	return func(t *Tester) { t.filter = selects }
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tester) { t.metrics = m }
}

// New returns a Tester whose checkers use cfg, with the receiver of each installation
func New(cfg check.Config, opts ...Option) *Tester {
	if cfg.Defs == nil {
		cfg.Defs = definition.Core()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	t := &Tester{
		cfg:     cfg,
		logger:  logger.With("section", "tester"),
		targets: make(map[uuid.UUID]*target),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Install registers a checker for the methods of recv, and returns the key calls to
// those methods should be reported with
func (t *Tester) Install(recv check.Receiver) (uuid.UUID, error) {
	if t.filter != nil && !t.filter(recv.Class) {
		return uuid.Nil, fmt.Errorf("installing %s: %w", recv.Class, ErrNotSelected)
	}
	owner := recv.Class
	if recv.Singleton {
		owner = definition.SingletonName(recv.Class)
	}
	cfg := t.cfg
	cfg.Self = recv
	tg := &target{
		receiver: recv,
		checker:  check.New(cfg),
		methods:  t.cfg.Defs.MembersOf(owner),
	}

	key := uuid.New()
	t.mu.Lock()
	t.targets[key] = tg
	t.mu.Unlock()

	t.logger.Info("setting up hooks", "class", recv.Class, "singleton", recv.Singleton, "methods", tg.methods.Len(), "key", key)
	return key, nil
}

func (t *Tester) Uninstall(key uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.targets, key)
}

// Targets lists the receivers checkers are installed for
func (t *Tester) Targets() []check.Receiver {
	t.mu.RLock()
	defer t.mu.RUnlock()
	recvs := make([]check.Receiver, 0, len(t.targets))
	for _, tg := range t.targets {
		recvs = append(recvs, tg.receiver)
	}
	return recvs
}

// Notify checks a call reported for the installation key.
// It returns a *sigerr.TypeError if the call does not conform to the declared overloads
// of its method. Calls to methods without a signature are not checked.
func (t *Tester) Notify(key uuid.UUID, trace call.Trace) error {
	t.mu.RLock()
	tg, ok := t.targets[key]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no checker installed under key %s", key)
	}

	overloads, ok := tg.methods.Get(trace.MethodName)
	if !ok {
		t.logger.Debug("method has no signature, not checking", "method", tg.receiver.MethodName(trace.MethodName))
		return nil
	}
	errs := tg.checker.Call(trace, overloads)
	t.metrics.recordCall(tg.receiver.Class, errs.HasError())
	if !errs.HasError() {
		return nil
	}
	for _, err := range errs.Errors() {
		t.metrics.recordError(tg.receiver.Class, err.Code().String())
	}
	t.logger.Debug("call does not conform", "method", tg.receiver.MethodName(trace.MethodName), "errors", errs)
	return &sigerr.TypeError{Errors: errs.Errors()}
}
