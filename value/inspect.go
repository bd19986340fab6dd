package value

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Inspect renders v the way diagnostics show runtime values
func Inspect(v any) string {
	sb := &strings.Builder{}
	inspectTo(sb, v, 0)
	return sb.String()
}

// maxInspectDepth stops rendering self-referencing containers
const maxInspectDepth = 8

func inspectTo(sb *strings.Builder, v any, depth int) {
	if depth > maxInspectDepth {
		sb.WriteString("...")
		return
	}
	switch v := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case string:
		sb.WriteString(strconv.Quote(v))
	case Symbol:
		sb.WriteString(":" + string(v))
	case Module:
		sb.WriteString(v.Name)
	case *Object:
		if v == nil {
			sb.WriteString("nil")
			return
		}
		sb.WriteString("#<" + v.Class)
		for i, name := range sortedNames(v.Ivars) {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(" @" + name + "=")
			inspectTo(sb, v.Ivars[name], depth+1)
		}
		sb.WriteString(">")
	case Double:
		sb.WriteString("#<Double " + strconv.Quote(v.Name) + ">")
	case Range:
		inspectTo(sb, v.Begin, depth+1)
		if v.Exclusive {
			sb.WriteString("...")
		} else {
			sb.WriteString("..")
		}
		inspectTo(sb, v.End, depth+1)
	case *Enumerator:
		if v.Infinite {
			sb.WriteString("#<Enumerator: (infinite)>")
		} else {
			sb.WriteString("#<Enumerator: ...>")
		}
	case error:
		sb.WriteString("#<" + reflect.TypeOf(v).String() + ": " + v.Error() + ">")
	default:
		if arr, ok := AsArray(v); ok {
			sb.WriteString("[")
			for i, elem := range arr {
				if i > 0 {
					sb.WriteString(", ")
				}
				inspectTo(sb, elem, depth+1)
			}
			sb.WriteString("]")
			return
		}
		if m, ok := AsMapping(v); ok {
			inspectMapping(sb, m, depth)
			return
		}
		if f, ok := asFloat(v); ok && ClassOf(v) == Float {
			sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		_, _ = fmt.Fprint(sb, v)
	}
}

func inspectMapping(sb *strings.Builder, m Mapping, depth int) {
	if m.Len() == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{")
	for i, k := range m.Keys() {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		if sym, ok := k.(Symbol); ok {
			sb.WriteString(string(sym) + ": ")
		} else {
			inspectTo(sb, k, depth+1)
			sb.WriteString(" => ")
		}
		v, _ := m.Get(k)
		inspectTo(sb, v, depth+1)
	}
	sb.WriteString(" }")
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
