package config

import "fmt"

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindNil ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

// Value is a closed variant for extension settings: collaborator-defined
// configuration that has no schema of its own (code-quality, browser, ...).
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

func String(s string) Value       { return Value{kind: KindString, str: s} }
func Int(i int) Value             { return Value{kind: KindInt, num: float64(i)} }
func Float(f float64) Value       { return Value{kind: KindFloat, num: f} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func List(vs ...Value) Value      { return Value{kind: KindList, list: vs} }
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNil() bool     { return v.kind == KindNil }

func (v Value) Int() int        { return int(v.num) }
func (v Value) Float() float64  { return v.num }
func (v Value) Bool() bool      { return v.b }
func (v Value) List() []Value   { return v.list }

// String renders any kind, so %v formatting of a non-string Value is
// never silently empty. String-kind values render as their raw text.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindString:
		return v.str
	default:
		return fmt.Sprint(v.Any())
	}
}

func (v Value) Map() map[string]Value {
	if v.m == nil {
		return nil
	}
	out := make(map[string]Value, len(v.m))
	for k, val := range v.m {
		out[k] = val
	}
	return out
}

// FromAny converts a decoded YAML value into a Value. Unsupported types
// degrade to their string representation rather than failing the load.
func FromAny(raw interface{}) Value {
	switch val := raw.(type) {
	case nil:
		return Value{}
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int64:
		return Int(int(val))
	case float64:
		return Float(val)
	case []interface{}:
		items := make([]Value, 0, len(val))
		for _, item := range val {
			items = append(items, FromAny(item))
		}
		return List(items...)
	case map[string]interface{}:
		m := make(map[string]Value, len(val))
		for k, item := range val {
			m[k] = FromAny(item)
		}
		return Map(m)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// Any converts a Value back into a plain Go value for serialization.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return int(v.num)
	case KindFloat:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Any())
		}
		return out
	case KindMap:
		out := make(map[string]interface{}, len(v.m))
		for k, item := range v.m {
			out[k] = item.Any()
		}
		return out
	default:
		return nil
	}
}
