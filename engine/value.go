package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"math"
	"strconv"
	"strings"
)

type contextKey string

const commandIdKey contextKey = "commandId"

func NewCommandId() string {
	return uuid.NewString()
}

func WithCommandId(ctx context.Context, commandId string) context.Context {
	return context.WithValue(ctx, commandIdKey, commandId)
}

func CommandIdFromContext(ctx context.Context) string {
	v, ok := ctx.Value(commandIdKey).(string)
	if !ok {
		return ""
	}
	return v
}

type Kind uint8

const (
	Invalid Kind = iota
	String
	Int
	Float
	Boolean
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int64"
	case Float:
		return "float64"
	case Boolean:
		return "boolean"
	default:
		return "invalid"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Value is the element type of stacks managed through the command language:
// a compact tagged union for string | int64 | float64 | bool.
type Value struct {
	k Kind
	// Only one of these is active, based on k.
	s string
	i int64
	f float64
	b bool
}

// --- Constructors ---

func NewStringValue(v string) Value { return Value{k: String, s: v} }
func NewIntValue(v int64) Value     { return Value{k: Int, i: v} }
func NewFloatValue(v float64) Value { return Value{k: Float, f: v} }
func NewBooleanValue(v bool) Value  { return Value{k: Boolean, b: v} }

// --- Introspection ---

func (v Value) Kind() Kind    { return v.k }
func (v Value) IsValid() bool { return v.k != Invalid }

func (v Value) IsNumeric() bool {
	return v.k == Int || v.k == Float
}

// --- Conversion ---

func (v Value) ToInt() int64 {
	switch v.k {
	case Float:
		panic("attempt to convert float to int")
	case Int:
		return v.i
	case String:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0
		}
		return i
	case Boolean:
		if v.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (v Value) ToFloat() float64 {
	switch v.k {
	case Float:
		return v.f
	case Int:
		return float64(v.i)
	case String:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0
		}
		return f
	case Boolean:
		if v.b {
			return 1.0
		}
		return 0.0
	default:
		return 0.0
	}
}

// ToBoolean reports the truthiness of v: non-zero numbers, true and
// non-empty strings are true.
func (v Value) ToBoolean() bool {
	switch v.k {
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0 && !math.IsNaN(v.f)
	case Boolean:
		return v.b
	case String:
		return v.s != ""
	default:
		return false
	}
}

// --- Accessors (type-safe) ---

func (v Value) StringVal() (string, bool)  { return v.s, v.k == String }
func (v Value) IntVal() (int64, bool)      { return v.i, v.k == Int }
func (v Value) FloatVal() (float64, bool)  { return v.f, v.k == Float }
func (v Value) BooleanVal() (bool, bool)   { return v.b, v.k == Boolean }

// String implements fmt.Stringer. Strings are quoted so that "1" and 1 stay
// distinguishable in the diagnostic output.
func (v Value) String() string {
	switch v.k {
	case String:
		return strconv.Quote(v.s)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// Equal compares kind and payload. Ints and floats are never equal to each
// other here; use Compare for numeric comparison across kinds.
func (v Value) Equal(u Value) bool {
	if v.k != u.k {
		return false
	}
	switch v.k {
	case String:
		return v.s == u.s
	case Int:
		return v.i == u.i
	case Float:
		return (v.f == u.f) || (math.IsNaN(v.f) && math.IsNaN(u.f))
	case Boolean:
		return v.b == u.b
	default:
		return true // both invalid
	}
}

// Compare orders two values of compatible kinds: numbers with numbers,
// strings with strings and booleans with booleans (false < true).
func (v Value) Compare(u Value) (int, error) {
	switch {
	case v.k == Int && u.k == Int:
		return cmpOrdered(v.i, u.i), nil
	case v.IsNumeric() && u.IsNumeric():
		return cmpOrdered(v.ToFloat(), u.ToFloat()), nil
	case v.k == String && u.k == String:
		return strings.Compare(v.s, u.s), nil
	case v.k == Boolean && u.k == Boolean:
		return cmpOrdered(v.ToInt(), u.ToInt()), nil
	default:
		return 0, fmt.Errorf("cannot compare %s with %s", v.k, u.k)
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes v as a plain JSON scalar. Floats always carry a
// fraction or an exponent.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.k {
	case String:
		return json.Marshal(v.s)
	case Int:
		return json.Marshal(v.i)
	case Float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("non-finite float")
		}
		// integral floats keep a fraction so they decode as Float again
		text := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return []byte(text), nil
	case Boolean:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a plain JSON scalar (integral numbers become Int,
// other numbers Float) or the tagged form {"kind":"int64","value":123}.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		return v.unmarshalTagged(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = NewStringValue(x)
	case bool:
		*v = NewBooleanValue(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			*v = NewIntValue(i)
			return nil
		}
		f, err := x.Float64()
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", x, err)
		}
		*v = NewFloatValue(f)
	default:
		return fmt.Errorf("value must be a JSON string, number or boolean")
	}
	return nil
}

func (v *Value) unmarshalTagged(data []byte) error {
	type wire struct {
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	k, err := parseKind(w.Kind)
	if err != nil {
		return err
	}

	var out Value
	out.k = k

	switch k {
	case String:
		if err := json.Unmarshal(w.Value, &out.s); err != nil {
			return fmt.Errorf("value(kind=string) must be a JSON string: %w", err)
		}
	case Int:
		var num json.Number
		if err := json.Unmarshal(w.Value, &num); err != nil {
			return fmt.Errorf("value(kind=int64) must be a number: %w", err)
		}
		i, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("value(kind=int64) not an int64: %w", err)
		}
		out.i = i
	case Float:
		if err := json.Unmarshal(w.Value, &out.f); err != nil {
			return fmt.Errorf("value(kind=float64) must be a number: %w", err)
		}
	case Boolean:
		if err := json.Unmarshal(w.Value, &out.b); err != nil {
			return fmt.Errorf("value(kind=boolean) must be a JSON boolean: %w", err)
		}
	case Invalid:
		out = Value{}
	}

	*v = out
	return nil
}

func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return String, nil
	case "int", "int64":
		return Int, nil
	case "float", "float64":
		return Float, nil
	case "boolean", "bool":
		return Boolean, nil
	case "invalid":
		return Invalid, nil
	default:
		return Invalid, fmt.Errorf("unknown kind %q", s)
	}
}
