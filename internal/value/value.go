// Package value defines Suji's runtime value model: the tagged union of
// values the evaluator produces and consumes, the chained environment
// frames values live in, and the RuntimeError family raised while
// evaluating them (spec §3.4-3.6, §7).
package value

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/suji-lang/suji/internal/ast"
)

// Value is implemented by every runtime value kind. Kind() names the
// dynamic type for error messages, method dispatch, and is_*() builtins;
// String() is the display form used by to_string()/string interpolation.
type Value interface {
	Kind() string
	String() string
}

// Nil is the sole instance of the nil value; use the package-level Nil
// variable rather than constructing it.
type NilVal struct{}

func (NilVal) Kind() string   { return "nil" }
func (NilVal) String() string { return "nil" }

// Nil is the canonical nil value.
var Nil Value = NilVal{}

// Boolean wraps a bool.
type Boolean bool

func (b Boolean) Kind() string   { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is an arbitrary-precision decimal. raw preserves the originally
// parsed source text so a literal round-trips through to_string() without
// normalizing trailing zeros a user wrote explicitly (e.g. "1.50").
type Number struct {
	Dec decimal.Decimal
	raw string
}

// NewNumber parses decimal source text into a Number, keeping the text for
// round-trip display.
func NewNumber(text string) (Number, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return Number{Dec: d, raw: text}, nil
}

// NumberFromDecimal builds a Number from a computed decimal.Decimal, with no
// preserved source text; String() falls back to the decimal's own
// normalized form.
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{Dec: d}
}

// NumberFromInt builds a Number from a Go int, used throughout the
// evaluator for indices, lengths, and range bounds.
func NumberFromInt(n int) Number {
	return Number{Dec: decimal.NewFromInt(int64(n))}
}

func (n Number) Kind() string { return "number" }

func (n Number) String() string {
	if n.raw != "" {
		return n.raw
	}
	return n.Dec.String()
}

// IsInteger reports whether the decimal has a zero fractional part.
func (n Number) IsInteger() bool {
	return n.Dec.Equal(n.Dec.Truncate(0))
}

// ToInt64 checks that the number is integral and fits in an int64.
func (n Number) ToInt64() (int64, error) {
	if !n.IsInteger() {
		return 0, fmt.Errorf("number %s is not an integer", n.String())
	}
	if !n.Dec.BigInt().IsInt64() {
		return 0, fmt.Errorf("number %s does not fit in an integer", n.String())
	}
	return n.Dec.IntPart(), nil
}

// String is a Suji string, indexed by Unicode scalar value.
type String string

func (s String) Kind() string   { return "string" }
func (s String) String() string { return string(s) }

// Runes returns the string decomposed into Unicode scalar values, the unit
// String's index/slice/length operations work over.
func (s String) Runes() []rune { return []rune(s) }

// List is an ordered, mutable sequence. Lists are reference types at the Go
// level; the evaluator enforces deep-copy-on-assign semantics by calling
// DeepCopy at variable bind points (spec §3.4 invariant), not by making
// List itself copy-on-write.
type List struct {
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (l *List) Kind() string { return "list" }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = displayElement(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DeepCopy returns a List with freshly allocated storage and deep-copied
// elements, per the pass-by-value invariant (spec §8.1).
func (l *List) DeepCopy() *List {
	out := make([]Value, len(l.Elements))
	for i, e := range l.Elements {
		out[i] = DeepCopy(e)
	}
	return &List{Elements: out}
}

// Tuple is a fixed-arity, immutable sequence produced by multi-value
// returns, destructuring sources, and tuple literals.
type Tuple struct {
	Elements []Value
}

func NewTuple(elems []Value) *Tuple { return &Tuple{Elements: elems} }

func (t *Tuple) Kind() string { return "tuple" }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = displayElement(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) DeepCopy() *Tuple {
	out := make([]Value, len(t.Elements))
	for i, e := range t.Elements {
		out[i] = DeepCopy(e)
	}
	return &Tuple{Elements: out}
}

// MapKey is the hashable projection of a Value usable as a Map key:
// Number, Boolean, String, or a Tuple composed recursively of MapKeys
// (spec §3.4). It is comparable so it can key a Go map directly.
type MapKey struct {
	repr string // a canonical, collision-free encoding used as the Go map key
	disp Value  // the original value, for iteration/display
}

// Value returns the original Value a MapKey was built from, for iteration
// and display (spec §3.4 "Map insertion order is preserved").
func (k MapKey) Value() Value { return k.disp }

// ToMapKey converts a Value to a MapKey, or reports an error for key kinds
// the language forbids (nil, list, map, function, stream, regex, module).
func ToMapKey(v Value) (MapKey, error) {
	switch x := v.(type) {
	case Boolean:
		return MapKey{repr: "b:" + x.String(), disp: x}, nil
	case Number:
		return MapKey{repr: "n:" + x.Dec.String(), disp: NumberFromDecimal(x.Dec)}, nil
	case String:
		return MapKey{repr: "s:" + string(x), disp: x}, nil
	case *Tuple:
		parts := make([]string, len(x.Elements))
		for i, e := range x.Elements {
			k, err := ToMapKey(e)
			if err != nil {
				return MapKey{}, err
			}
			parts[i] = k.repr
		}
		return MapKey{repr: "t:(" + strings.Join(parts, ",") + ")", disp: x}, nil
	default:
		return MapKey{}, fmt.Errorf("invalid map key type: %s", v.Kind())
	}
}

// Map is an insertion-order-preserving mapping from MapKey to Value.
type Map struct {
	order []MapKey
	data  map[MapKey]Value
}

func NewMap() *Map {
	return &Map{data: make(map[MapKey]Value)}
}

func (m *Map) Kind() string { return "map" }

// Get returns the value for key and whether it was present.
func (m *Map) Get(key MapKey) (Value, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Set inserts or updates key, appending to the insertion order only the
// first time the key is seen.
func (m *Map) Set(key MapKey, v Value) {
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = v
}

// Keys returns the MapKeys in insertion order.
func (m *Map) Keys() []MapKey { return m.order }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.order) }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.order))
	for _, k := range m.order {
		parts = append(parts, displayElement(k.disp)+": "+displayElement(m.data[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// DeepCopy returns a Map with freshly allocated storage and deep-copied
// values (keys are immutable, so they are reused as-is).
func (m *Map) DeepCopy() *Map {
	out := NewMap()
	for _, k := range m.order {
		out.Set(k, DeepCopy(m.data[k]))
	}
	return out
}

// Regex wraps a compiled pattern. Regex values are immutable and have no
// deep-copy concerns.
type Regex struct {
	Source   string
	Compiled *regexp.Regexp
}

func (r *Regex) Kind() string   { return "regex" }
func (r *Regex) String() string { return "/" + r.Source + "/" }

// BuiltinFunc is the Go-level signature a stdlib builtin implements
// (spec §6.5). args are already evaluated and deep-copied per normal call
// semantics.
type BuiltinFunc func(args []Value) (Value, error)

// Function is a Suji closure: either a user-defined function with an AST
// body and captured environment, or a builtin registered by the stdlib.
// Exactly one of Body/Builtin is set.
type Function struct {
	Name    string // for error messages and to_string(); "" for anonymous literals
	Params  []ast.Param
	Body    ast.Stmt
	Env     *Env
	Builtin BuiltinFunc
}

func (f *Function) Kind() string { return "function" }

func (f *Function) String() string {
	if f.Name != "" {
		return "<function " + f.Name + ">"
	}
	return "<function>"
}

// Stream is an open I/O endpoint (file handle, process stdio, network
// socket). The core only recognizes its interface; concrete stream
// construction belongs to the stdlib collaborator (spec §1, §4.3.1).
type Stream struct {
	Name   string
	Closed bool
	Reader StreamReader
	Writer StreamWriter
}

// StreamReader and StreamWriter are the narrow I/O contracts a Stream's
// backing resource must satisfy; the evaluator's read_line/write methods
// are defined purely in terms of these.
type StreamReader interface {
	ReadLine() (string, bool, error)
}

type StreamWriter interface {
	WriteString(s string) (int, error)
}

func (s *Stream) Kind() string   { return "stream" }
func (s *Stream) String() string { return "<stream " + s.Name + ">" }

// Module is a handle into the module registry: either not yet loaded
// (Loaded == false, in which case the evaluator must force-load it before
// inspecting Export), or loaded with its export value cached.
type Module struct {
	Path   string
	Loaded bool
	Export Value
}

func (m *Module) Kind() string { return "module" }
func (m *Module) String() string {
	return "<module " + m.Path + ">"
}

// EnvMap is a process-environment overlay consulted/mutated by shell
// command execution (spec §3.4, §4.4).
type EnvMap struct {
	Vars map[string]string
}

func NewEnvMap(vars map[string]string) *EnvMap { return &EnvMap{Vars: vars} }

func (e *EnvMap) Kind() string   { return "env_map" }
func (e *EnvMap) String() string { return "<env>" }

// displayElement formats a value the way it appears nested inside a list,
// map, or tuple literal's String() — strings are quoted there but not at
// the top level, matching the corpus convention that interpolation
// stringifies top-level strings bare.
func displayElement(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}

// DeepCopy returns a value safe to bind to a new variable slot without
// aliasing the source's mutable storage, per the pass-by-value invariant
// (spec §3.4, §8.1). Scalars and shared-by-design kinds (function, stream,
// module, regex) are returned as-is since they are either immutable or
// reference types with shared identity by design.
func DeepCopy(v Value) Value {
	switch x := v.(type) {
	case *List:
		return x.DeepCopy()
	case *Map:
		return x.DeepCopy()
	case *Tuple:
		return x.DeepCopy()
	default:
		return v
	}
}

// Truthy implements the language's boolean-coercion rule for `&&`/`||`
// short-circuiting and conditional contexts: only Boolean(false) and Nil
// are falsy; every other value, including Number(0) and "", is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Boolean:
		return bool(x)
	case NilVal:
		return false
	default:
		return true
	}
}

// Equal implements structural equality: heterogeneous kinds are never
// equal (spec §4.3 "heterogeneous numeric-vs-other is false"), and
// composite kinds compare element-wise.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case NilVal:
		_, ok := b.(NilVal)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x.Dec.Equal(y.Dec)
	case String:
		y, ok := b.(String)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			yv, ok := y.Get(k)
			if !ok || !Equal(x.data[k], yv) {
				return false
			}
		}
		return true
	case *Regex:
		y, ok := b.(*Regex)
		return ok && x.Source == y.Source
	default:
		return a == b
	}
}
