// value.go — the runtime Value model.
//
// Scalars (Int, Float, Bool, String, EnumVariant) are stored inline in a
// Value and so have value semantics: copying a Value copies the scalar.
// Composite values (Array, Struct) carry a pointer to a shared interior
// (*ArrayRef / *StructRef); copying a Value that holds one of those copies
// the pointer, not the interior, giving arrays and structs reference
// semantics. Go's garbage collector retires the interior once the last
// pointer (held by some Env frame, some other composite, or a local variable
// of the evaluator) goes out of scope — see DESIGN.md for why this replaces
// reference-counted arenas without changing any observable behavior: the
// surface language has no way to construct a cycle, so a tracing collector
// and a refcounting one are behaviorally equivalent here.
package raven

import "fmt"

type ValueKind int

const (
	VInt ValueKind = iota
	VFloat
	VBool
	VString
	VArray
	VStruct
	VEnum
	VVoid
)

// ArrayRef is the shared, mutable interior of an Array value.
type ArrayRef struct {
	Elem  Type
	Items []Value
}

// StructRef is the shared, mutable interior of a Struct value. Order
// preserves declaration order so printing and iteration are deterministic.
type StructRef struct {
	TypeName string
	Fields   map[string]Value
	Order    []string
}

func (s *StructRef) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

func (s *StructRef) Set(name string, v Value) {
	if _, exists := s.Fields[name]; !exists {
		s.Order = append(s.Order, name)
	}
	s.Fields[name] = v
}

// Value is a tagged union over every runtime value Raven programs can hold.
type Value struct {
	Kind ValueKind
	I    int64
	F    float64
	B    bool
	S    string
	Arr  *ArrayRef
	St   *StructRef
	// EnumType/EnumVariant are only meaningful when Kind == VEnum.
	EnumType    string
	EnumVariant string
}

func IntVal(i int64) Value     { return Value{Kind: VInt, I: i} }
func FloatVal(f float64) Value { return Value{Kind: VFloat, F: f} }
func BoolVal(b bool) Value     { return Value{Kind: VBool, B: b} }
func StringVal(s string) Value { return Value{Kind: VString, S: s} }
func VoidVal() Value           { return Value{Kind: VVoid} }

func ArrayVal(elem Type, items []Value) Value {
	return Value{Kind: VArray, Arr: &ArrayRef{Elem: elem, Items: items}}
}

func StructVal(typeName string, fields map[string]Value, order []string) Value {
	return Value{Kind: VStruct, St: &StructRef{TypeName: typeName, Fields: fields, Order: order}}
}

func EnumVal(enumName, variant string) Value {
	return Value{Kind: VEnum, EnumType: enumName, EnumVariant: variant}
}

// TypeName returns the textual name used by the type() built-in.
func (v Value) TypeName() string {
	switch v.Kind {
	case VInt:
		return "int"
	case VFloat:
		return "float"
	case VBool:
		return "bool"
	case VString:
		return "String"
	case VArray:
		return "Array"
	case VStruct:
		return "Struct:" + v.St.TypeName
	case VEnum:
		return "Enum:" + v.EnumType
	default:
		return "void"
	}
}

func (v Value) String() string { return Format(v) }

func (v Value) debug() string {
	return fmt.Sprintf("Value{%s %v}", v.TypeName(), v.Format0())
}

// Format0 is a cheap, non-recursive description used only for debug/%v.
func (v Value) Format0() string {
	switch v.Kind {
	case VInt:
		return fmt.Sprintf("%d", v.I)
	case VFloat:
		return fmt.Sprintf("%g", v.F)
	case VBool:
		return fmt.Sprintf("%t", v.B)
	case VString:
		return v.S
	default:
		return v.TypeName()
	}
}
