// types.go — the resolved static Type lattice and the process-wide symbol
// tables (functions, structs, enums) that the checker populates and the
// evaluator reuses without re-deriving.
//
// Numeric widening (Int -> Float) is centralized in Widens/WiderNumeric so
// the checker and the evaluator can never disagree.
package raven

import "fmt"

// Kind identifies which member of the Type lattice a Type value is.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KBool
	KString
	KVoid
	KArray
	KStruct
	KEnum
	KUnknown
)

// Type is the resolved static type of an expression or declaration.
// Elem is only meaningful for KArray; Name is only meaningful for
// KStruct/KEnum.
type Type struct {
	Kind Kind
	Elem *Type
	Name string
}

var (
	TInt     = Type{Kind: KInt}
	TFloat   = Type{Kind: KFloat}
	TBool    = Type{Kind: KBool}
	TString  = Type{Kind: KString}
	TVoid    = Type{Kind: KVoid}
	TUnknown = Type{Kind: KUnknown}
)

func TArray(elem Type) Type   { return Type{Kind: KArray, Elem: &elem} }
func TStructOf(name string) Type { return Type{Kind: KStruct, Name: name} }
func TEnumOf(name string) Type   { return Type{Kind: KEnum, Name: name} }

func (t Type) String() string {
	switch t.Kind {
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KBool:
		return "bool"
	case KString:
		return "string"
	case KVoid:
		return "void"
	case KArray:
		return t.Elem.String() + "[]"
	case KStruct:
		return t.Name
	case KEnum:
		return t.Name
	default:
		return "unknown"
	}
}

func (t Type) IsNumeric() bool { return t.Kind == KInt || t.Kind == KFloat }

// Equal reports whether two types are structurally identical.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KArray:
		return t.Elem.Equal(*other.Elem)
	case KStruct, KEnum:
		return t.Name == other.Name
	default:
		return true
	}
}

// Widens reports whether a value of type `from` may be used where `to` is
// expected: because the types are equal, because `from` is Int and `to` is
// Float (the only implicit conversion between known types), or because
// `from` is Unknown or an array of Unknown (see below). Array element
// types are otherwise invariant: int[] does not widen to float[].
func Widens(from, to Type) bool {
	if from.Equal(to) {
		return true
	}
	if from.Kind == KInt && to.Kind == KFloat {
		return true
	}
	if from.Kind == KUnknown {
		// covers the empty array literal ("[]") unifying with any declared
		// array type, and enum_from_string's dynamically-named result
		// unifying with whatever enum type the binding site declares.
		return true
	}
	if from.Kind == KArray && to.Kind == KArray && from.Elem.Kind == KUnknown {
		return true
	}
	return false
}

// WiderNumeric returns the result type of a binary arithmetic operator
// applied to two numeric operand types: Int op Int -> Int; anything with a
// Float operand -> Float.
func WiderNumeric(a, b Type) Type {
	if a.Kind == KFloat || b.Kind == KFloat {
		return TFloat
	}
	return TInt
}

// ---- symbol table entries ----

// FuncDef is a registered function's static signature plus its body,
// resolved once by the checker (P1 hoist) and reused unchanged by the
// evaluator to run calls. Function declarations live in a process-wide
// registry and are never shadowed per-scope.
type FuncDef struct {
	Name       string
	Params     []Param
	ParamTypes []Type
	ReturnType Type
	Body       *BlockStmt
	Exported   bool
}

// FieldDef is one resolved field of a struct declaration, in declaration
// order (order matters for StructLit exhaustiveness checks and for
// deterministic printing).
type FieldDef struct {
	Name string
	Type Type
}

type StructDef struct {
	Name     string
	Fields   []FieldDef
	Exported bool
}

func (s *StructDef) FieldType(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

type EnumDef struct {
	Name     string
	Variants []string
	Exported bool
}

func (e *EnumDef) HasVariant(name string) bool {
	for _, v := range e.Variants {
		if v == name {
			return true
		}
	}
	return false
}

// Registry is the process-wide (per-Program) set of declared functions,
// structs and enums. The checker builds it; the evaluator consults the same
// instance to resolve calls, struct literals and enum paths, keeping static
// and dynamic behavior in lockstep.
type Registry struct {
	Funcs   map[string]*FuncDef
	Structs map[string]*StructDef
	Enums   map[string]*EnumDef
}

func NewRegistry() *Registry {
	return &Registry{
		Funcs:   map[string]*FuncDef{},
		Structs: map[string]*StructDef{},
		Enums:   map[string]*EnumDef{},
	}
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry{funcs:%d structs:%d enums:%d}", len(r.Funcs), len(r.Structs), len(r.Enums))
}
