// printer.go — textual rendering of runtime values and of the AST.
//
// Format is the single source of truth for a Value's textual form, used
// identically by the print and format built-ins: formatting a value through
// format("{}", v) and printing it via print(v) always yield identical
// textual forms.
//
// DumpJSON renders a Program as JSON using segmentio/encoding/json, a
// drop-in, allocation-light encoder for fast structural encoding of an
// already-built tree. It backs a driver's "--dump-ast" mode.
package raven

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/segmentio/encoding/json"
)

// Format renders v the way print and format render values:
// ints/floats use host defaults, bools are "true"/"false", strings are
// verbatim, arrays are "[e1, e2, ...]", structs are "<Type> { k: v, ... }",
// enum variants are "<Enum>::<Variant>", and void is "void".
func Format(v Value) string {
	switch v.Kind {
	case VInt:
		return strconv.FormatInt(v.I, 10)
	case VFloat:
		return formatFloat(v.F)
	case VBool:
		if v.B {
			return "true"
		}
		return "false"
	case VString:
		return v.S
	case VArray:
		parts := make([]string, len(v.Arr.Items))
		for i, it := range v.Arr.Items {
			parts[i] = Format(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VStruct:
		parts := make([]string, 0, len(v.St.Order))
		for _, name := range v.St.Order {
			parts = append(parts, fmt.Sprintf("%s: %s", name, Format(v.St.Fields[name])))
		}
		return fmt.Sprintf("%s { %s }", v.St.TypeName, strings.Join(parts, ", "))
	case VEnum:
		return fmt.Sprintf("%s::%s", v.EnumType, v.EnumVariant)
	default:
		return "void"
	}
}

// formatFloat renders a float using the shortest round-trippable decimal
// form, so 5.0 prints as "5" and 5.5 prints as "5.5".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ---- AST dump ----

// astDump is the JSON-friendly mirror of a Program used only for
// serialization; it intentionally drops spans (irrelevant to AST-shape
// equivalence) so that "parse, dump, reparse, dump" comparisons ignore
// comment/whitespace-driven position changes.
type astDump struct {
	Kind     string         `json:"kind"`
	Fields   map[string]any `json:"fields,omitempty"`
	Children []astDump      `json:"children,omitempty"`
}

// DumpJSON renders a Program's shape as JSON, used by a driver's AST-dump
// mode.
func DumpJSON(p *Program) ([]byte, error) {
	d := astDump{Kind: "Program"}
	for _, s := range p.Statements {
		d.Children = append(d.Children, dumpStmt(s))
	}
	return json.MarshalIndent(d, "", "  ")
}

func dumpStmt(s Statement) astDump {
	switch n := s.(type) {
	case *VarDeclStmt:
		d := astDump{Kind: "VarDecl", Fields: map[string]any{"name": n.Name}}
		if n.DeclaredType != nil {
			d.Fields["type"] = n.DeclaredType.Name
		}
		d.Children = []astDump{dumpExpr(n.Init)}
		return d
	case *AssignStmt:
		return astDump{Kind: "Assign", Children: []astDump{dumpExpr(n.Target), dumpExpr(n.Value)}}
	case *IfStmt:
		d := astDump{Kind: "If", Children: []astDump{dumpExpr(n.Cond), dumpStmt(n.Then)}}
		if n.ElseIf != nil {
			d.Children = append(d.Children, dumpStmt(n.ElseIf))
		}
		if n.Else != nil {
			d.Children = append(d.Children, dumpStmt(n.Else))
		}
		return d
	case *WhileStmt:
		return astDump{Kind: "While", Children: []astDump{dumpExpr(n.Cond), dumpStmt(n.Body)}}
	case *ForStmt:
		d := astDump{Kind: "For"}
		if n.Init != nil {
			d.Children = append(d.Children, dumpStmt(n.Init))
		}
		d.Children = append(d.Children, dumpExpr(n.Cond))
		if n.Step != nil {
			d.Children = append(d.Children, dumpStmt(n.Step))
		}
		d.Children = append(d.Children, dumpStmt(n.Body))
		return d
	case *ReturnStmt:
		d := astDump{Kind: "Return"}
		if n.Value != nil {
			d.Children = []astDump{dumpExpr(n.Value)}
		}
		return d
	case *ExprStmt:
		return astDump{Kind: "ExprStmt", Children: []astDump{dumpExpr(n.Value)}}
	case *FuncDeclStmt:
		fields := map[string]any{"name": n.Name, "exported": n.Exported}
		d := astDump{Kind: "FuncDecl", Fields: fields, Children: []astDump{dumpStmt(n.Body)}}
		return d
	case *StructDeclStmt:
		names := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			names[i] = f.Name
		}
		return astDump{Kind: "StructDecl", Fields: map[string]any{"name": n.Name, "fields": names, "exported": n.Exported}}
	case *EnumDeclStmt:
		return astDump{Kind: "EnumDecl", Fields: map[string]any{"name": n.Name, "variants": n.Variants, "exported": n.Exported}}
	case *ImportSpec:
		return astDump{Kind: "Import", Fields: map[string]any{"alias": n.Alias, "names": n.Names, "path": n.Path}}
	case *BlockStmt:
		d := astDump{Kind: "Block"}
		for _, st := range n.Statements {
			d.Children = append(d.Children, dumpStmt(st))
		}
		return d
	default:
		return astDump{Kind: "?"}
	}
}

func dumpExpr(e Expression) astDump {
	switch n := e.(type) {
	case *IntLit:
		return astDump{Kind: "Int", Fields: map[string]any{"value": n.Value}}
	case *FloatLit:
		return astDump{Kind: "Float", Fields: map[string]any{"value": n.Value}}
	case *StringLit:
		return astDump{Kind: "Str", Fields: map[string]any{"value": n.Value}}
	case *BoolLit:
		return astDump{Kind: "Bool", Fields: map[string]any{"value": n.Value}}
	case *IdentExpr:
		return astDump{Kind: "Ident", Fields: map[string]any{"name": n.Name}}
	case *BinaryExpr:
		return astDump{Kind: "Binary", Fields: map[string]any{"op": int(n.Op)}, Children: []astDump{dumpExpr(n.Left), dumpExpr(n.Right)}}
	case *UnaryExpr:
		return astDump{Kind: "Unary", Fields: map[string]any{"op": int(n.Op)}, Children: []astDump{dumpExpr(n.Operand)}}
	case *CallExpr:
		d := astDump{Kind: "Call", Fields: map[string]any{"callee": n.Callee.Name}}
		for _, a := range n.Args {
			d.Children = append(d.Children, dumpExpr(a))
		}
		return d
	case *IndexExpr:
		return astDump{Kind: "Index", Children: []astDump{dumpExpr(n.Receiver), dumpExpr(n.Index)}}
	case *FieldAccessExpr:
		return astDump{Kind: "FieldAccess", Fields: map[string]any{"name": n.Name}, Children: []astDump{dumpExpr(n.Receiver)}}
	case *MethodCallExpr:
		d := astDump{Kind: "MethodCall", Fields: map[string]any{"name": n.Name}, Children: []astDump{dumpExpr(n.Receiver)}}
		for _, a := range n.Args {
			d.Children = append(d.Children, dumpExpr(a))
		}
		return d
	case *EnumPathExpr:
		return astDump{Kind: "EnumPath", Fields: map[string]any{"enum": n.EnumName, "variant": n.VariantName}}
	case *StructLitExpr:
		d := astDump{Kind: "StructLit", Fields: map[string]any{"type": n.TypeName}}
		for _, f := range n.Fields {
			d.Children = append(d.Children, astDump{Kind: "field:" + f.Name, Children: []astDump{dumpExpr(f.Value)}})
		}
		return d
	case *ArrayLitExpr:
		d := astDump{Kind: "ArrayLit"}
		for _, el := range n.Elements {
			d.Children = append(d.Children, dumpExpr(el))
		}
		return d
	default:
		return astDump{Kind: "?"}
	}
}
