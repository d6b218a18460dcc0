package raven

import "testing"

func mustParseProgram(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) error: %v", src, err)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := mustParseProgram(t, `let x: int = 1 + 2;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	vd, ok := prog.Statements[0].(*VarDeclStmt)
	if !ok {
		t.Fatalf("want *VarDeclStmt, got %T", prog.Statements[0])
	}
	if vd.Name != "x" || vd.DeclaredType == nil || vd.DeclaredType.Name != "int" {
		t.Fatalf("unexpected var decl: %+v", vd)
	}
	if _, ok := vd.Init.(*BinaryExpr); !ok {
		t.Fatalf("want binary init expr, got %T", vd.Init)
	}
}

func TestParseExportedVarDeclSetsExported(t *testing.T) {
	prog := mustParseProgram(t, `export let PI: float = 3.14;`)
	vd := prog.Statements[0].(*VarDeclStmt)
	if !vd.Exported {
		t.Fatalf("want Exported=true on export let")
	}
}

func TestParseOrdinaryVarDeclIsNotExported(t *testing.T) {
	prog := mustParseProgram(t, `let y = 1;`)
	vd := prog.Statements[0].(*VarDeclStmt)
	if vd.Exported {
		t.Fatalf("want Exported=false on bare let")
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), not (1 + 2) * 3.
	prog := mustParseProgram(t, `let x = 1 + 2 * 3;`)
	vd := prog.Statements[0].(*VarDeclStmt)
	top := vd.Init.(*BinaryExpr)
	if top.Op != PLUS {
		t.Fatalf("want top-level '+', got %v", top.Op)
	}
	right := top.Right.(*BinaryExpr)
	if right.Op != STAR {
		t.Fatalf("want right-hand '*', got %v", right.Op)
	}
}

func TestParseLogicalPrecedenceBelowEquality(t *testing.T) {
	// a == b && c == d should parse as (a == b) && (c == d).
	prog := mustParseProgram(t, `let x = a == b && c == d;`)
	vd := prog.Statements[0].(*VarDeclStmt)
	top := vd.Init.(*BinaryExpr)
	if top.Op != AND {
		t.Fatalf("want top-level AND, got %v", top.Op)
	}
	if _, ok := top.Left.(*BinaryExpr); !ok {
		t.Fatalf("want left side to be a binary ==, got %T", top.Left)
	}
}

func TestParseIfElseifElseChain(t *testing.T) {
	prog := mustParseProgram(t, `
if (a) {
} elseif (b) {
} elseif (c) {
} else {
}`)
	ifs := prog.Statements[0].(*IfStmt)
	if ifs.ElseIf == nil {
		t.Fatalf("want first elseif clause")
	}
	second := ifs.ElseIf
	if second.ElseIf == nil {
		t.Fatalf("want second elseif clause")
	}
	third := second.ElseIf
	if third.Else == nil {
		t.Fatalf("want trailing else on the last elseif")
	}
	if ifs.Else != nil || second.Else != nil {
		t.Fatalf("only the last elseif in the chain should carry the else block")
	}
}

func TestParseForLoopSharesSemicolonsWithHeader(t *testing.T) {
	prog := mustParseProgram(t, `for (let i = 0; i < 10; i = i + 1) { }`)
	fs := prog.Statements[0].(*ForStmt)
	if _, ok := fs.Init.(*VarDeclStmt); !ok {
		t.Fatalf("want VarDeclStmt init, got %T", fs.Init)
	}
	if _, ok := fs.Step.(*AssignStmt); !ok {
		t.Fatalf("want AssignStmt step, got %T", fs.Step)
	}
}

func TestParseIdentFollowedByBraceIsAlwaysStructLit(t *testing.T) {
	// Even at statement start, "Ident {" begins a struct literal, not a block.
	prog := mustParseProgram(t, `Point { x: 1, y: 2 };`)
	es := prog.Statements[0].(*ExprStmt)
	lit, ok := es.Value.(*StructLitExpr)
	if !ok {
		t.Fatalf("want *StructLitExpr, got %T", es.Value)
	}
	if lit.TypeName != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("unexpected struct literal: %+v", lit)
	}
}

func TestParseAssignmentVsExpressionStatement(t *testing.T) {
	prog := mustParseProgram(t, `x = 1; f(1);`)
	if _, ok := prog.Statements[0].(*AssignStmt); !ok {
		t.Fatalf("want *AssignStmt, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ExprStmt); !ok {
		t.Fatalf("want *ExprStmt, got %T", prog.Statements[1])
	}
}

func TestParseInvalidAssignTargetRejected(t *testing.T) {
	_, err := ParseProgram(`1 + 1 = 2;`)
	if err == nil || err.Kind != InvalidAssignTarget {
		t.Fatalf("want InvalidAssignTarget, got %v", err)
	}
}

func TestParseNestedFieldAndIndexAssignTargetsAllowed(t *testing.T) {
	mustParseProgram(t, `obj.field[0] = 1;`)
	mustParseProgram(t, `arr[0].field = 1;`)
}

func TestParseEnumPath(t *testing.T) {
	prog := mustParseProgram(t, `let c = Color::Red;`)
	vd := prog.Statements[0].(*VarDeclStmt)
	ep, ok := vd.Init.(*EnumPathExpr)
	if !ok {
		t.Fatalf("want *EnumPathExpr, got %T", vd.Init)
	}
	if ep.EnumName != "Color" || ep.VariantName != "Red" {
		t.Fatalf("unexpected enum path: %+v", ep)
	}
}

func TestParseMethodCallAndFieldAccessChain(t *testing.T) {
	prog := mustParseProgram(t, `let r = obj.name.slice(0, 1);`)
	vd := prog.Statements[0].(*VarDeclStmt)
	mc, ok := vd.Init.(*MethodCallExpr)
	if !ok {
		t.Fatalf("want *MethodCallExpr, got %T", vd.Init)
	}
	if mc.Name != "slice" || len(mc.Args) != 2 {
		t.Fatalf("unexpected method call: %+v", mc)
	}
	if _, ok := mc.Receiver.(*FieldAccessExpr); !ok {
		t.Fatalf("want FieldAccessExpr receiver, got %T", mc.Receiver)
	}
}

func TestParseImportForms(t *testing.T) {
	prog := mustParseProgram(t, `
import mathlib;
import geo from "geo.rv";
import { sin, cos } from "trig.rv";
`)
	if len(prog.Statements) != 3 {
		t.Fatalf("want 3 statements, got %d", len(prog.Statements))
	}
	i1 := prog.Statements[0].(*ImportSpec)
	if i1.Alias != "mathlib" || i1.Path != "" {
		t.Fatalf("unexpected bare import: %+v", i1)
	}
	i2 := prog.Statements[1].(*ImportSpec)
	if i2.Alias != "geo" || i2.Path != "geo.rv" {
		t.Fatalf("unexpected aliased import: %+v", i2)
	}
	i3 := prog.Statements[2].(*ImportSpec)
	if len(i3.Names) != 2 || i3.Path != "trig.rv" {
		t.Fatalf("unexpected named import: %+v", i3)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog := mustParseProgram(t, `let xs = [1, 2, 3];`)
	vd := prog.Statements[0].(*VarDeclStmt)
	al, ok := vd.Init.(*ArrayLitExpr)
	if !ok || len(al.Elements) != 3 {
		t.Fatalf("unexpected array literal: %+v", vd.Init)
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := mustParseProgram(t, `
fun add(a: int, b: int) -> int {
    return a + b;
}`)
	fd := prog.Statements[0].(*FuncDeclStmt)
	if fd.Name != "add" || len(fd.Params) != 2 || fd.ReturnType == nil || fd.ReturnType.Name != "int" {
		t.Fatalf("unexpected func decl: %+v", fd)
	}
}

func TestParseStructAndEnumDecl(t *testing.T) {
	prog := mustParseProgram(t, `
struct Point { x: int, y: int }
enum Color { Red, Green, Blue }
`)
	sd := prog.Statements[0].(*StructDeclStmt)
	if sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("unexpected struct decl: %+v", sd)
	}
	ed := prog.Statements[1].(*EnumDeclStmt)
	if ed.Name != "Color" || len(ed.Variants) != 3 {
		t.Fatalf("unexpected enum decl: %+v", ed)
	}
}
