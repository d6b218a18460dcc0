package raven

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// runProgramInDir mirrors Run but captures program output instead of
// writing to the process's stdout, and hands back the Loader used so a
// cache-hit count can be inspected afterward.
func runProgramInDir(t *testing.T, src, dir string) (string, *Loader, *Error) {
	t.Helper()
	prog, perr := ParseProgram(src)
	if perr != nil {
		t.Fatalf("ParseProgram error: %v", perr)
	}
	loader := NewLoader("")
	reg, cerr := Check(prog, loader, dir)
	if cerr != nil {
		return "", loader, cerr
	}
	ev := NewEvaluator(reg, loader, dir)
	var buf bytes.Buffer
	ev.out = &buf
	err := ev.RunTopLevel(prog)
	return buf.String(), loader, err
}

func TestModuleNamedImportBindsExportedFunctionAndConst(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "mathlib.rv", `
export let PI: float = 3.0;
export fun square(x: int) -> int {
    return x * x;
}
`)
	out, _, err := runProgramInDir(t, `
import { square, PI } from "mathlib.rv";
print(square(4));
print(PI);
`, dir)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out != "16\n3\n" {
		t.Fatalf("got %q, want %q", out, "16\n3\n")
	}
}

func TestModuleNamespaceImportQualifiesFunctionsAndConsts(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "geo.rv", `
export let UNIT: int = 1;
export fun double(x: int) -> int {
    return x * 2;
}
`)
	out, _, err := runProgramInDir(t, `
import geo from "geo.rv";
print(geo.double(21));
print(geo.UNIT);
`, dir)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out != "42\n1\n" {
		t.Fatalf("got %q, want %q", out, "42\n1\n")
	}
}

func TestModuleBareAliasImportSearchesByConventionalFilename(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.rv", `export let VERSION: int = 2;`)
	out, _, err := runProgramInDir(t, `
import util;
print(util.VERSION);
`, dir)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestModuleNonExportedMemberIsNotVisibleToImporter(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "hidden.rv", `
let secret: int = 1;
fun helper() -> int { return 1; }
`)
	_, _, err := runProgramInDir(t, `import { secret } from "hidden.rv";`, dir)
	if err == nil || err.Kind != ImportError {
		t.Fatalf("want ImportError for a non-exported member, got %v", err)
	}
}

func TestModuleUnresolvedImportIsImportError(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runProgramInDir(t, `import nosuchmodule;`, dir)
	if err == nil || err.Kind != ImportError {
		t.Fatalf("want ImportError, got %v", err)
	}
}

func TestModuleDiamondImportRunsTopLevelOnlyOnce(t *testing.T) {
	dir := t.TempDir()
	markerPath := filepath.Join(dir, "marker.txt")
	writeModule(t, dir, "base.rv", `
export let COUNT: int = 1;
append_file("`+escapeRavenString(markerPath)+`", "x");
`)
	writeModule(t, dir, "left.rv", `import base from "base.rv";`)
	writeModule(t, dir, "right.rv", `import base from "base.rv";`)
	if err := os.WriteFile(markerPath, nil, 0o644); err != nil {
		t.Fatalf("seeding marker file: %v", err)
	}
	out, _, err := runProgramInDir(t, `
import left from "left.rv";
import right from "right.rv";
print("done");
`, dir)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out != "done\n" {
		t.Fatalf("got %q, want %q", out, "done\n")
	}
	data, rerr := os.ReadFile(markerPath)
	if rerr != nil {
		t.Fatalf("reading marker file: %v", rerr)
	}
	if string(data) != "x" {
		t.Fatalf("a diamond-imported module's top level must run exactly once; marker file = %q, want a single %q", data, "x")
	}
}

func TestModuleCyclicImportIsDetected(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.rv", `import b from "b.rv";`)
	writeModule(t, dir, "b.rv", `import a from "a.rv";`)
	_, _, err := runProgramInDir(t, `import a from "a.rv";`, dir)
	if err == nil || err.Kind != ImportError {
		t.Fatalf("want ImportError for a cyclic import, got %v", err)
	}
}
