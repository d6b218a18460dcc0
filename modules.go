// modules.go — file-backed module resolution, caching, and export binding.
//
// Resolution order: (1) the importing file's own directory;
// (2) the colon/semicolon-separated directories in RAVEN_PATH; (3) a bundled
// library directory. The first "<name>.rv" found wins. Modules are cached by
// canonical path (the absolute, cleaned path, rendered as a "file://" key by
// go.lsp.dev/uri, so a cache lookup survives "./a/../a.rv" vs. "a.rv"
// spelling differences) so a diamond import loads its source exactly once
// per run. A module still being resolved when it is imported again is
// rejected as a cyclic import (an ImportError).
package raven

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.lsp.dev/uri"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/blake2b"
)

// ModuleResult is everything a completed import needs to hand back to its
// importer: the static registry to merge declarations from, and the types
// and already-evaluated values of its exported top-level constants.
type ModuleResult struct {
	CanonicalPath string
	Reg           *Registry
	ConstTypes    map[string]Type
	ConstValues   map[string]Value
}

// Loader owns the module cache and the search path for one driver run. It is
// shared by the Checker (to validate imports statically) and the Evaluator
// (to actually run a module's top level), so a module is parsed, checked and
// evaluated exactly once regardless of how many importers reference it.
type Loader struct {
	libDir     string
	extraPaths []string
	cache      map[string]*ModuleResult
	loading    map[string]bool // canonical paths currently being resolved, for cycle detection
	log        *zap.Logger
}

// NewLoader builds a Loader rooted at libDir (the bundled standard-module
// directory) and reads RAVEN_PATH for additional search directories.
func NewLoader(libDir string) *Loader {
	return &Loader{
		libDir:     libDir,
		extraPaths: splitRavenPath(os.Getenv("RAVEN_PATH")),
		cache:      map[string]*ModuleResult{},
		loading:    map[string]bool{},
		log:        newDiagnosticLogger(),
	}
}

func splitRavenPath(v string) []string {
	if v == "" {
		return nil
	}
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	return strings.Split(v, sep)
}

// newDiagnosticLogger builds the zap logger used by the Loader and the
// Evaluator for diagnostics (cache hits, content fingerprints, runtime
// errors), never user program output (print/input go straight to the
// process's stdio, kept entirely separate from this structured channel).
// Its level is Warn, so the Debug and Info entries (cache hits, fingerprints,
// top-level run start) are filtered out and only warnings reach stderr.
func newDiagnosticLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// resolve finds the on-disk path for a module reference. spec is either a
// bare alias ("import name;", searched as "name.rv") or an explicit relative
// path ("import name from \"path.rv\"").
func (l *Loader) resolve(spec *ImportSpec, fromDir string) (string, *Error) {
	rel := spec.Path
	if rel == "" {
		rel = spec.Alias + ".rv"
	}
	candidates := []string{filepath.Join(fromDir, rel)}
	for _, dir := range l.extraPaths {
		candidates = append(candidates, filepath.Join(dir, rel))
	}
	if l.libDir != "" {
		candidates = append(candidates, filepath.Join(l.libDir, rel))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", newError(ImportError, spec.Span_, "could not resolve module %q (searched %d location(s))", rel, len(candidates))
}

// canonicalKey normalizes a resolved module path into a stable cache key.
// filepath.Abs cleans the path, which gives two different spellings of the
// same file ("./a.rv" from one importer, "lib/../a.rv" from another) the
// same key; uri.File then renders it in file:// form.
func canonicalKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return string(uri.File(abs))
}

func fingerprint(src string) string {
	sum := blake2b.Sum256([]byte(src))
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 0; i < 8; i++ {
		out[i*2] = hexDigits[sum[i]>>4]
		out[i*2+1] = hexDigits[sum[i]&0xf]
	}
	return string(out)
}

// Load resolves, caches, and fully checks+evaluates a module, returning its
// exported surface. It is the single entry point used by both
// Checker.checkImport (statically, to type the importer's uses) and the
// evaluator's import execution (to obtain live constant values) — both call
// sites hit the same cache entry, so a module's top level runs once.
func (l *Loader) Load(spec *ImportSpec, fromDir string) (*ModuleResult, *Error) {
	path, err := l.resolve(spec, fromDir)
	if err != nil {
		return nil, err
	}
	key := canonicalKey(path)
	if res, ok := l.cache[key]; ok {
		l.log.Debug("module cache hit", zap.String("path", key))
		return res, nil
	}
	if l.loading[key] {
		return nil, newError(ImportError, spec.Span_, "cyclic import detected at %q", path)
	}
	l.loading[key] = true
	defer delete(l.loading, key)

	src, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, newError(IOError, spec.Span_, "cannot read module %q: %v", path, rerr)
	}
	l.log.Info("loading module", zap.String("path", key), zap.String("fingerprint", fingerprint(string(src))))

	prog, perr := ParseProgram(string(src))
	if perr != nil {
		return nil, perr
	}
	reg, cerr := Check(prog, l, filepath.Dir(path))
	if cerr != nil {
		return nil, cerr
	}
	ev := NewEvaluator(reg, l, filepath.Dir(path))
	if rerr := ev.RunTopLevel(prog); rerr != nil {
		return nil, rerr
	}

	constTypes := map[string]Type{}
	constValues := map[string]Value{}
	for _, st := range prog.Statements {
		vd, ok := st.(*VarDeclStmt)
		if !ok || !vd.Exported {
			continue
		}
		constTypes[vd.Name] = vd.Resolved
		if v, ok := ev.global.Get(vd.Name); ok {
			constValues[vd.Name] = v
		}
	}

	res := &ModuleResult{CanonicalPath: key, Reg: reg, ConstTypes: constTypes, ConstValues: constValues}
	l.cache[key] = res
	return res, nil
}
