// checker.go — static type checker.
//
// Two passes over a Program: P1 hoists every top-level function/struct/enum
// declaration into a shared Registry so forward references resolve (a
// function may call another declared later in the file); P2 walks the whole
// tree depth-first, resolving and annotating every node's Type. The checker
// and the evaluator share exactly one Registry instance and exactly one
// Widens/WiderNumeric pair (types.go) so static and dynamic behavior can
// never disagree.
package raven

// Checker holds the symbol tables built during P1 and consulted during P2.
type Checker struct {
	reg     *Registry
	scopes  []map[string]Type
	curFunc *FuncDef // non-nil while checking a function body, for Return typing
	loader  *Loader  // resolves imports; nil disables import support (e.g. REPL snippets)
	dir     string   // directory of the file being checked, for relative import resolution
}

// NewChecker creates a Checker with an empty global variable scope.
func NewChecker(loader *Loader, dir string) *Checker {
	return &Checker{reg: NewRegistry(), scopes: []map[string]Type{{}}, loader: loader, dir: dir}
}

// Check runs both passes over prog, returning the shared Registry used to
// evaluate it, or the first error encountered. loader resolves any "import"
// statements relative to dir; pass a nil loader when imports are not
// expected to appear (e.g. a single REPL line).
func Check(prog *Program, loader *Loader, dir string) (*Registry, *Error) {
	c := NewChecker(loader, dir)
	if err := c.hoist(prog); err != nil {
		return nil, err
	}
	for _, st := range prog.Statements {
		if err := c.checkStmt(st); err != nil {
			return nil, err
		}
	}
	return c.reg, nil
}

// ---- scope helpers ----

func (c *Checker) pushScope() { c.scopes = append(c.scopes, map[string]Type{}) }
func (c *Checker) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) declareVar(name string, t Type) bool {
	top := c.scopes[len(c.scopes)-1]
	if _, exists := top[name]; exists {
		return false
	}
	top[name] = t
	return true
}

func (c *Checker) lookupVar(name string) (Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return t, true
		}
	}
	return Type{}, false
}

// ---- P1: hoist ----

func (c *Checker) hoist(prog *Program) *Error {
	for _, st := range prog.Statements {
		switch n := st.(type) {
		case *FuncDeclStmt:
			if _, exists := c.reg.Funcs[n.Name]; exists {
				return newError(DuplicateDecl, n.Span_, "function %q already declared", n.Name)
			}
			paramTypes := make([]Type, len(n.Params))
			for i, pr := range n.Params {
				t, err := c.resolveTypeExpr(pr.Type)
				if err != nil {
					return err
				}
				paramTypes[i] = t
			}
			retType := TVoid
			if n.ReturnType != nil {
				t, err := c.resolveTypeExpr(n.ReturnType)
				if err != nil {
					return err
				}
				retType = t
			}
			c.reg.Funcs[n.Name] = &FuncDef{Name: n.Name, Params: n.Params, ParamTypes: paramTypes, ReturnType: retType, Body: n.Body, Exported: n.Exported}
		case *StructDeclStmt:
			if _, exists := c.reg.Structs[n.Name]; exists {
				return newError(DuplicateDecl, n.Span_, "struct %q already declared", n.Name)
			}
			fields := make([]FieldDef, len(n.Fields))
			for i, f := range n.Fields {
				t, err := c.resolveTypeExpr(f.Type)
				if err != nil {
					return err
				}
				fields[i] = FieldDef{Name: f.Name, Type: t}
			}
			c.reg.Structs[n.Name] = &StructDef{Name: n.Name, Fields: fields, Exported: n.Exported}
		case *EnumDeclStmt:
			if _, exists := c.reg.Enums[n.Name]; exists {
				return newError(DuplicateDecl, n.Span_, "enum %q already declared", n.Name)
			}
			c.reg.Enums[n.Name] = &EnumDef{Name: n.Name, Variants: n.Variants, Exported: n.Exported}
		}
	}
	return nil
}

// resolveTypeExpr turns parsed type syntax into a resolved Type, checking
// that named (non-builtin) types refer to an already-hoisted struct or enum.
func (c *Checker) resolveTypeExpr(te *TypeExpr) (Type, *Error) {
	if te == nil {
		return TVoid, nil
	}
	var base Type
	switch te.Name {
	case "int":
		base = TInt
	case "float":
		base = TFloat
	case "bool":
		base = TBool
	case "string":
		base = TString
	case "void":
		base = TVoid
	default:
		if _, ok := c.reg.Structs[te.Name]; ok {
			base = TStructOf(te.Name)
		} else if _, ok := c.reg.Enums[te.Name]; ok {
			base = TEnumOf(te.Name)
		} else {
			return Type{}, newError(TypeError, te.Span, "unknown type %q", te.Name)
		}
	}
	for i := 0; i < te.ArrayDepth; i++ {
		base = TArray(base)
	}
	return base, nil
}

// ---- P2: statements ----

func (c *Checker) checkStmt(st Statement) *Error {
	switch n := st.(type) {
	case *VarDeclStmt:
		return c.checkVarDecl(n)
	case *AssignStmt:
		return c.checkAssign(n)
	case *IfStmt:
		return c.checkIf(n)
	case *WhileStmt:
		return c.checkWhile(n)
	case *ForStmt:
		return c.checkFor(n)
	case *ReturnStmt:
		return c.checkReturn(n)
	case *ExprStmt:
		_, err := c.checkExpr(n.Value)
		return err
	case *FuncDeclStmt:
		return c.checkFuncBody(n)
	case *StructDeclStmt, *EnumDeclStmt:
		return nil // fully handled in hoist
	case *ImportSpec:
		return c.checkImport(n)
	case *BlockStmt:
		c.pushScope()
		defer c.popScope()
		for _, s := range n.Statements {
			if err := c.checkStmt(s); err != nil {
				return err
			}
		}
		return nil
	default:
		return newError(Internal, Span{}, "checker: unhandled statement type")
	}
}

func (c *Checker) checkVarDecl(n *VarDeclStmt) *Error {
	initType, err := c.checkExpr(n.Init)
	if err != nil {
		return err
	}
	target := initType
	if n.DeclaredType != nil {
		dt, err := c.resolveTypeExpr(n.DeclaredType)
		if err != nil {
			return err
		}
		if !Widens(initType, dt) {
			return newError(TypeError, n.Span_, "cannot assign %s to variable of type %s", initType, dt)
		}
		target = dt
	}
	n.Resolved = target
	if !c.declareVar(n.Name, target) {
		return newError(DuplicateDecl, n.Span_, "%q already declared in this scope", n.Name)
	}
	return nil
}

func (c *Checker) checkAssign(n *AssignStmt) *Error {
	targetType, err := c.checkExpr(n.Target)
	if err != nil {
		return err
	}
	valType, err := c.checkExpr(n.Value)
	if err != nil {
		return err
	}
	if !Widens(valType, targetType) {
		return newError(TypeError, n.Span_, "cannot assign %s to target of type %s", valType, targetType)
	}
	n.Resolved = targetType
	return nil
}

func (c *Checker) checkIf(n *IfStmt) *Error {
	condType, err := c.checkExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType.Kind != KBool {
		return newError(TypeError, n.Cond.exprSpan(), "if condition must be bool, got %s", condType)
	}
	if err := c.checkStmt(n.Then); err != nil {
		return err
	}
	if n.ElseIf != nil {
		return c.checkIf(n.ElseIf)
	}
	if n.Else != nil {
		return c.checkStmt(n.Else)
	}
	return nil
}

func (c *Checker) checkWhile(n *WhileStmt) *Error {
	condType, err := c.checkExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType.Kind != KBool {
		return newError(TypeError, n.Cond.exprSpan(), "while condition must be bool, got %s", condType)
	}
	return c.checkStmt(n.Body)
}

func (c *Checker) checkFor(n *ForStmt) *Error {
	c.pushScope()
	defer c.popScope()
	if n.Init != nil {
		if err := c.checkStmt(n.Init); err != nil {
			return err
		}
	}
	condType, err := c.checkExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType.Kind != KBool {
		return newError(TypeError, n.Cond.exprSpan(), "for condition must be bool, got %s", condType)
	}
	if n.Step != nil {
		if err := c.checkStmt(n.Step); err != nil {
			return err
		}
	}
	return c.checkStmt(n.Body)
}

func (c *Checker) checkReturn(n *ReturnStmt) *Error {
	if c.curFunc == nil {
		return newError(TypeError, n.Span_, "'return' outside a function body")
	}
	if n.Value == nil {
		if c.curFunc.ReturnType.Kind != KVoid {
			return newError(TypeError, n.Span_, "missing return value for function returning %s", c.curFunc.ReturnType)
		}
		n.Resolved = TVoid
		return nil
	}
	vt, err := c.checkExpr(n.Value)
	if err != nil {
		return err
	}
	if !Widens(vt, c.curFunc.ReturnType) {
		return newError(TypeError, n.Span_, "return type %s does not match function's declared %s", vt, c.curFunc.ReturnType)
	}
	n.Resolved = c.curFunc.ReturnType
	return nil
}

func (c *Checker) checkFuncBody(n *FuncDeclStmt) *Error {
	def := c.reg.Funcs[n.Name]
	prevFunc := c.curFunc
	c.curFunc = def
	c.pushScope()
	for i, pr := range n.Params {
		c.declareVar(pr.Name, def.ParamTypes[i])
	}
	for _, s := range n.Body.Statements {
		if err := c.checkStmt(s); err != nil {
			c.popScope()
			c.curFunc = prevFunc
			return err
		}
	}
	c.popScope()
	c.curFunc = prevFunc
	return nil
}

// checkImport loads the module through the shared Loader (modules.go), which
// parses, checks and runs the module's top level here, at check time; the
// evaluator's later import gets the cached result. It then binds the
// imported names' types into the current scope so later references
// type-check. A namespace import (`import name;` / `import name from
// "path"`) is bound as a Struct-typed variable named after the alias (see
// modules.go for why), one whose declared type is synthesized on the fly.
func (c *Checker) checkImport(n *ImportSpec) *Error {
	if c.loader == nil {
		return newError(ImportError, n.Span_, "imports are not available in this context")
	}
	mod, err := c.loader.Load(n, c.dir)
	if err != nil {
		return err
	}
	if len(n.Names) > 0 {
		for _, name := range n.Names {
			if fd, ok := mod.Reg.Funcs[name]; ok && fd.Exported {
				c.reg.Funcs[name] = fd
				continue
			}
			if sd, ok := mod.Reg.Structs[name]; ok && sd.Exported {
				c.reg.Structs[name] = sd
				continue
			}
			if ed, ok := mod.Reg.Enums[name]; ok && ed.Exported {
				c.reg.Enums[name] = ed
				continue
			}
			if t, ok := mod.ConstTypes[name]; ok {
				c.declareVar(name, t)
				continue
			}
			return newError(ImportError, n.Span_, "module %q has no exported member %q", n.Path, name)
		}
		return nil
	}
	alias := n.Alias
	for qname, fd := range mod.Reg.Funcs {
		if fd.Exported {
			c.reg.Funcs[alias+"."+qname] = fd
		}
	}
	for qname, sd := range mod.Reg.Structs {
		if sd.Exported {
			c.reg.Structs[qname] = sd
		}
	}
	for qname, ed := range mod.Reg.Enums {
		if ed.Exported {
			c.reg.Enums[qname] = ed
		}
	}
	// A namespace import's exported top-level constants are exposed as
	// "alias.name" field access; Value has no dedicated module/object
	// variant, so this reuses the existing FieldAccess machinery by
	// registering a synthetic struct type for the alias, avoiding a new
	// Value kind just for modules.
	nsName := "$module:" + alias
	fields := make([]FieldDef, 0, len(mod.ConstTypes))
	for name, t := range mod.ConstTypes {
		fields = append(fields, FieldDef{Name: name, Type: t})
	}
	c.reg.Structs[nsName] = &StructDef{Name: nsName, Fields: fields}
	c.declareVar(alias, TStructOf(nsName))
	return nil
}

// ---- P2: expressions ----

func (c *Checker) checkExpr(e Expression) (Type, *Error) {
	switch n := e.(type) {
	case *IntLit:
		n.Resolved = TInt
		return TInt, nil
	case *FloatLit:
		n.Resolved = TFloat
		return TFloat, nil
	case *StringLit:
		n.Resolved = TString
		return TString, nil
	case *BoolLit:
		n.Resolved = TBool
		return TBool, nil
	case *IdentExpr:
		return c.checkIdent(n)
	case *BinaryExpr:
		return c.checkBinary(n)
	case *UnaryExpr:
		return c.checkUnary(n)
	case *CallExpr:
		return c.checkCall(n)
	case *IndexExpr:
		return c.checkIndex(n)
	case *FieldAccessExpr:
		return c.checkFieldAccess(n)
	case *MethodCallExpr:
		return c.checkMethodCall(n)
	case *EnumPathExpr:
		return c.checkEnumPath(n)
	case *StructLitExpr:
		return c.checkStructLit(n)
	case *ArrayLitExpr:
		return c.checkArrayLit(n)
	default:
		return Type{}, newError(Internal, e.exprSpan(), "checker: unhandled expression type")
	}
}

func (c *Checker) checkIdent(n *IdentExpr) (Type, *Error) {
	if t, ok := c.lookupVar(n.Name); ok {
		n.Resolved = t
		return t, nil
	}
	return Type{}, newError(NameError, n.Span_, "undefined name %q", n.Name)
}

func (c *Checker) checkBinary(n *BinaryExpr) (Type, *Error) {
	lt, err := c.checkExpr(n.Left)
	if err != nil {
		return Type{}, err
	}
	rt, err := c.checkExpr(n.Right)
	if err != nil {
		return Type{}, err
	}
	switch n.Op {
	case PLUS:
		if lt.Kind == KString || rt.Kind == KString {
			n.Resolved = TString
			return TString, nil
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return Type{}, newError(TypeError, n.Span_, "'+' requires numeric or string operands, got %s and %s", lt, rt)
		}
		n.Resolved = WiderNumeric(lt, rt)
		return n.Resolved, nil
	case MINUS, STAR, SLASH:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return Type{}, newError(TypeError, n.Span_, "operator requires numeric operands, got %s and %s", lt, rt)
		}
		n.Resolved = WiderNumeric(lt, rt)
		return n.Resolved, nil
	case PERCENT:
		if lt.Kind != KInt || rt.Kind != KInt {
			return Type{}, newError(TypeError, n.Span_, "'%%' requires int operands, got %s and %s", lt, rt)
		}
		n.Resolved = TInt
		return TInt, nil
	case EQ, NEQ:
		wl, wr := lt, rt
		if lt.IsNumeric() && rt.IsNumeric() {
			wl, wr = TFloat, TFloat
		}
		if !wl.Equal(wr) {
			return Type{}, newError(TypeError, n.Span_, "cannot compare %s with %s", lt, rt)
		}
		n.Resolved = TBool
		return TBool, nil
	case LT, GT, LE, GE:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return Type{}, newError(TypeError, n.Span_, "ordering operator requires numeric operands, got %s and %s", lt, rt)
		}
		n.Resolved = TBool
		return TBool, nil
	case AND, OR:
		if lt.Kind != KBool || rt.Kind != KBool {
			return Type{}, newError(TypeError, n.Span_, "'&&'/'||' require bool operands, got %s and %s", lt, rt)
		}
		n.Resolved = TBool
		return TBool, nil
	default:
		return Type{}, newError(Internal, n.Span_, "checker: unknown binary operator")
	}
}

func (c *Checker) checkUnary(n *UnaryExpr) (Type, *Error) {
	ot, err := c.checkExpr(n.Operand)
	if err != nil {
		return Type{}, err
	}
	switch n.Op {
	case BANG:
		if ot.Kind != KBool {
			return Type{}, newError(TypeError, n.Span_, "'!' requires bool, got %s", ot)
		}
		n.Resolved = TBool
		return TBool, nil
	case MINUS:
		if !ot.IsNumeric() {
			return Type{}, newError(TypeError, n.Span_, "unary '-' requires numeric operand, got %s", ot)
		}
		n.Resolved = ot
		return ot, nil
	default:
		return Type{}, newError(Internal, n.Span_, "checker: unknown unary operator")
	}
}

func (c *Checker) checkCall(n *CallExpr) (Type, *Error) {
	if builtinNames[n.Callee.Name] {
		return c.checkBuiltinCall(n)
	}
	def, ok := c.reg.Funcs[n.Callee.Name]
	if !ok {
		return Type{}, newError(NameError, n.Span_, "call to undefined function %q", n.Callee.Name)
	}
	if len(n.Args) != len(def.ParamTypes) {
		return Type{}, newError(ArityError, n.Span_, "%q expects %d argument(s), got %d", n.Callee.Name, len(def.ParamTypes), len(n.Args))
	}
	n.ArgTargets = make([]Type, len(n.Args))
	for i, arg := range n.Args {
		at, err := c.checkExpr(arg)
		if err != nil {
			return Type{}, err
		}
		if !Widens(at, def.ParamTypes[i]) {
			return Type{}, newError(TypeError, arg.exprSpan(), "argument %d: cannot use %s as %s", i+1, at, def.ParamTypes[i])
		}
		n.ArgTargets[i] = def.ParamTypes[i]
	}
	n.Callee.Resolved = def.ReturnType
	n.Resolved = def.ReturnType
	return def.ReturnType, nil
}

func (c *Checker) checkIndex(n *IndexExpr) (Type, *Error) {
	rt, err := c.checkExpr(n.Receiver)
	if err != nil {
		return Type{}, err
	}
	it, err := c.checkExpr(n.Index)
	if err != nil {
		return Type{}, err
	}
	if it.Kind != KInt {
		return Type{}, newError(TypeError, n.Index.exprSpan(), "index must be int, got %s", it)
	}
	if rt.Kind == KString {
		return Type{}, newError(IndexError, n.Span_, "string indexing via '[]' is not supported; use slice(i, i+1)")
	}
	if rt.Kind != KArray {
		return Type{}, newError(TypeError, n.Span_, "cannot index into %s", rt)
	}
	n.Resolved = *rt.Elem
	return n.Resolved, nil
}

func (c *Checker) checkFieldAccess(n *FieldAccessExpr) (Type, *Error) {
	rt, err := c.checkExpr(n.Receiver)
	if err != nil {
		return Type{}, err
	}
	if rt.Kind != KStruct {
		return Type{}, newError(TypeError, n.Span_, "cannot access field %q on %s", n.Name, rt)
	}
	sd, ok := c.reg.Structs[rt.Name]
	if !ok {
		return Type{}, newError(Internal, n.Span_, "unknown struct %q", rt.Name)
	}
	ft, ok := sd.FieldType(n.Name)
	if !ok {
		return Type{}, newError(FieldError, n.Span_, "struct %q has no field %q", rt.Name, n.Name)
	}
	n.Resolved = ft
	return ft, nil
}

func (c *Checker) checkMethodCall(n *MethodCallExpr) (Type, *Error) {
	rt, err := c.checkExpr(n.Receiver)
	if err != nil {
		return Type{}, err
	}
	argTypes := make([]Type, len(n.Args))
	for i, a := range n.Args {
		t, err := c.checkExpr(a)
		if err != nil {
			return Type{}, err
		}
		argTypes[i] = t
	}
	if rt.Kind == KStruct {
		// namespace-import dispatch: receiver is a module alias binding,
		// and the "method" is really a qualified top-level function call.
		if ident, ok := n.Receiver.(*IdentExpr); ok {
			if def, ok := c.reg.Funcs[ident.Name+"."+n.Name]; ok {
				if len(argTypes) != len(def.ParamTypes) {
					return Type{}, newError(ArityError, n.Span_, "%q expects %d argument(s), got %d", n.Name, len(def.ParamTypes), len(argTypes))
				}
				for i, at := range argTypes {
					if !Widens(at, def.ParamTypes[i]) {
						return Type{}, newError(TypeError, n.Args[i].exprSpan(), "argument %d: cannot use %s as %s", i+1, at, def.ParamTypes[i])
					}
				}
				n.Resolved = def.ReturnType
				return def.ReturnType, nil
			}
		}
	}
	switch rt.Kind {
	case KString:
		switch n.Name {
		case "slice":
			if len(argTypes) != 2 || argTypes[0].Kind != KInt || argTypes[1].Kind != KInt {
				return Type{}, newError(ArityError, n.Span_, "String.slice(int, int) called with wrong arguments")
			}
			n.Resolved = TString
			return TString, nil
		case "split":
			if len(argTypes) != 1 || argTypes[0].Kind != KString {
				return Type{}, newError(ArityError, n.Span_, "String.split(string) called with wrong arguments")
			}
			n.Resolved = TArray(TString)
			return n.Resolved, nil
		case "replace":
			if len(argTypes) != 2 || argTypes[0].Kind != KString || argTypes[1].Kind != KString {
				return Type{}, newError(ArityError, n.Span_, "String.replace(string, string) called with wrong arguments")
			}
			n.Resolved = TString
			return TString, nil
		default:
			return Type{}, newError(NameError, n.Span_, "String has no method %q", n.Name)
		}
	case KArray:
		elem := *rt.Elem
		switch n.Name {
		case "push":
			if len(argTypes) != 1 || !Widens(argTypes[0], elem) {
				return Type{}, newError(TypeError, n.Span_, "Array.push expects one argument of type %s", elem)
			}
			n.Resolved = TVoid
			return TVoid, nil
		case "pop":
			if len(argTypes) != 0 {
				return Type{}, newError(ArityError, n.Span_, "Array.pop takes no arguments")
			}
			n.Resolved = elem
			return elem, nil
		case "slice":
			if len(argTypes) != 2 || argTypes[0].Kind != KInt || argTypes[1].Kind != KInt {
				return Type{}, newError(ArityError, n.Span_, "Array.slice(int, int) called with wrong arguments")
			}
			n.Resolved = rt
			return rt, nil
		case "join":
			if elem.Kind != KString {
				return Type{}, newError(TypeError, n.Span_, "Array.join is only defined on Array(string)")
			}
			if len(argTypes) != 1 || argTypes[0].Kind != KString {
				return Type{}, newError(ArityError, n.Span_, "Array.join(string) called with wrong arguments")
			}
			n.Resolved = TString
			return TString, nil
		default:
			return Type{}, newError(NameError, n.Span_, "Array has no method %q", n.Name)
		}
	default:
		return Type{}, newError(NameError, n.Span_, "%s has no method %q", rt, n.Name)
	}
}

func (c *Checker) checkEnumPath(n *EnumPathExpr) (Type, *Error) {
	ed, ok := c.reg.Enums[n.EnumName]
	if !ok {
		return Type{}, newError(NameError, n.Span_, "undefined enum %q", n.EnumName)
	}
	if !ed.HasVariant(n.VariantName) {
		return Type{}, newError(VariantError, n.Span_, "enum %q has no variant %q", n.EnumName, n.VariantName)
	}
	t := TEnumOf(n.EnumName)
	n.Resolved = t
	return t, nil
}

func (c *Checker) checkStructLit(n *StructLitExpr) (Type, *Error) {
	sd, ok := c.reg.Structs[n.TypeName]
	if !ok {
		return Type{}, newError(NameError, n.Span_, "undefined struct %q", n.TypeName)
	}
	provided := map[string]Expression{}
	for _, f := range n.Fields {
		if _, dup := provided[f.Name]; dup {
			return Type{}, newError(FieldError, n.Span_, "field %q provided more than once", f.Name)
		}
		provided[f.Name] = f.Value
	}
	n.FieldOrder = make([]string, len(sd.Fields))
	n.FieldTarget = make([]Type, len(sd.Fields))
	for i, fd := range sd.Fields {
		expr, ok := provided[fd.Name]
		if !ok {
			return Type{}, newError(FieldError, n.Span_, "struct %q literal missing field %q", n.TypeName, fd.Name)
		}
		vt, err := c.checkExpr(expr)
		if err != nil {
			return Type{}, err
		}
		if !Widens(vt, fd.Type) {
			return Type{}, newError(TypeError, expr.exprSpan(), "field %q: cannot assign %s to %s", fd.Name, vt, fd.Type)
		}
		n.FieldOrder[i] = fd.Name
		n.FieldTarget[i] = fd.Type
		delete(provided, fd.Name)
	}
	for extra := range provided {
		return Type{}, newError(FieldError, n.Span_, "struct %q has no field %q", n.TypeName, extra)
	}
	t := TStructOf(n.TypeName)
	n.Resolved = t
	return t, nil
}

func (c *Checker) checkArrayLit(n *ArrayLitExpr) (Type, *Error) {
	if len(n.Elements) == 0 {
		n.ElemType = TUnknown
		n.Resolved = TArray(TUnknown)
		return n.Resolved, nil
	}
	first, err := c.checkExpr(n.Elements[0])
	if err != nil {
		return Type{}, err
	}
	elemType := first
	for _, el := range n.Elements[1:] {
		t, err := c.checkExpr(el)
		if err != nil {
			return Type{}, err
		}
		if t.Equal(elemType) {
			continue
		}
		if Widens(t, elemType) {
			continue
		}
		if Widens(elemType, t) {
			elemType = t
			continue
		}
		return Type{}, newError(TypeError, el.exprSpan(), "array elements must share a common type; got %s after %s", t, elemType)
	}
	n.ElemType = elemType
	n.Resolved = TArray(elemType)
	return n.Resolved, nil
}
