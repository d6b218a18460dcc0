// interpreter_exec.go — statement execution.
//
// Every execStmt call returns a StepResult; a Returning result must be
// propagated by the caller without executing anything after it. Block
// execution checks this between statements and returns immediately once
// one comes back Returning; the same check applies to loop bodies.
package raven

func (ev *Evaluator) execStmt(env *Env, st Statement) (StepResult, *Error) {
	switch n := st.(type) {
	case *VarDeclStmt:
		return stepNormal, ev.execVarDecl(env, n)
	case *AssignStmt:
		return stepNormal, ev.execAssign(env, n)
	case *IfStmt:
		return ev.execIf(env, n)
	case *WhileStmt:
		return ev.execWhile(env, n)
	case *ForStmt:
		return ev.execFor(env, n)
	case *ReturnStmt:
		return ev.execReturn(env, n)
	case *ExprStmt:
		_, err := ev.evalExpr(env, n.Value)
		return stepNormal, err
	case *FuncDeclStmt, *StructDeclStmt, *EnumDeclStmt:
		return stepNormal, nil // fully resolved by the checker's hoist pass
	case *ImportSpec:
		return stepNormal, ev.execImport(env, n)
	case *BlockStmt:
		return ev.execBlock(env, n)
	default:
		return stepNormal, newError(Internal, st.stmtSpan(), "evaluator: unhandled statement type")
	}
}

// execBlock runs a block in its own nested frame, stopping at the first
// Returning statement.
func (ev *Evaluator) execBlock(env *Env, blk *BlockStmt) (StepResult, *Error) {
	env.Push()
	defer env.Pop()
	return ev.execStmts(env, blk.Statements)
}

// execStmts runs a statement list in the caller's current frame, without
// pushing a new one — used for a function body's top-level statements,
// which share the frame their parameters were declared into (mirroring
// checkFuncBody, which checks the body without an extra pushScope beyond
// the one seeded with parameters).
func (ev *Evaluator) execStmts(env *Env, stmts []Statement) (StepResult, *Error) {
	for _, st := range stmts {
		res, err := ev.execStmt(env, st)
		if err != nil {
			return stepNormal, err
		}
		if res.Returning {
			return res, nil
		}
	}
	return stepNormal, nil
}

func (ev *Evaluator) execVarDecl(env *Env, n *VarDeclStmt) *Error {
	v, err := ev.evalExpr(env, n.Init)
	if err != nil {
		return err
	}
	v = widen(v, n.Resolved)
	if !env.Declare(n.Name, v) {
		return newError(Internal, n.Span_, "%q already declared in this scope", n.Name)
	}
	return nil
}

func (ev *Evaluator) execAssign(env *Env, n *AssignStmt) *Error {
	v, err := ev.evalExpr(env, n.Value)
	if err != nil {
		return err
	}
	v = widen(v, n.Resolved)
	return ev.assignTo(env, n.Target, v)
}

// assignTo implements the three legal assignment-target shapes: a bare
// variable, a struct field, and an array index.
func (ev *Evaluator) assignTo(env *Env, target Expression, v Value) *Error {
	switch t := target.(type) {
	case *IdentExpr:
		if !env.Assign(t.Name, v) {
			return newError(NameError, t.Span_, "undefined name %q", t.Name)
		}
		return nil
	case *FieldAccessExpr:
		recv, err := ev.evalExpr(env, t.Receiver)
		if err != nil {
			return err
		}
		if recv.Kind != VStruct {
			return newError(TypeError, t.Span_, "cannot assign field %q on non-struct value", t.Name)
		}
		recv.St.Set(t.Name, v)
		return nil
	case *IndexExpr:
		recv, err := ev.evalExpr(env, t.Receiver)
		if err != nil {
			return err
		}
		idxV, err := ev.evalExpr(env, t.Index)
		if err != nil {
			return err
		}
		if recv.Kind != VArray {
			return newError(TypeError, t.Span_, "cannot index-assign into non-array value")
		}
		i := idxV.I
		if i < 0 || i >= int64(len(recv.Arr.Items)) {
			return newError(IndexError, t.Span_, "index %d out of bounds for array of length %d", i, len(recv.Arr.Items))
		}
		recv.Arr.Items[i] = v
		return nil
	default:
		return newError(InvalidAssignTarget, target.exprSpan(), "invalid assignment target")
	}
}

func (ev *Evaluator) execIf(env *Env, n *IfStmt) (StepResult, *Error) {
	cond, err := ev.evalExpr(env, n.Cond)
	if err != nil {
		return stepNormal, err
	}
	if cond.B {
		return ev.execBlock(env, n.Then)
	}
	if n.ElseIf != nil {
		return ev.execIf(env, n.ElseIf)
	}
	if n.Else != nil {
		return ev.execBlock(env, n.Else)
	}
	return stepNormal, nil
}

func (ev *Evaluator) execWhile(env *Env, n *WhileStmt) (StepResult, *Error) {
	for {
		cond, err := ev.evalExpr(env, n.Cond)
		if err != nil {
			return stepNormal, err
		}
		if !cond.B {
			return stepNormal, nil
		}
		res, err := ev.execBlock(env, n.Body)
		if err != nil {
			return stepNormal, err
		}
		if res.Returning {
			return res, nil
		}
	}
}

func (ev *Evaluator) execFor(env *Env, n *ForStmt) (StepResult, *Error) {
	env.Push()
	defer env.Pop()
	if n.Init != nil {
		if _, err := ev.execStmt(env, n.Init); err != nil {
			return stepNormal, err
		}
	}
	for {
		cond, err := ev.evalExpr(env, n.Cond)
		if err != nil {
			return stepNormal, err
		}
		if !cond.B {
			return stepNormal, nil
		}
		res, err := ev.execBlock(env, n.Body)
		if err != nil {
			return stepNormal, err
		}
		if res.Returning {
			return res, nil
		}
		if n.Step != nil {
			if _, err := ev.execStmt(env, n.Step); err != nil {
				return stepNormal, err
			}
		}
	}
}

func (ev *Evaluator) execReturn(env *Env, n *ReturnStmt) (StepResult, *Error) {
	if n.Value == nil {
		return stepReturn(VoidVal()), nil
	}
	v, err := ev.evalExpr(env, n.Value)
	if err != nil {
		return stepNormal, err
	}
	return stepReturn(widen(v, n.Resolved)), nil
}

// execImport binds an already-loaded (cache-hit, per the Loader contract)
// module's exports into env. Function/struct/enum declarations were already
// merged into the shared Registry during type checking; only the live
// constant values need binding here.
func (ev *Evaluator) execImport(env *Env, n *ImportSpec) *Error {
	mod, err := ev.loader.Load(n, ev.dir)
	if err != nil {
		return err
	}
	if len(n.Names) > 0 {
		for _, name := range n.Names {
			if v, ok := mod.ConstValues[name]; ok {
				env.Declare(name, v)
			}
		}
		return nil
	}
	fields := map[string]Value{}
	order := make([]string, 0, len(mod.ConstValues))
	for name, v := range mod.ConstValues {
		fields[name] = v
		order = append(order, name)
	}
	env.Declare(n.Alias, StructVal("$module:"+n.Alias, fields, order))
	return nil
}

// widen applies the checker's numeric-widening decision at runtime: an Int
// value flowing into a Float-typed slot becomes a Float. Every other
// combination is already exact by the time the checker accepted it.
func widen(v Value, target Type) Value {
	if target.Kind == KFloat && v.Kind == VInt {
		return FloatVal(float64(v.I))
	}
	return v
}
