// interpreter_ops.go — expression evaluation: operators, calls, composite
// construction and access.
//
// Evaluation order is strictly left-to-right; && and || short-circuit.
// Binary/unary arithmetic reuses WiderNumeric/widen so the
// evaluator never has to re-derive a decision the checker already made —
// every arithmetic BinaryExpr carries its checker-resolved Type.
package raven

import "strings"

func (ev *Evaluator) evalExpr(env *Env, e Expression) (Value, *Error) {
	switch n := e.(type) {
	case *IntLit:
		return IntVal(n.Value), nil
	case *FloatLit:
		return FloatVal(n.Value), nil
	case *StringLit:
		return StringVal(n.Value), nil
	case *BoolLit:
		return BoolVal(n.Value), nil
	case *IdentExpr:
		v, ok := env.Get(n.Name)
		if !ok {
			return Value{}, newError(NameError, n.Span_, "undefined name %q", n.Name)
		}
		return v, nil
	case *BinaryExpr:
		return ev.evalBinary(env, n)
	case *UnaryExpr:
		return ev.evalUnary(env, n)
	case *CallExpr:
		return ev.evalCall(env, n)
	case *IndexExpr:
		return ev.evalIndex(env, n)
	case *FieldAccessExpr:
		return ev.evalFieldAccess(env, n)
	case *MethodCallExpr:
		return ev.evalMethodCall(env, n)
	case *EnumPathExpr:
		return EnumVal(n.EnumName, n.VariantName), nil
	case *StructLitExpr:
		return ev.evalStructLit(env, n)
	case *ArrayLitExpr:
		return ev.evalArrayLit(env, n)
	default:
		return Value{}, newError(Internal, e.exprSpan(), "evaluator: unhandled expression type")
	}
}

func (ev *Evaluator) evalBinary(env *Env, n *BinaryExpr) (Value, *Error) {
	// && and || short-circuit: the RHS is only evaluated if it can still
	// change the result.
	if n.Op == AND {
		l, err := ev.evalExpr(env, n.Left)
		if err != nil {
			return Value{}, err
		}
		if !l.B {
			return BoolVal(false), nil
		}
		r, err := ev.evalExpr(env, n.Right)
		if err != nil {
			return Value{}, err
		}
		return BoolVal(r.B), nil
	}
	if n.Op == OR {
		l, err := ev.evalExpr(env, n.Left)
		if err != nil {
			return Value{}, err
		}
		if l.B {
			return BoolVal(true), nil
		}
		r, err := ev.evalExpr(env, n.Right)
		if err != nil {
			return Value{}, err
		}
		return BoolVal(r.B), nil
	}

	l, err := ev.evalExpr(env, n.Left)
	if err != nil {
		return Value{}, err
	}
	r, err := ev.evalExpr(env, n.Right)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case PLUS:
		if n.Resolved.Kind == KString {
			return StringVal(Format(l) + Format(r)), nil
		}
		return arith(n.Op, l, r, n.Resolved, n.Span_)
	case MINUS, STAR, SLASH:
		return arith(n.Op, l, r, n.Resolved, n.Span_)
	case PERCENT:
		if r.I == 0 {
			return Value{}, newError(DivisionByZero, n.Span_, "modulo by zero")
		}
		return IntVal(l.I % r.I), nil
	case EQ:
		return BoolVal(valuesEqual(l, r)), nil
	case NEQ:
		return BoolVal(!valuesEqual(l, r)), nil
	case LT, GT, LE, GE:
		return BoolVal(compareNumeric(n.Op, l, r)), nil
	}
	return Value{}, newError(Internal, n.Span_, "evaluator: unknown binary operator")
}

// arith applies +, -, *, / to two already-evaluated numeric operands,
// widening both to the checker's resolved result type first so "1 + 2.0"
// and "2.0 + 1" compute identically regardless of operand order.
func arith(op TokenType, l, r Value, result Type, span Span) (Value, *Error) {
	l = widen(l, result)
	r = widen(r, result)
	if result.Kind == KFloat {
		switch op {
		case PLUS:
			return FloatVal(l.F + r.F), nil
		case MINUS:
			return FloatVal(l.F - r.F), nil
		case STAR:
			return FloatVal(l.F * r.F), nil
		case SLASH:
			if r.F == 0 {
				return Value{}, newError(DivisionByZero, span, "division by zero")
			}
			return FloatVal(l.F / r.F), nil
		}
	}
	switch op {
	case PLUS:
		return IntVal(l.I + r.I), nil
	case MINUS:
		return IntVal(l.I - r.I), nil
	case STAR:
		return IntVal(l.I * r.I), nil
	case SLASH:
		if r.I == 0 {
			return Value{}, newError(DivisionByZero, span, "division by zero")
		}
		return IntVal(l.I / r.I), nil
	}
	return Value{}, newError(Internal, span, "evaluator: unknown arithmetic operator")
}

func compareNumeric(op TokenType, l, r Value) bool {
	lf, rf := asFloat(l), asFloat(r)
	switch op {
	case LT:
		return lf < rf
	case GT:
		return lf > rf
	case LE:
		return lf <= rf
	case GE:
		return lf >= rf
	}
	return false
}

func asFloat(v Value) float64 {
	if v.Kind == VInt {
		return float64(v.I)
	}
	return v.F
}

func valuesEqual(l, r Value) bool {
	if l.Kind == VInt || l.Kind == VFloat || r.Kind == VInt || r.Kind == VFloat {
		return asFloat(l) == asFloat(r)
	}
	switch l.Kind {
	case VBool:
		return l.B == r.B
	case VString:
		return l.S == r.S
	case VEnum:
		return l.EnumType == r.EnumType && l.EnumVariant == r.EnumVariant
	case VVoid:
		return r.Kind == VVoid
	case VArray:
		return l.Arr == r.Arr
	case VStruct:
		return l.St == r.St
	default:
		return false
	}
}

func (ev *Evaluator) evalUnary(env *Env, n *UnaryExpr) (Value, *Error) {
	v, err := ev.evalExpr(env, n.Operand)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case BANG:
		return BoolVal(!v.B), nil
	case MINUS:
		if v.Kind == VFloat {
			return FloatVal(-v.F), nil
		}
		return IntVal(-v.I), nil
	}
	return Value{}, newError(Internal, n.Span_, "evaluator: unknown unary operator")
}

func (ev *Evaluator) evalIndex(env *Env, n *IndexExpr) (Value, *Error) {
	recv, err := ev.evalExpr(env, n.Receiver)
	if err != nil {
		return Value{}, err
	}
	idx, err := ev.evalExpr(env, n.Index)
	if err != nil {
		return Value{}, err
	}
	i := idx.I
	if i < 0 || i >= int64(len(recv.Arr.Items)) {
		return Value{}, newError(IndexError, n.Span_, "index %d out of bounds for array of length %d", i, len(recv.Arr.Items))
	}
	return recv.Arr.Items[i], nil
}

func (ev *Evaluator) evalFieldAccess(env *Env, n *FieldAccessExpr) (Value, *Error) {
	recv, err := ev.evalExpr(env, n.Receiver)
	if err != nil {
		return Value{}, err
	}
	v, ok := recv.St.Get(n.Name)
	if !ok {
		return Value{}, newError(FieldError, n.Span_, "struct %q has no field %q", recv.St.TypeName, n.Name)
	}
	return v, nil
}

func (ev *Evaluator) evalStructLit(env *Env, n *StructLitExpr) (Value, *Error) {
	exprByName := map[string]Expression{}
	for _, f := range n.Fields {
		exprByName[f.Name] = f.Value
	}
	fields := map[string]Value{}
	order := make([]string, len(n.FieldOrder))
	for i, name := range n.FieldOrder {
		v, err := ev.evalExpr(env, exprByName[name])
		if err != nil {
			return Value{}, err
		}
		fields[name] = widen(v, n.FieldTarget[i])
		order[i] = name
	}
	return StructVal(n.TypeName, fields, order), nil
}

func (ev *Evaluator) evalArrayLit(env *Env, n *ArrayLitExpr) (Value, *Error) {
	items := make([]Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := ev.evalExpr(env, el)
		if err != nil {
			return Value{}, err
		}
		items[i] = widen(v, n.ElemType)
	}
	return ArrayVal(n.ElemType, items), nil
}

// evalCall dispatches a direct "name(args...)" call to either a built-in or
// a user-defined function.
func (ev *Evaluator) evalCall(env *Env, n *CallExpr) (Value, *Error) {
	if builtinNames[n.Callee.Name] {
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := ev.evalExpr(env, a)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return ev.callBuiltin(n.Callee.Name, args, n.Span_)
	}
	def, ok := ev.reg.Funcs[n.Callee.Name]
	if !ok {
		return Value{}, newError(NameError, n.Span_, "call to undefined function %q", n.Callee.Name)
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.evalExpr(env, a)
		if err != nil {
			return Value{}, err
		}
		args[i] = widen(v, n.ArgTargets[i])
	}
	return ev.callFunction(def, args)
}

// callFunction runs a call against a fresh frame seeded with parameter
// bindings, sharing only the global frame with the caller (never the
// caller's locals — see NewCallEnv).
func (ev *Evaluator) callFunction(def *FuncDef, args []Value) (Value, *Error) {
	callEnv := NewCallEnv(ev.global)
	for i, p := range def.Params {
		callEnv.Declare(p.Name, args[i])
	}
	res, err := ev.execStmts(callEnv, def.Body.Statements)
	if err != nil {
		return Value{}, err
	}
	if res.Returning {
		return res.Value, nil
	}
	return VoidVal(), nil
}

// evalMethodCall dispatches either a namespace-import call ("alias.fn(...)",
// really a qualified top-level function) or a built-in method on a String
// or Array receiver.
func (ev *Evaluator) evalMethodCall(env *Env, n *MethodCallExpr) (Value, *Error) {
	if ident, ok := n.Receiver.(*IdentExpr); ok {
		if def, ok := ev.reg.Funcs[ident.Name+"."+n.Name]; ok {
			args := make([]Value, len(n.Args))
			for i, a := range n.Args {
				v, err := ev.evalExpr(env, a)
				if err != nil {
					return Value{}, err
				}
				args[i] = widen(v, def.ParamTypes[i])
			}
			return ev.callFunction(def, args)
		}
	}
	recv, err := ev.evalExpr(env, n.Receiver)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.evalExpr(env, a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	switch recv.Kind {
	case VString:
		return stringMethod(recv, n.Name, args, n.Span_)
	case VArray:
		return arrayMethod(&recv, n.Name, args, n.Span_)
	default:
		return Value{}, newError(NameError, n.Span_, "%s has no method %q", recv.TypeName(), n.Name)
	}
}

func stringMethod(recv Value, name string, args []Value, span Span) (Value, *Error) {
	runes := []rune(recv.S)
	switch name {
	case "slice":
		start, end := args[0].I, args[1].I
		if start < 0 || end > int64(len(runes)) || start > end {
			return Value{}, newError(IndexError, span, "slice(%d, %d) out of bounds for string of length %d", start, end, len(runes))
		}
		return StringVal(string(runes[start:end])), nil
	case "split":
		parts := strings.Split(recv.S, args[0].S)
		items := make([]Value, len(parts))
		for i, p := range parts {
			items[i] = StringVal(p)
		}
		return ArrayVal(TString, items), nil
	case "replace":
		return StringVal(strings.ReplaceAll(recv.S, args[0].S, args[1].S)), nil
	default:
		return Value{}, newError(NameError, span, "String has no method %q", name)
	}
}

func arrayMethod(recv *Value, name string, args []Value, span Span) (Value, *Error) {
	switch name {
	case "push":
		recv.Arr.Items = append(recv.Arr.Items, args[0])
		return VoidVal(), nil
	case "pop":
		n := len(recv.Arr.Items)
		if n == 0 {
			return Value{}, newError(IndexError, span, "pop() on empty array")
		}
		last := recv.Arr.Items[n-1]
		recv.Arr.Items = recv.Arr.Items[:n-1]
		return last, nil
	case "slice":
		start, end := args[0].I, args[1].I
		items := recv.Arr.Items
		if start < 0 || end > int64(len(items)) || start > end {
			return Value{}, newError(IndexError, span, "slice(%d, %d) out of bounds for array of length %d", start, end, len(items))
		}
		out := make([]Value, end-start)
		copy(out, items[start:end])
		return ArrayVal(recv.Arr.Elem, out), nil
	case "join":
		sep := args[0].S
		parts := make([]string, len(recv.Arr.Items))
		for i, it := range recv.Arr.Items {
			parts[i] = it.S
		}
		return StringVal(strings.Join(parts, sep)), nil
	default:
		return Value{}, newError(NameError, span, "Array has no method %q", name)
	}
}
