// builtin_core.go — the process-wide built-in registry's core members:
// print, input, len, type, format, enum_from_string. File I/O built-ins
// live in builtin_file.go.
//
// Builtins are not ordinary FuncDefs (they have no Raven-source body and
// several are variadic at the type level), so the checker and evaluator
// each special-case them by name rather than looking them up in a Registry.
package raven

import (
	"fmt"
	"strings"
)

// builtinNames is consulted by both checker.checkCall and
// evaluator.evalCall before falling back to a user-defined function lookup.
var builtinNames = map[string]bool{
	"print":            true,
	"input":            true,
	"len":              true,
	"type":             true,
	"format":           true,
	"read_file":        true,
	"write_file":       true,
	"append_file":      true,
	"file_exists":      true,
	"enum_from_string": true,
}

// checkBuiltinCall validates one built-in call's arity/types and resolves
// its result type, since built-in signatures don't fit the uniform
// fixed-arity shape a Registry FuncDef assumes (print and format are
// variadic; len/type accept more than one receiver shape).
func (c *Checker) checkBuiltinCall(n *CallExpr) (Type, *Error) {
	argTypes := make([]Type, len(n.Args))
	for i, a := range n.Args {
		t, err := c.checkExpr(a)
		if err != nil {
			return Type{}, err
		}
		argTypes[i] = t
	}
	switch n.Callee.Name {
	case "print":
		n.Resolved = TVoid
	case "input":
		if len(argTypes) != 1 || argTypes[0].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "input(prompt: string) called with wrong arguments")
		}
		n.Resolved = TString
	case "len":
		if len(argTypes) != 1 || (argTypes[0].Kind != KString && argTypes[0].Kind != KArray) {
			return Type{}, newError(TypeError, n.Span_, "len() expects a string or array, got %s", describeArgs(argTypes))
		}
		n.Resolved = TInt
	case "type":
		if len(argTypes) != 1 {
			return Type{}, newError(ArityError, n.Span_, "type() expects exactly one argument")
		}
		n.Resolved = TString
	case "format":
		if len(argTypes) == 0 || argTypes[0].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "format(template: string, ...) called with wrong arguments")
		}
		n.Resolved = TString
	case "read_file":
		if len(argTypes) != 1 || argTypes[0].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "read_file(path: string) called with wrong arguments")
		}
		n.Resolved = TString
	case "write_file", "append_file":
		if len(argTypes) != 2 || argTypes[0].Kind != KString || argTypes[1].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "%s(path: string, content: string) called with wrong arguments", n.Callee.Name)
		}
		n.Resolved = TVoid
	case "file_exists":
		if len(argTypes) != 1 || argTypes[0].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "file_exists(path: string) called with wrong arguments")
		}
		n.Resolved = TBool
	case "enum_from_string":
		if len(argTypes) != 2 || argTypes[0].Kind != KString || argTypes[1].Kind != KString {
			return Type{}, newError(ArityError, n.Span_, "enum_from_string(enum_name: string, variant_name: string) called with wrong arguments")
		}
		if lit, ok := n.Args[0].(*StringLit); ok {
			if _, exists := c.reg.Enums[lit.Value]; !exists {
				return Type{}, newError(NameError, n.Span_, "undefined enum %q", lit.Value)
			}
			n.Resolved = TEnumOf(lit.Value)
		} else {
			n.Resolved = TUnknown
		}
	default:
		return Type{}, newError(Internal, n.Span_, "checker: unregistered builtin %q", n.Callee.Name)
	}
	n.Callee.Resolved = n.Resolved
	return n.Resolved, nil
}

func describeArgs(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// callBuiltin executes a built-in whose arguments have already been
// evaluated (file I/O built-ins live in builtin_file.go but are dispatched
// from here too, to keep one call site).
func (ev *Evaluator) callBuiltin(name string, args []Value, span Span) (Value, *Error) {
	switch name {
	case "print":
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = Format(a)
		}
		fmt.Fprintln(ev.out, strings.Join(parts, " "))
		return VoidVal(), nil
	case "input":
		fmt.Fprint(ev.out, args[0].S)
		line, _ := ev.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		return StringVal(line), nil
	case "len":
		if args[0].Kind == VString {
			return IntVal(int64(len([]rune(args[0].S)))), nil
		}
		return IntVal(int64(len(args[0].Arr.Items))), nil
	case "type":
		return StringVal(args[0].TypeName()), nil
	case "format":
		return formatTemplate(args, span)
	case "read_file", "write_file", "append_file", "file_exists":
		return ev.callFileBuiltin(name, args, span)
	case "enum_from_string":
		return ev.callEnumFromString(args, span)
	default:
		return Value{}, newError(Internal, span, "evaluator: unregistered builtin %q", name)
	}
}

// formatTemplate replaces each "{}" placeholder in order with the textual
// form of the next argument. Excess arguments (more args than placeholders)
// are appended, space-separated, after the substituted template — the more
// forgiving choice, and it mirrors how print() never drops data. A
// placeholder with no remaining argument is an error.
func formatTemplate(args []Value, span Span) (Value, *Error) {
	template := args[0].S
	rest := args[1:]
	var sb strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		if template[i] == '{' && i+1 < len(template) && template[i+1] == '}' {
			if next >= len(rest) {
				return Value{}, newError(ArityError, span, "format: missing argument for placeholder %d", next+1)
			}
			sb.WriteString(Format(rest[next]))
			next++
			i++
			continue
		}
		sb.WriteByte(template[i])
	}
	for _, extra := range rest[next:] {
		sb.WriteByte(' ')
		sb.WriteString(Format(extra))
	}
	return StringVal(sb.String()), nil
}

func (ev *Evaluator) callEnumFromString(args []Value, span Span) (Value, *Error) {
	enumName, variantName := args[0].S, args[1].S
	ed, ok := ev.reg.Enums[enumName]
	if !ok {
		return Value{}, newError(NameError, span, "undefined enum %q", enumName)
	}
	if !ed.HasVariant(variantName) {
		return Value{}, newError(VariantError, span, "enum %q has no variant %q", enumName, variantName)
	}
	return EnumVal(enumName, variantName), nil
}
