// parser.go — recursive-descent parser with Pratt-style precedence climbing.
//
// The parser holds one token of lookahead (cur). peekNext can buffer one
// further token (peeked), but no parse rule calls it: "Ident {" is decided
// after the identifier is consumed, and "export" is consumed before the
// declaration that follows it is dispatched.
package raven

type Parser struct {
	lx      *Lexer
	cur     Token
	peeked  *Token
	lastErr *Error
}

// NewParser builds a Parser over src and primes the first token.
func NewParser(src string) (*Parser, *Error) {
	p := &Parser{lx: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseProgram parses a full source file: a top-level sequence of
// statements until EOF.
func ParseProgram(src string) (*Program, *Error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{}
	for p.cur.Type != EOF {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, st)
	}
	return prog, nil
}

// ---- token plumbing ----

func (p *Parser) advance() *Error {
	if p.peeked != nil {
		p.cur = *p.peeked
		p.peeked = nil
		return nil
	}
	tk, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tk
	return nil
}

// peekNext returns the token after p.cur without consuming it.
func (p *Parser) peekNext() (Token, *Error) {
	if p.peeked == nil {
		tk, err := p.lx.Next()
		if err != nil {
			return Token{}, err
		}
		p.peeked = &tk
	}
	return *p.peeked, nil
}

func (p *Parser) at(t TokenType) bool { return p.cur.Type == t }

func (p *Parser) expect(t TokenType, what string) (Token, *Error) {
	if p.cur.Type != t {
		return Token{}, newError(ParseError, p.cur.Span, "expected %s, found %q", what, p.cur.Lexeme)
	}
	tk := p.cur
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tk, nil
}

// ---- statements ----

func (p *Parser) parseStatement() (Statement, *Error) {
	switch p.cur.Type {
	case LET:
		return p.parseVarDecl()
	case FUN:
		return p.parseFuncDecl(false)
	case STRUCT:
		return p.parseStructDecl(false)
	case ENUM:
		return p.parseEnumDecl(false)
	case EXPORT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseExported()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case IMPORT:
		return p.parseImport()
	case LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseExported() (Statement, *Error) {
	switch p.cur.Type {
	case FUN:
		return p.parseFuncDecl(true)
	case STRUCT:
		return p.parseStructDecl(true)
	case ENUM:
		return p.parseEnumDecl(true)
	case LET:
		return p.parseVarDeclExported(true)
	default:
		return nil, newError(ParseError, p.cur.Span, "expected a declaration after 'export', found %q", p.cur.Lexeme)
	}
}

func (p *Parser) parseVarDecl() (Statement, *Error) {
	return p.parseVarDeclExported(false)
}

func (p *Parser) parseVarDeclExported(exported bool) (Statement, *Error) {
	start := p.cur.Span
	if _, err := p.expect(LET, "'let'"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	var declared *TypeExpr
	if p.at(COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		te, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		declared = te
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(SEMI, "';'")
	if err != nil {
		return nil, err
	}
	return &VarDeclStmt{Name: name.Lexeme, DeclaredType: declared, Init: init, Exported: exported, Span_: start.Merge(end.Span)}, nil
}

func (p *Parser) parseTypeExpr() (*TypeExpr, *Error) {
	start := p.cur.Span
	var name string
	switch p.cur.Type {
	case VOID:
		name = "void"
	case IDENT:
		name = p.cur.Lexeme
	default:
		return nil, newError(ParseError, p.cur.Span, "expected a type, found %q", p.cur.Lexeme)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	depth := 0
	end := start
	for p.at(LBRACKET) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rb, err := p.expect(RBRACKET, "']'")
		if err != nil {
			return nil, err
		}
		end = rb.Span
		depth++
	}
	return &TypeExpr{Name: name, ArrayDepth: depth, Span: start.Merge(end)}, nil
}

func (p *Parser) parseBlock() (*BlockStmt, *Error) {
	start, err := p.expect(LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	blk := &BlockStmt{}
	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, newError(ParseError, p.cur.Span, "unexpected end of input, expected '}'")
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, st)
	}
	end, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	blk.Span_ = start.Span.Merge(end.Span)
	return blk, nil
}

func (p *Parser) parseIf() (Statement, *Error) {
	start, err := p.expect(IF, "'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, Span_: start.Span.Merge(then.Span_)}
	if p.at(ELSEIF) {
		elseIf, err := p.parseElseIf()
		if err != nil {
			return nil, err
		}
		stmt.ElseIf = elseIf
		stmt.Span_ = stmt.Span_.Merge(elseIf.Span_)
	} else if p.at(ELSE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlk
		stmt.Span_ = stmt.Span_.Merge(elseBlk.Span_)
	}
	return stmt, nil
}

// parseElseIf handles a chain of "elseif (...) { ... }" clauses, each
// optionally terminated by a trailing "else { ... }" — elseif is lexed as
// its own keyword token, distinct from a separate "else"+"if" pair, so this
// never competes with ordinary else-block parsing.
func (p *Parser) parseElseIf() (*IfStmt, *Error) {
	start, err := p.expect(ELSEIF, "'elseif'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, Span_: start.Span.Merge(then.Span_)}
	if p.at(ELSEIF) {
		next, err := p.parseElseIf()
		if err != nil {
			return nil, err
		}
		stmt.ElseIf = next
		stmt.Span_ = stmt.Span_.Merge(next.Span_)
	} else if p.at(ELSE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlk
		stmt.Span_ = stmt.Span_.Merge(elseBlk.Span_)
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Statement, *Error) {
	start, err := p.expect(WHILE, "'while'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Span_: start.Span.Merge(body.Span_)}, nil
}

func (p *Parser) parseFor() (Statement, *Error) {
	start, err := p.expect(FOR, "'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	var initStmt Statement
	if !p.at(SEMI) {
		if p.at(LET) {
			initStmt, err = p.parseVarDeclNoConsumeSemi()
		} else {
			initStmt, err = p.parseAssignNoConsumeSemi()
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMI, "';'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMI, "';'"); err != nil {
		return nil, err
	}
	var step Statement
	if !p.at(RPAREN) {
		step, err = p.parseAssignNoConsumeSemi()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Init: initStmt, Cond: cond, Step: step, Body: body, Span_: start.Span.Merge(body.Span_)}, nil
}

// parseVarDeclNoConsumeSemi parses "let name[: type] = expr" without eating
// the trailing ';' — used for the for-loop init clause, which shares its
// semicolon with the loop header rather than owning one of its own.
func (p *Parser) parseVarDeclNoConsumeSemi() (Statement, *Error) {
	start := p.cur.Span
	if _, err := p.expect(LET, "'let'"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	var declared *TypeExpr
	if p.at(COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		te, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		declared = te
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &VarDeclStmt{Name: name.Lexeme, DeclaredType: declared, Init: init, Span_: start.Merge(init.exprSpan())}, nil
}

// parseAssignNoConsumeSemi parses "target = expr" without eating a ';' —
// used for the for-loop init/step clauses.
func (p *Parser) parseAssignNoConsumeSemi() (Statement, *Error) {
	target, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := validateAssignTarget(target); err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{Target: target, Value: value, Span_: target.exprSpan().Merge(value.exprSpan())}, nil
}

func (p *Parser) parseReturn() (Statement, *Error) {
	start, err := p.expect(RETURN, "'return'")
	if err != nil {
		return nil, err
	}
	if p.at(SEMI) {
		end, err := p.expect(SEMI, "';'")
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Span_: start.Span.Merge(end.Span)}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(SEMI, "';'")
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: val, Span_: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseFuncDecl(exported bool) (Statement, *Error) {
	start, err := p.expect(FUN, "'fun'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []Param
	for !p.at(RPAREN) {
		pname, err := p.expect(IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':'"); err != nil {
			return nil, err
		}
		pt, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: pname.Lexeme, Type: pt, Span: pname.Span.Merge(pt.Span)})
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	if _, err := p.expect(RPAREN, "')'"); err != nil {
		return nil, err
	}
	var ret *TypeExpr
	if p.at(ARROW) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rt, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		ret = rt
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDeclStmt{Name: name.Lexeme, Params: params, ReturnType: ret, Body: body, Exported: exported, Span_: start.Span.Merge(body.Span_)}, nil
}

func (p *Parser) parseStructDecl(exported bool) (Statement, *Error) {
	start, err := p.expect(STRUCT, "'struct'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var fields []FieldDeclAST
	for !p.at(RBRACE) {
		fname, err := p.expect(IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':'"); err != nil {
			return nil, err
		}
		ft, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldDeclAST{Name: fname.Lexeme, Type: ft, Span: fname.Span.Merge(ft.Span)})
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	return &StructDeclStmt{Name: name.Lexeme, Fields: fields, Exported: exported, Span_: start.Span.Merge(end.Span)}, nil
}

func (p *Parser) parseEnumDecl(exported bool) (Statement, *Error) {
	start, err := p.expect(ENUM, "'enum'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var variants []string
	for !p.at(RBRACE) {
		v, err := p.expect(IDENT, "variant name")
		if err != nil {
			return nil, err
		}
		variants = append(variants, v.Lexeme)
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	return &EnumDeclStmt{Name: name.Lexeme, Variants: variants, Exported: exported, Span_: start.Span.Merge(end.Span)}, nil
}

// parseImport handles all three binding forms:
//
//	import name;
//	import name from "path.rv";
//	import { a, b } from "path.rv";
func (p *Parser) parseImport() (Statement, *Error) {
	start, err := p.expect(IMPORT, "'import'")
	if err != nil {
		return nil, err
	}
	if p.at(LBRACE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var names []string
		for !p.at(RBRACE) {
			n, err := p.expect(IDENT, "imported name")
			if err != nil {
				return nil, err
			}
			names = append(names, n.Lexeme)
			if p.at(COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else {
				break
			}
		}
		if _, err := p.expect(RBRACE, "'}'"); err != nil {
			return nil, err
		}
		if _, err := p.expect(FROM, "'from'"); err != nil {
			return nil, err
		}
		path, err := p.expect(STRING_LIT, "module path string")
		if err != nil {
			return nil, err
		}
		end, err := p.expect(SEMI, "';'")
		if err != nil {
			return nil, err
		}
		return &ImportSpec{Names: names, Path: path.StrVal, Span_: start.Span.Merge(end.Span)}, nil
	}

	alias, err := p.expect(IDENT, "module name")
	if err != nil {
		return nil, err
	}
	if p.at(FROM) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		path, err := p.expect(STRING_LIT, "module path string")
		if err != nil {
			return nil, err
		}
		end, err := p.expect(SEMI, "';'")
		if err != nil {
			return nil, err
		}
		return &ImportSpec{Alias: alias.Lexeme, Path: path.StrVal, Span_: start.Span.Merge(end.Span)}, nil
	}
	end, err := p.expect(SEMI, "';'")
	if err != nil {
		return nil, err
	}
	return &ImportSpec{Alias: alias.Lexeme, Span_: start.Span.Merge(end.Span)}, nil
}

// parseExprOrAssignStmt parses either an assignment statement or a bare
// expression statement, deciding by whether '=' follows the parsed
// expression: the LHS is parsed as an ordinary expression first, then
// reinterpreted as an assignment target only if '=' follows.
func (p *Parser) parseExprOrAssignStmt() (Statement, *Error) {
	start := p.cur.Span
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(ASSIGN) {
		if err := validateAssignTarget(expr); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(SEMI, "';'")
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Target: expr, Value: value, Span_: start.Merge(end.Span)}, nil
	}
	end, err := p.expect(SEMI, "';'")
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Value: expr, Span_: start.Merge(end.Span)}, nil
}

// validateAssignTarget enforces the assignment-target grammar: a
// non-empty left-denoting chain of Ident, FieldAccess-of-target, and
// Index-of-target. Any other expression shape on the LHS of '=' is rejected.
func validateAssignTarget(e Expression) *Error {
	switch n := e.(type) {
	case *IdentExpr:
		return nil
	case *FieldAccessExpr:
		return validateAssignTarget(n.Receiver)
	case *IndexExpr:
		return validateAssignTarget(n.Receiver)
	default:
		return newError(InvalidAssignTarget, e.exprSpan(), "invalid assignment target")
	}
}

// ---- expressions ----

// precedence levels, lowest to highest.
const (
	precNone = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

func binPrec(t TokenType) int {
	switch t {
	case OR:
		return precOr
	case AND:
		return precAnd
	case EQ, NEQ:
		return precEquality
	case LT, GT, LE, GE:
		return precRelational
	case PLUS, MINUS:
		return precAdditive
	case STAR, SLASH, PERCENT:
		return precMultiplicative
	default:
		return precNone
	}
}

func (p *Parser) parseExpr() (Expression, *Error) {
	return p.parseBinary(precOr)
}

// parseBinary implements precedence climbing: it parses a unary operand,
// then folds in each following operator whose precedence is at least
// minPrec, parsing that operator's right operand one level higher so that
// operators of equal precedence associate to the left.
func (p *Parser) parseBinary(minPrec int) (Expression, *Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := binPrec(p.cur.Type)
		if prec == precNone || prec < minPrec {
			return left, nil
		}
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Span_: left.exprSpan().Merge(right.exprSpan())}
	}
}

func (p *Parser) parseUnary() (Expression, *Error) {
	if p.at(BANG) || p.at(MINUS) {
		start := p.cur.Span
		op := p.cur.Type
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand, Span_: start.Merge(operand.exprSpan())}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// '.ident'/'.ident(args)'/'[expr]'/'(args)'/'::ident' suffixes.
func (p *Parser) parsePostfix() (Expression, *Error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case DOT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.expect(IDENT, "field or method name")
			if err != nil {
				return nil, err
			}
			if p.at(LPAREN) {
				args, endSpan, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &MethodCallExpr{Receiver: expr, Name: name.Lexeme, Args: args, Span_: expr.exprSpan().Merge(endSpan)}
			} else {
				expr = &FieldAccessExpr{Receiver: expr, Name: name.Lexeme, Span_: expr.exprSpan().Merge(name.Span)}
			}
		case LBRACKET:
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(RBRACKET, "']'")
			if err != nil {
				return nil, err
			}
			expr = &IndexExpr{Receiver: expr, Index: idx, Span_: expr.exprSpan().Merge(end.Span)}
		case LPAREN:
			ident, ok := expr.(*IdentExpr)
			if !ok {
				return nil, newError(ParseError, p.cur.Span, "only a plain identifier may be called directly")
			}
			args, endSpan, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: ident, Args: args, Span_: expr.exprSpan().Merge(endSpan)}
		case DCOLON:
			ident, ok := expr.(*IdentExpr)
			if !ok {
				return nil, newError(ParseError, p.cur.Span, "'::' may only follow an enum name")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			variant, err := p.expect(IDENT, "variant name")
			if err != nil {
				return nil, err
			}
			expr = &EnumPathExpr{EnumName: ident.Name, VariantName: variant.Lexeme, Span_: ident.Span_.Merge(variant.Span)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]Expression, Span, *Error) {
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return nil, Span{}, err
	}
	var args []Expression
	for !p.at(RPAREN) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, Span{}, err
		}
		args = append(args, a)
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, Span{}, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(RPAREN, "')'")
	if err != nil {
		return nil, Span{}, err
	}
	return args, end.Span, nil
}

func (p *Parser) parsePrimary() (Expression, *Error) {
	switch p.cur.Type {
	case INT_LIT:
		tk := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &IntLit{Value: tk.IntVal, Span_: tk.Span}, nil
	case FLOAT_LIT:
		tk := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &FloatLit{Value: tk.FloatVal, Span_: tk.Span}, nil
	case STRING_LIT:
		tk := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &StringLit{Value: tk.StrVal, Span_: tk.Span}, nil
	case TRUE, FALSE:
		tk := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &BoolLit{Value: tk.Type == TRUE, Span_: tk.Span}, nil
	case LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case LBRACKET:
		return p.parseArrayLit()
	case IDENT:
		return p.parseIdentOrStructLit()
	default:
		return nil, newError(ParseError, p.cur.Span, "unexpected token %q in expression", p.cur.Lexeme)
	}
}

func (p *Parser) parseArrayLit() (Expression, *Error) {
	start, err := p.expect(LBRACKET, "'['")
	if err != nil {
		return nil, err
	}
	var elems []Expression
	for !p.at(RBRACKET) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(RBRACKET, "']'")
	if err != nil {
		return nil, err
	}
	return &ArrayLitExpr{Elements: elems, Span_: start.Span.Merge(end.Span)}, nil
}

// parseIdentOrStructLit resolves the struct-literal-vs-plain-identifier
// ambiguity with a single rule applied uniformly in every expression
// context, including statement start: an identifier
// immediately followed by '{' always begins a StructLit. Raven's grammar has
// no competing production for "Ident '{'" at statement start — a standalone
// block starts with its own '{', and an identifier expression statement must
// end in ';' before any block can follow — so this is unambiguous without
// any further lookahead past the '{'.
func (p *Parser) parseIdentOrStructLit() (Expression, *Error) {
	name, err := p.expect(IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if !p.at(LBRACE) {
		return &IdentExpr{Name: name.Lexeme, Span_: name.Span}, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var fields []StructFieldInit
	for !p.at(RBRACE) {
		fname, err := p.expect(IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "':'"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructFieldInit{Name: fname.Lexeme, Value: val})
		if p.at(COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}
	end, err := p.expect(RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	return &StructLitExpr{TypeName: name.Lexeme, Fields: fields, Span_: name.Span.Merge(end.Span)}, nil
}
