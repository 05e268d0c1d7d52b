// parser.go — recursive-descent parser for mussel.
//
// Grammar (descending precedence; every binary level is right-associative):
//
//	unit       = expr*
//	expr       = include | return | function | for | until | if | let
//	           | conditionalOr
//
//	include    = 'include' identifier
//	return     = 'return' expr
//	function   = 'fn' identifier '(' (identifier (',' identifier)*)? ')' block
//	for        = 'for' identifier 'in' expr block
//	until      = 'until' expr block
//	if         = 'if' expr block ('else' (block | if))?
//	let        = 'let' identifier '=' expr
//
//	conditionalOr  = conditionalAnd ('or' conditionalOr)?
//	conditionalAnd = equality ('and' conditionalAnd)?
//	equality       = relational (('==' | '!=') equality)?
//	relational     = additive (('<' | '>' | '<=' | '>=') relational)?
//	additive       = multiplicative (('+' | '-') additive)?
//	multiplicative = unary (('*' | '/') multiplicative)?
//	unary          = ('-' | 'not')? factor
//
//	factor     = object postfix* ('=' expr)?
//	postfix    = '(' (expr (',' expr)*)? ')' | '[' expr ']'
//	object     = array | closure | string | integer | float | bool
//	           | identifier | '(' expr ')'
//	array      = '[' (expr (',' expr)*)? ']'
//	closure    = '|' (identifier (',' identifier)*)? '|' block
//	block      = '{' expr* '}'
//
// Statement forms commit on their leading keyword: once 'let' (or 'fn', 'for',
// ...) has matched, a failure in the remainder is reported directly instead of
// falling through to the expression alternative and producing a worse
// diagnostic. The only true alternation left is in object, whose failure is a
// CompoundError listing every candidate.
package mussel

// Parse consumes the whole token stream and returns the top-level syntax
// trees. Tokens left over after a successful parse are a TrailingInputError.
func Parse(tokens []Token) ([]Expression, error) {
	p := &parser{toks: tokens}
	var unit []Expression
	for p.peek().Kind != EOF {
		start := p.i
		e, err := p.expr()
		if err != nil {
			if p.i == start {
				// The failure consumed nothing: whatever sits here cannot
				// start an expression, so report it as trailing input.
				return nil, &TrailingInputError{Found: p.peek()}
			}
			return nil, err
		}
		unit = append(unit, e)
	}
	return unit, nil
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF marker
	}
	return p.toks[p.i]
}

func (p *parser) advance() Token {
	t := p.peek()
	if t.Kind != EOF {
		p.i++
	}
	return t
}

// expect consumes one token of the given kind or fails.
func (p *parser) expect(kind TokenKind) (Token, error) {
	t := p.peek()
	if t.Kind == EOF {
		return Token{}, &EofError{Offset: t.Offset}
	}
	if t.Kind != kind {
		return Token{}, &UnexpectedTokenError{Found: t, Expected: kind}
	}
	return p.advance(), nil
}

// ─────────────────────────── statements ───────────────────────────

func (p *parser) expr() (Expression, error) {
	switch p.peek().Kind {
	case INCLUDE:
		return p.include()
	case RETURN:
		return p.returnStmt()
	case FN:
		return p.function()
	case FOR:
		return p.forLoop()
	case UNTIL:
		return p.untilLoop()
	case IF:
		return p.ifStmt()
	case LET:
		return p.letStmt()
	default:
		return p.conditionalOr()
	}
}

func (p *parser) include() (Expression, error) {
	p.advance()
	name, err := p.expect(ID)
	if err != nil {
		return nil, err
	}
	return IncludeNode{Name: name}, nil
}

func (p *parser) returnStmt() (Expression, error) {
	p.advance()
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ReturnNode{Value: value}, nil
}

func (p *parser) function() (Expression, error) {
	p.advance()
	name, err := p.expect(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LROUND); err != nil {
		return nil, err
	}
	params, err := p.paramList(RROUND)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RROUND); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return FnNode{Name: name, Params: params, Body: body}, nil
}

func (p *parser) forLoop() (Expression, error) {
	p.advance()
	v, err := p.expect(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	iterable, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ForNode{Var: v, Iterable: iterable, Body: body}, nil
}

func (p *parser) untilLoop() (Expression, error) {
	p.advance()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return UntilNode{Cond: cond, Body: body}, nil
}

func (p *parser) ifStmt() (Expression, error) {
	p.advance()
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	node := IfNode{Cond: cond, Then: then}
	if p.peek().Kind == ELSE {
		p.advance()
		switch p.peek().Kind {
		case LCURLY:
			node.Else, err = p.block()
			if err != nil {
				return nil, err
			}
		case IF:
			nested, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			node.Else = []Expression{nested}
		default:
			return nil, &UnexpectedTokenError{Found: p.peek(), Expected: LCURLY}
		}
	}
	return node, nil
}

func (p *parser) letStmt() (Expression, error) {
	p.advance()
	name, err := p.expect(ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return LetNode{Name: name, Value: value}, nil
}

func (p *parser) block() ([]Expression, error) {
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	// An empty block is a present-but-empty body, never nil; IfNode uses nil
	// to mean the else branch is absent.
	stmts := []Expression{}
	for p.peek().Kind != RCURLY {
		if p.peek().Kind == EOF {
			return nil, &EofError{Offset: p.peek().Offset}
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, e)
	}
	p.advance()
	return stmts, nil
}

// ─────────────────────────── expressions ───────────────────────────

// binaryLevel parses one precedence level: next, optionally followed by one
// of ops and a right-recursive tail at the same level.
func (p *parser) binaryLevel(next func() (Expression, error), self func() (Expression, error), ops map[TokenKind]BinaryOperator) (Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	op, ok := ops[p.peek().Kind]
	if !ok {
		return left, nil
	}
	opTok := p.advance()
	right, err := self()
	if err != nil {
		return nil, err
	}
	return BinaryNode{Left: left, Op: op, OpToken: opTok, Right: right}, nil
}

var (
	orOps         = map[TokenKind]BinaryOperator{OR: OpOr}
	andOps        = map[TokenKind]BinaryOperator{AND: OpAnd}
	equalityOps   = map[TokenKind]BinaryOperator{EQ: OpEqual, NEQ: OpNotEqual}
	relationalOps = map[TokenKind]BinaryOperator{
		LESS:       OpLessThan,
		GREATER:    OpGreaterThan,
		LESS_EQ:    OpLessThanOrEqual,
		GREATER_EQ: OpGreaterThanOrEqual,
	}
	additiveOps       = map[TokenKind]BinaryOperator{PLUS: OpAdd, MINUS: OpSubtract}
	multiplicativeOps = map[TokenKind]BinaryOperator{STAR: OpMultiply, RSLASH: OpDivide}
)

func (p *parser) conditionalOr() (Expression, error) {
	return p.binaryLevel(p.conditionalAnd, p.conditionalOr, orOps)
}

func (p *parser) conditionalAnd() (Expression, error) {
	return p.binaryLevel(p.equality, p.conditionalAnd, andOps)
}

func (p *parser) equality() (Expression, error) {
	return p.binaryLevel(p.relational, p.equality, equalityOps)
}

func (p *parser) relational() (Expression, error) {
	return p.binaryLevel(p.additive, p.relational, relationalOps)
}

func (p *parser) additive() (Expression, error) {
	return p.binaryLevel(p.multiplicative, p.additive, additiveOps)
}

func (p *parser) multiplicative() (Expression, error) {
	return p.binaryLevel(p.unary, p.multiplicative, multiplicativeOps)
}

func (p *parser) unary() (Expression, error) {
	switch p.peek().Kind {
	case MINUS:
		opTok := p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return UnaryNode{Op: OpNegate, OpToken: opTok, Operand: operand}, nil
	case NOT:
		opTok := p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return UnaryNode{Op: OpNot, OpToken: opTok, Operand: operand}, nil
	default:
		return p.factor()
	}
}

// factor parses an object, applies postfix call/index chains left-to-right,
// and finally wraps the whole chain in an assignment if an '=' follows.
func (p *parser) factor() (Expression, error) {
	left, err := p.object()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case LROUND:
			paren := p.advance()
			args, err := p.exprList(RROUND)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RROUND); err != nil {
				return nil, err
			}
			left = CallNode{ParenToken: paren, Callee: left, Args: args}
			continue
		case LSQUARE:
			bracket := p.advance()
			index, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RSQUARE); err != nil {
				return nil, err
			}
			left = IndexNode{BracketToken: bracket, Callee: left, Index: index}
			continue
		}
		break
	}
	if p.peek().Kind == ASSIGN {
		eq := p.advance()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return AssignNode{EqToken: eq, Target: left, Value: value}, nil
	}
	return left, nil
}

// objectAlternatives names, in order, what object can start with. Used to
// build the CompoundError when none of them match.
var objectAlternatives = []TokenKind{LSQUARE, BAR, STRING, INTEGER, FLOAT, BOOLEAN, ID, LROUND}

func (p *parser) object() (Expression, error) {
	switch t := p.peek(); t.Kind {
	case LSQUARE:
		p.advance()
		elems, err := p.exprList(RSQUARE)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RSQUARE); err != nil {
			return nil, err
		}
		return ArrayNode{Elements: elems}, nil
	case BAR:
		return p.closure()
	case STRING:
		return StringNode{Tok: p.advance()}, nil
	case INTEGER:
		return IntegerNode{Tok: p.advance()}, nil
	case FLOAT:
		return FloatNode{Tok: p.advance()}, nil
	case BOOLEAN:
		return BoolNode{Tok: p.advance()}, nil
	case ID:
		return IdentNode{Tok: p.advance()}, nil
	case LROUND:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RROUND); err != nil {
			return nil, err
		}
		return inner, nil
	case EOF:
		return nil, &EofError{Offset: t.Offset}
	default:
		errs := make([]Diagnostic, len(objectAlternatives))
		for i, k := range objectAlternatives {
			errs[i] = &UnexpectedTokenError{Found: t, Expected: k}
		}
		return nil, &CompoundError{Errors: errs}
	}
}

func (p *parser) closure() (Expression, error) {
	p.advance() // opening '|'
	params, err := p.paramList(BAR)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(BAR); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ClosureNode{Params: params, Body: body}, nil
}

// paramList parses a possibly empty comma-separated identifier list, stopping
// before the given terminator.
func (p *parser) paramList(terminator TokenKind) ([]Token, error) {
	var params []Token
	if p.peek().Kind == terminator {
		return params, nil
	}
	t, err := p.expect(ID)
	if err != nil {
		return nil, err
	}
	params = append(params, t)
	for p.peek().Kind == COMMA {
		p.advance()
		t, err := p.expect(ID)
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}
	return params, nil
}

// exprList parses a possibly empty comma-separated expression list, stopping
// before the given terminator.
func (p *parser) exprList(terminator TokenKind) ([]Expression, error) {
	var exprs []Expression
	if p.peek().Kind == terminator {
		return exprs, nil
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, e)
	for p.peek().Kind == COMMA {
		p.advance()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}
