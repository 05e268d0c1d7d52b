// lower.go — syntax tree to evaluation form.
//
// Lowering is where literal token text becomes typed Atoms and where the
// constructs the evaluator does not implement (unary operators, bare
// assignment, indirect call targets, dynamic indexes, boolean connectives)
// are rejected with an error pointing at the offending token.
package mussel

import "strconv"

// Lower converts a parsed unit into evaluation-ready expressions. The source
// text is needed to resolve literal tokens, which only carry byte ranges.
func Lower(src string, unit []Expression) ([]Expr, error) {
	l := &lowerer{src: src}
	return l.unit(unit)
}

type lowerer struct {
	src string
}

func (l *lowerer) unit(nodes []Expression) ([]Expr, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]Expr, 0, len(nodes))
	for _, node := range nodes {
		e, err := l.lower(node)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (l *lowerer) lower(node Expression) (Expr, error) {
	switch n := node.(type) {
	case IntegerNode:
		text := n.Tok.Content(l.src)
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &LowerError{Kind: InvalidIntegerLiteral, Tok: n.Tok, Msg: "invalid integer literal " + strconv.Quote(text)}
		}
		return Constant{Atom: Number(v)}, nil

	case FloatNode:
		text := n.Tok.Content(l.src)
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &LowerError{Kind: InvalidFloatLiteral, Tok: n.Tok, Msg: "invalid float literal " + strconv.Quote(text)}
		}
		return Constant{Atom: Float(v)}, nil

	case BoolNode:
		switch n.Tok.Content(l.src) {
		case "true":
			return Constant{Atom: Boolean(true)}, nil
		case "false":
			return Constant{Atom: Boolean(false)}, nil
		}
		return nil, &LowerError{Kind: InvalidBooleanLiteral, Tok: n.Tok, Msg: "invalid boolean literal " + strconv.Quote(n.Tok.Content(l.src))}

	case StringNode:
		text := n.Tok.Content(l.src)
		if len(text) < 2 {
			return nil, &LowerError{Kind: InvalidStringLiteral, Tok: n.Tok, Msg: "string literal too short to carry its quotes"}
		}
		return Constant{Atom: Str(text[1 : len(text)-1])}, nil

	case IdentNode:
		return Constant{Atom: Name(n.Tok.Content(l.src))}, nil

	case ArrayNode:
		items, err := l.unit(n.Elements)
		if err != nil {
			return nil, err
		}
		return Array{Items: items}, nil

	case ClosureNode:
		body, err := l.unit(n.Body)
		if err != nil {
			return nil, err
		}
		return Closure{Params: l.names(n.Params), Body: body}, nil

	case FnNode:
		body, err := l.unit(n.Body)
		if err != nil {
			return nil, err
		}
		return Function{Name: n.Name.Content(l.src), Params: l.names(n.Params), Body: body}, nil

	case LetNode:
		value, err := l.lower(n.Value)
		if err != nil {
			return nil, err
		}
		return Let{Name: n.Name.Content(l.src), Value: value}, nil

	case IncludeNode:
		return Include{Name: n.Name.Content(l.src)}, nil

	case ReturnNode:
		value, err := l.lower(n.Value)
		if err != nil {
			return nil, err
		}
		return Return{Value: value}, nil

	case ForNode:
		iterable, err := l.lower(n.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := l.unit(n.Body)
		if err != nil {
			return nil, err
		}
		return For{Var: n.Var.Content(l.src), Iterable: iterable, Body: body}, nil

	case UntilNode:
		cond, err := l.lower(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := l.unit(n.Body)
		if err != nil {
			return nil, err
		}
		return Until{Cond: cond, Body: body}, nil

	case IfNode:
		cond, err := l.lower(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := l.unit(n.Then)
		if err != nil {
			return nil, err
		}
		var otherwise []Expr
		if n.Else != nil {
			otherwise, err = l.unit(n.Else)
			if err != nil {
				return nil, err
			}
		}
		return If{Cond: cond, Then: then, Else: otherwise}, nil

	case BinaryNode:
		left, err := l.lower(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.lower(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpAdd:
			return Binary{Left: left, Op: Add, Right: right}, nil
		case OpSubtract:
			return Binary{Left: left, Op: Sub, Right: right}, nil
		case OpMultiply:
			return Binary{Left: left, Op: Mul, Right: right}, nil
		case OpDivide:
			return Binary{Left: left, Op: Div, Right: right}, nil
		case OpEqual:
			return Compare{Left: left, Op: Equal, Right: right}, nil
		case OpNotEqual:
			return Compare{Left: left, Op: NotEqual, Right: right}, nil
		case OpLessThan:
			return Compare{Left: left, Op: LessThan, Right: right}, nil
		case OpLessThanOrEqual:
			return Compare{Left: left, Op: LessThanEqual, Right: right}, nil
		case OpGreaterThan:
			return Compare{Left: left, Op: GreaterThan, Right: right}, nil
		case OpGreaterThanOrEqual:
			return Compare{Left: left, Op: GreaterThanEqual, Right: right}, nil
		}
		return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.OpToken, Msg: "operator " + strconv.Quote(n.OpToken.Content(l.src)) + " is not supported"}

	case UnaryNode:
		return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.OpToken, Msg: "unary operators are not supported"}

	case AssignNode:
		return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.EqToken, Msg: "assignment is not supported; use let"}

	case CallNode:
		callee, err := l.lower(n.Callee)
		if err != nil {
			return nil, err
		}
		name, ok := asName(callee)
		if !ok {
			return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.ParenToken, Msg: "only named functions can be called"}
		}
		args, err := l.unit(n.Args)
		if err != nil {
			return nil, err
		}
		return Call{Name: name, Args: args}, nil

	case IndexNode:
		callee, err := l.lower(n.Callee)
		if err != nil {
			return nil, err
		}
		name, ok := asName(callee)
		if !ok {
			return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.BracketToken, Msg: "only named arrays can be indexed"}
		}
		index, err := l.lower(n.Index)
		if err != nil {
			return nil, err
		}
		c, ok := index.(Constant)
		if !ok || c.Atom.Kind != AtomNumber {
			return nil, &LowerError{Kind: UnsupportedOperation, Tok: n.BracketToken, Msg: "array indexes must be integer literals"}
		}
		return Get{Name: name, Index: int(c.Atom.Number())}, nil
	}

	// The Expression set is closed; reaching this is a parser bug.
	return nil, &LowerError{Kind: UnsupportedOperation, Msg: "unknown syntax node"}
}

func (l *lowerer) names(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Content(l.src)
	}
	return out
}

// asName unwraps an Expr that is a bare name reference.
func asName(e Expr) (string, bool) {
	c, ok := e.(Constant)
	if !ok || c.Atom.Kind != AtomName {
		return "", false
	}
	return c.Atom.Text(), true
}
