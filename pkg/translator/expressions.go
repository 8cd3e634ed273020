package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/runtime"
)

var unaryOps = map[frontend.UnaryOperator]string{
	frontend.Not:    "!",
	frontend.USub:   "-",
	frontend.UAdd:   "+",
	frontend.Invert: "~",
}

var cmpOps = map[frontend.CmpOperator]string{
	frontend.Eq:    "===",
	frontend.NotEq: "!==",
	frontend.Lt:    "<",
	frontend.LtE:   "<=",
	frontend.Gt:    ">",
	frontend.GtE:   ">=",
	frontend.Is:    "===",
	frontend.IsNot: "!==",
}

// operands translates the children of an operator node with the node's
// kind on the nesting stack. It reports whether the operator itself sits
// inside another operator once its children are done.
func (t *Translator) operands(n frontend.Node, children ...frontend.Expr) ([]jsast.Expr, bool, error) {
	t.ops.Push(n.Kind())
	out, err := t.exprs(children)
	t.ops.Pop()
	if err != nil {
		return nil, false, err
	}
	return out, !t.ops.Empty(), nil
}

func (t *Translator) binOp(n *frontend.BinOp) (jsast.Expr, error) {
	if n.Op == frontend.MatMult {
		return nil, unsupported(n, "matrix multiplication")
	}
	xs, nested, err := t.operands(n, n.Left, n.Right)
	if err != nil {
		return nil, err
	}
	left, right := xs[0], xs[1]

	switch n.Op {
	case frontend.Pow:
		return runtime.Pow(left, right), nil
	case frontend.FloorDiv:
		return runtime.FloorDiv(left, right), nil
	}
	return &jsast.BinOp{Op: n.Op.String(), Left: left, Right: right, Parens: nested}, nil
}

// boolOp folds a chain of and/or operands to the left. Only the outermost
// node takes the nesting parenthesization.
func (t *Translator) boolOp(n *frontend.BoolOp) (jsast.Expr, error) {
	xs, nested, err := t.operands(n, n.Values...)
	if err != nil {
		return nil, err
	}
	op := "&&"
	if n.Op == frontend.Or {
		op = "||"
	}

	acc := xs[0]
	for _, x := range xs[1:] {
		acc = &jsast.BinOp{Op: op, Left: acc, Right: x}
	}
	if bin, ok := acc.(*jsast.BinOp); ok {
		bin.Parens = nested
	}
	return acc, nil
}

func (t *Translator) compare(n *frontend.Compare) (jsast.Expr, error) {
	if len(n.Ops) != 1 {
		return nil, unsupported(n, "chained comparison")
	}
	op, ok := cmpOps[n.Ops[0]]
	if !ok {
		return nil, unsupported(n, "operator "+n.Ops[0].String())
	}
	xs, nested, err := t.operands(n, n.Left, n.Comparators[0])
	if err != nil {
		return nil, err
	}
	return &jsast.BinOp{Op: op, Left: xs[0], Right: xs[1], Parens: nested}, nil
}

func (t *Translator) unaryOp(n *frontend.UnaryOp) (jsast.Expr, error) {
	value, err := t.expr(n.Operand)
	if err != nil {
		return nil, err
	}
	return &jsast.UnaryOp{Op: unaryOps[n.Op], Value: value}, nil
}

func (t *Translator) call(n *frontend.Call) (jsast.Expr, error) {
	switch n.Func.(type) {
	case *frontend.Name, *frontend.Attribute, *frontend.Call, *frontend.Subscript, *frontend.Lambda:
	default:
		return nil, &MalformedCall{Callee: n.Func.Kind(), Line: n.Line}
	}
	if len(n.Keywords) > 0 {
		return nil, unsupported(n.Keywords[0], "keyword arguments")
	}
	for _, a := range n.Args {
		if s, ok := a.(*frontend.Starred); ok {
			return nil, unsupported(s, "argument unpacking")
		}
	}

	callee, err := t.expr(n.Func)
	if err != nil {
		return nil, err
	}
	args, err := t.exprs(n.Args)
	if err != nil {
		return nil, err
	}
	return &jsast.FunctionCall{Callee: callee, Args: args}, nil
}

// checkBase records a warning when an attribute or subscript base is a bare
// name bound nowhere in scope.
func (t *Translator) checkBase(base frontend.Expr) {
	name, ok := base.(*frontend.Name)
	if !ok {
		return
	}
	if t.scope.Lookup(t.ident(name.Id).Value) || runtime.Globals[name.Id] {
		return
	}
	t.warn(name.Id, name.Line)
}

func (t *Translator) attribute(n *frontend.Attribute) (jsast.Expr, error) {
	t.checkBase(n.Value)
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}
	return &jsast.DotAccessor{Node: value, Property: t.ident(n.Attr)}, nil
}

func (t *Translator) subscript(n *frontend.Subscript) (jsast.Expr, error) {
	t.checkBase(n.Value)
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}

	switch s := n.Slice.(type) {
	case *frontend.Index:
		index, err := t.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return &jsast.BracketAccessor{Node: value, Expr: index}, nil
	case *frontend.Slice:
		return t.slice(value, s)
	}
	return nil, unsupported(n, "")
}

// slice maps a[lo:hi] onto a.slice(lo, hi). A missing lower bound becomes 0
// when an upper bound is present.
func (t *Translator) slice(value jsast.Expr, s *frontend.Slice) (jsast.Expr, error) {
	if s.Step != nil {
		return nil, unsupported(s, "slice step")
	}
	var args []jsast.Expr
	if s.Lower != nil {
		lower, err := t.expr(s.Lower)
		if err != nil {
			return nil, err
		}
		args = append(args, lower)
	} else if s.Upper != nil {
		args = append(args, &jsast.Number{Value: "0"})
	}
	if s.Upper != nil {
		upper, err := t.expr(s.Upper)
		if err != nil {
			return nil, err
		}
		args = append(args, upper)
	}
	return &jsast.FunctionCall{Callee: dot(value, "slice"), Args: args}, nil
}

func (t *Translator) array(n frontend.Node, elts []frontend.Expr) (jsast.Expr, error) {
	for _, e := range elts {
		if s, ok := e.(*frontend.Starred); ok {
			return nil, unsupported(s, "unpacking in "+n.Kind().String())
		}
	}
	items, err := t.exprs(elts)
	if err != nil {
		return nil, err
	}
	return &jsast.Array{Items: items}, nil
}

// dict builds an object literal. Keys must be string or number literals.
func (t *Translator) dict(n *frontend.Dict) (jsast.Expr, error) {
	obj := &jsast.Object{}
	for i, k := range n.Keys {
		var key jsast.Expr
		switch k := k.(type) {
		case *frontend.Str:
			key = &jsast.String{Value: k.Value}
		case *frontend.Num:
			num, err := number(k)
			if err != nil {
				return nil, err
			}
			key = num
		default:
			return nil, unsupported(n, "non-literal key")
		}
		value, err := t.expr(n.Values[i])
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, &jsast.Assign{Op: ":", Left: key, Right: value})
	}
	return obj, nil
}
