package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

// listComp turns a single-clause list comprehension into an immediately
// invoked function with its own frame. The source sequence is evaluated
// once and every filter must hold for an element to be kept:
//
//	(function() {
//	    var _i_1, _len_1, _result_1, _values_1, x;
//	    _values_1 = seq;
//	    _result_1 = [];
//	    for (_i_1 = 0, _len_1 = _values_1.length; _i_1 < _len_1; _i_1++) {
//	        x = _values_1[_i_1];
//	        if (cond) {
//	            _result_1.push(elt);
//	        }
//	    }
//	    return _result_1;
//	})()
func (t *Translator) listComp(n *frontend.ListComp) (jsast.Expr, error) {
	if len(n.Generators) != 1 {
		return nil, unsupported(n, "more than one for clause")
	}
	gen := n.Generators[0]

	defer t.freshOperands()()

	t.scope.Push(FunctionFrame)

	index := t.unique("_i")
	length := t.unique("_len")
	values := t.unique("_values")
	result := t.unique("_result")

	target, err := t.pattern(gen.Target)
	if err != nil {
		return nil, err
	}
	seq, err := t.expr(gen.Iter)
	if err != nil {
		return nil, err
	}
	conds, err := t.filters(gen.Ifs)
	if err != nil {
		return nil, err
	}
	elt, err := t.expr(n.Elt)
	if err != nil {
		return nil, err
	}

	var keep jsast.Node = &jsast.ExprStatement{Expr: &jsast.FunctionCall{
		Callee: dot(result, "push"),
		Args:   []jsast.Expr{elt},
	}}
	if conds != nil {
		keep = &jsast.If{Cond: conds, Then: &jsast.Block{Body: []jsast.Node{keep}}}
	}

	item := &jsast.BracketAccessor{Node: values, Expr: index}
	loop := &jsast.For{
		Init: &jsast.Comma{Exprs: []jsast.Expr{
			&jsast.Assign{Op: "=", Left: index, Right: &jsast.Number{Value: "0"}},
			&jsast.Assign{Op: "=", Left: length, Right: dot(values, "length")},
		}},
		Cond: &jsast.BinOp{Op: "<", Left: index, Right: length},
		Step: &jsast.UnaryOp{Op: "++", Value: index, Postfix: true},
		Body: &jsast.Block{Body: append(t.bind(target, item), keep)},
	}

	body := t.hoist([]jsast.Node{
		assignment("=", values, seq),
		assignment("=", result, &jsast.Array{}),
		loop,
		&jsast.Return{Value: result},
	})
	return &jsast.FunctionCall{Callee: &jsast.FuncExpr{Body: body}}, nil
}

// filters joins the if clauses of a comprehension with &&. With more than
// one clause, operator clauses are parenthesized.
func (t *Translator) filters(ifs []frontend.Expr) (jsast.Expr, error) {
	conds, err := t.exprs(ifs)
	if err != nil {
		return nil, err
	}
	if len(conds) == 0 {
		return nil, nil
	}
	if len(conds) == 1 {
		return conds[0], nil
	}
	for _, c := range conds {
		if bin, ok := c.(*jsast.BinOp); ok {
			bin.Parens = true
		}
	}
	acc := conds[0]
	for _, c := range conds[1:] {
		acc = &jsast.BinOp{Op: "&&", Left: acc, Right: c}
	}
	return acc, nil
}
