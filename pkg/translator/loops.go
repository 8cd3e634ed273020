package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

func (t *Translator) ifStmt(n *frontend.If) (jsast.Node, error) {
	cond, err := t.expr(n.Test)
	if err != nil {
		return nil, err
	}
	then, err := t.block(n.Body)
	if err != nil {
		return nil, err
	}
	out := &jsast.If{Cond: cond, Then: &jsast.Block{Body: then}}

	if len(n.Orelse) == 0 {
		return out, nil
	}
	// elif chains print as else if
	if elif, ok := n.Orelse[0].(*frontend.If); ok && len(n.Orelse) == 1 {
		next, err := t.ifStmt(elif)
		if err != nil {
			return nil, err
		}
		out.Else = next
		return out, nil
	}
	orelse, err := t.block(n.Orelse)
	if err != nil {
		return nil, err
	}
	out.Else = &jsast.Block{Body: orelse}
	return out, nil
}

// forStmt walks a sequence by index:
//
//	for (_i_1 = 0, _iter_1 = seq; _i_1 < _iter_1.length; _i_1++) {
//	    x = _iter_1[_i_1];
//	    ...
//	}
func (t *Translator) forStmt(n *frontend.For) (jsast.Node, error) {
	index := t.unique("_i")
	iter := t.unique("_iter")

	target, err := t.pattern(n.Target)
	if err != nil {
		return nil, err
	}
	seq, err := t.expr(n.Iter)
	if err != nil {
		return nil, err
	}
	body, err := t.block(n.Body)
	if err != nil {
		return nil, err
	}

	item := &jsast.BracketAccessor{Node: iter, Expr: index}
	loop := &jsast.For{
		Init: &jsast.Comma{Exprs: []jsast.Expr{
			&jsast.Assign{Op: "=", Left: index, Right: &jsast.Number{Value: "0"}},
			&jsast.Assign{Op: "=", Left: iter, Right: seq},
		}},
		Cond: &jsast.BinOp{Op: "<", Left: index, Right: dot(iter, "length")},
		Step: &jsast.UnaryOp{Op: "++", Value: index, Postfix: true},
		Body: &jsast.Block{Body: append(t.bind(target, item), body...)},
	}
	return t.loopElse(loop, loop.Body, n.Orelse)
}

func (t *Translator) whileStmt(n *frontend.While) (jsast.Node, error) {
	cond, err := t.expr(n.Test)
	if err != nil {
		return nil, err
	}
	body, err := t.block(n.Body)
	if err != nil {
		return nil, err
	}
	loop := &jsast.While{Cond: cond, Body: &jsast.Block{Body: body}}
	return t.loopElse(loop, loop.Body, n.Orelse)
}

// loopElse attaches an else block to loop through a sentinel that starts
// true and is cleared on entering the body, so the else block runs only
// when the body never ran.
func (t *Translator) loopElse(loop jsast.Node, body *jsast.Block, orelse []frontend.Stmt) (jsast.Node, error) {
	if len(orelse) == 0 {
		return loop, nil
	}
	sentinel := t.unique("_else")
	nodes, err := t.block(orelse)
	if err != nil {
		return nil, err
	}
	clear := assignment("=", sentinel, &jsast.Boolean{Value: false})
	body.Body = append([]jsast.Node{clear}, body.Body...)

	return &jsast.SetOfNodes{Nodes: []jsast.Node{
		assignment("=", sentinel, &jsast.Boolean{Value: true}),
		loop,
		&jsast.If{Cond: sentinel, Then: &jsast.Block{Body: nodes}},
	}}, nil
}
