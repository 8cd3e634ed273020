package translator

import (
	"strconv"

	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/runtime"
)

// pattern is a translated assignment target. Tuple and list targets keep
// their shape in elts; every other target is a single output expression.
type pattern struct {
	target jsast.Expr
	elts   []*pattern
}

func (p *pattern) destructuring() bool {
	return p.elts != nil
}

// pattern translates an assignment target, binding every bare name it
// contains in the innermost frame.
func (t *Translator) pattern(e frontend.Expr) (*pattern, error) {
	switch e := e.(type) {
	case *frontend.Name:
		id := t.ident(e.Id)
		if _, err := t.scope.Declare(id.Value, id); err != nil {
			return nil, err
		}
		return &pattern{target: id}, nil
	case *frontend.Attribute, *frontend.Subscript:
		x, err := t.expr(e)
		if err != nil {
			return nil, err
		}
		return &pattern{target: x}, nil
	case *frontend.Tuple:
		return t.patterns(e.Elts)
	case *frontend.List:
		return t.patterns(e.Elts)
	case *frontend.Starred:
		return nil, unsupported(e, "starred assignment target")
	}
	return nil, unsupported(e, "assignment target")
}

func (t *Translator) patterns(elts []frontend.Expr) (*pattern, error) {
	p := &pattern{elts: make([]*pattern, 0, len(elts))}
	for _, e := range elts {
		el, err := t.pattern(e)
		if err != nil {
			return nil, err
		}
		p.elts = append(p.elts, el)
	}
	return p, nil
}

// bind assigns source to p, indexing into source for each element of a
// destructuring target.
func (t *Translator) bind(p *pattern, source jsast.Expr) []jsast.Node {
	if !p.destructuring() {
		return []jsast.Node{assignment("=", p.target, source)}
	}
	var out []jsast.Node
	for i, el := range p.elts {
		item := &jsast.BracketAccessor{Node: source, Expr: &jsast.Number{Value: strconv.Itoa(i)}}
		out = append(out, t.bind(el, item)...)
	}
	return out
}

// assign handles plain, chained and destructuring assignment. The value is
// translated before the targets bind their names.
//
//	a = b = v        ->  a = b = v;
//	a, b = v         ->  _ref_1 = v; a = _ref_1[0]; b = _ref_1[1];
func (t *Translator) assign(n *frontend.Assign) (jsast.Node, error) {
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}

	pats := make([]*pattern, 0, len(n.Targets))
	destructuring := false
	for _, target := range n.Targets {
		p, err := t.pattern(target)
		if err != nil {
			return nil, err
		}
		pats = append(pats, p)
		destructuring = destructuring || p.destructuring()
	}

	if !destructuring {
		expr := value
		for i := len(pats) - 1; i >= 0; i-- {
			expr = &jsast.Assign{Op: "=", Left: pats[i].target, Right: expr}
		}
		return &jsast.ExprStatement{Expr: expr}, nil
	}

	ref := t.unique("_ref")
	nodes := []jsast.Node{assignment("=", ref, value)}
	for _, p := range pats {
		nodes = append(nodes, t.bind(p, ref)...)
	}
	return &jsast.SetOfNodes{Nodes: nodes}, nil
}

// augAssign maps compound assignment onto the matching operator. Power and
// floor division have none and become a full reassignment; the parts of an
// accessor target that may have side effects are evaluated once first:
//
//	a[f()] **= 2  ->  _ref_1 = f(); a[_ref_1] = Math.pow(a[_ref_1], 2);
func (t *Translator) augAssign(n *frontend.AugAssign) (jsast.Node, error) {
	if n.Op == frontend.MatMult {
		return nil, unsupported(n, "matrix multiplication")
	}
	value, err := t.expr(n.Value)
	if err != nil {
		return nil, err
	}
	reassign := n.Op == frontend.Pow || n.Op == frontend.FloorDiv

	var target jsast.Expr
	var pre []jsast.Node
	switch tg := n.Target.(type) {
	case *frontend.Name:
		id := t.ident(tg.Id)
		if _, err := t.scope.Declare(id.Value, id); err != nil {
			return nil, err
		}
		target = id
	case *frontend.Attribute, *frontend.Subscript:
		x, err := t.expr(tg)
		if err != nil {
			return nil, err
		}
		if reassign {
			x, pre = t.evaluateOnce(x)
		}
		target = x
	default:
		return nil, unsupported(n, "augmented assignment to "+tg.Kind().String())
	}

	var stmt jsast.Node
	switch n.Op {
	case frontend.Pow:
		stmt = assignment("=", target, runtime.Pow(target, value))
	case frontend.FloorDiv:
		stmt = assignment("=", target, runtime.FloorDiv(target, value))
	default:
		return assignment(n.Op.String()+"=", target, value), nil
	}
	if len(pre) == 0 {
		return stmt, nil
	}
	return &jsast.SetOfNodes{Nodes: append(pre, stmt)}, nil
}

// evaluateOnce rebuilds an accessor so that reading it twice evaluates its
// object and key only once. Impure parts are bound to synthetic references
// by the returned statements.
func (t *Translator) evaluateOnce(x jsast.Expr) (jsast.Expr, []jsast.Node) {
	var pre []jsast.Node
	hold := func(e jsast.Expr) jsast.Expr {
		if pure(e) {
			return e
		}
		ref := t.unique("_ref")
		pre = append(pre, assignment("=", ref, e))
		return ref
	}
	switch x := x.(type) {
	case *jsast.DotAccessor:
		return &jsast.DotAccessor{Node: hold(x.Node), Property: x.Property}, pre
	case *jsast.BracketAccessor:
		node := hold(x.Node)
		return &jsast.BracketAccessor{Node: node, Expr: hold(x.Expr)}, pre
	}
	return x, pre
}

// pure reports expressions that can be evaluated twice with no effect.
func pure(e jsast.Expr) bool {
	switch e.(type) {
	case *jsast.Identifier, *jsast.This, *jsast.Number, *jsast.String, *jsast.Boolean, *jsast.Null:
		return true
	}
	return false
}

// delete maps `del a.b, c[0]` onto delete statements. Names cannot be
// deleted in the output language.
func (t *Translator) delete(n *frontend.Delete) (jsast.Node, error) {
	var nodes []jsast.Node
	for _, target := range n.Targets {
		switch tg := target.(type) {
		case *frontend.Attribute:
		case *frontend.Subscript:
			if _, ok := tg.Slice.(*frontend.Slice); ok {
				return nil, unsupported(n, "del of a slice")
			}
		default:
			return nil, unsupported(n, "del of "+target.Kind().String())
		}
		x, err := t.expr(target)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &jsast.ExprStatement{Expr: &jsast.UnaryOp{Op: "delete", Value: x}})
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &jsast.SetOfNodes{Nodes: nodes}, nil
}
