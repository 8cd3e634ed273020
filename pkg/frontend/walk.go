package frontend

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	stmts := func(list []Stmt) {
		for _, s := range list {
			add(s)
		}
	}
	exprs := func(list []Expr) {
		for _, e := range list {
			add(e)
		}
	}

	switch n := n.(type) {
	case *Module:
		stmts(n.Body)
	case *FunctionDef:
		exprs(n.Decorators)
		if n.Args != nil {
			add(n.Args)
		}
		stmts(n.Body)
	case *ClassDef:
		exprs(n.Decorators)
		exprs(n.Bases)
		for _, k := range n.Keywords {
			add(k)
		}
		stmts(n.Body)
	case *Return:
		add(n.Value)
	case *Assign:
		exprs(n.Targets)
		add(n.Value)
	case *AugAssign:
		add(n.Target, n.Value)
	case *Delete:
		exprs(n.Targets)
	case *If:
		add(n.Test)
		stmts(n.Body)
		stmts(n.Orelse)
	case *For:
		add(n.Target, n.Iter)
		stmts(n.Body)
		stmts(n.Orelse)
	case *While:
		add(n.Test)
		stmts(n.Body)
		stmts(n.Orelse)
	case *Try:
		stmts(n.Body)
		for _, h := range n.Handlers {
			add(h)
		}
		stmts(n.Orelse)
		stmts(n.Finalbody)
	case *ExceptHandler:
		add(n.Type)
		stmts(n.Body)
	case *Raise:
		add(n.Exc, n.Cause)
	case *Import:
		for _, a := range n.Names {
			add(a)
		}
	case *ImportFrom:
		for _, a := range n.Names {
			add(a)
		}
	case *ExprStmt:
		add(n.Value)
	case *BinOp:
		add(n.Left, n.Right)
	case *BoolOp:
		exprs(n.Values)
	case *UnaryOp:
		add(n.Operand)
	case *Compare:
		add(n.Left)
		exprs(n.Comparators)
	case *Call:
		add(n.Func)
		exprs(n.Args)
		for _, k := range n.Keywords {
			add(k)
		}
	case *Keyword:
		add(n.Value)
	case *Attribute:
		add(n.Value)
	case *Subscript:
		add(n.Value)
		if n.Slice != nil {
			add(n.Slice)
		}
	case *Index:
		add(n.Value)
	case *Slice:
		add(n.Lower, n.Upper, n.Step)
	case *List:
		exprs(n.Elts)
	case *Tuple:
		exprs(n.Elts)
	case *Dict:
		for i := range n.Keys {
			add(n.Keys[i], n.Values[i])
		}
	case *ListComp:
		add(n.Elt)
		for _, g := range n.Generators {
			add(g)
		}
	case *Comprehension:
		add(n.Target, n.Iter)
		exprs(n.Ifs)
	case *Lambda:
		if n.Args != nil {
			add(n.Args)
		}
		add(n.Body)
	case *IfExp:
		add(n.Test, n.Body, n.Orelse)
	case *Starred:
		add(n.Value)
	case *Arguments:
		for _, a := range n.Args {
			add(a)
		}
		exprs(n.Defaults)
		if n.Vararg != nil {
			add(n.Vararg)
		}
		for _, a := range n.KwOnly {
			add(a)
		}
		if n.Kwarg != nil {
			add(n.Kwarg)
		}
	}
	return out
}

// Walk traverses the tree depth-first in pre-order. If fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}
