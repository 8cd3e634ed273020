package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

// tryStmt supports a body with at most one handler and an optional finally
// block. The handler type is not checked at run time.
func (t *Translator) tryStmt(n *frontend.Try) (jsast.Node, error) {
	if len(n.Handlers) > 1 {
		return nil, unsupported(n, "more than one except clause")
	}
	if len(n.Orelse) > 0 {
		return nil, unsupported(n, "else clause")
	}

	body, err := t.block(n.Body)
	if err != nil {
		return nil, err
	}
	out := &jsast.Try{Block: &jsast.Block{Body: body}}

	if len(n.Handlers) == 1 {
		catch, err := t.handler(n.Handlers[0])
		if err != nil {
			return nil, err
		}
		out.Catch = catch
	}
	if len(n.Finalbody) > 0 {
		final, err := t.block(n.Finalbody)
		if err != nil {
			return nil, err
		}
		out.Finally = &jsast.Finally{Body: &jsast.Block{Body: final}}
	}
	if out.Catch == nil && out.Finally == nil {
		return nil, unsupported(n, "try without except or finally")
	}
	return out, nil
}

func (t *Translator) handler(h *frontend.ExceptHandler) (*jsast.Catch, error) {
	var id *jsast.Identifier
	if h.Name == "" {
		id = &jsast.Identifier{Value: t.syntheticName("_err")}
	} else {
		id = t.ident(h.Name)
	}
	t.scope.Local(id.Value)

	t.handlers.Push(id)
	body, err := t.block(h.Body)
	t.handlers.Pop()
	if err != nil {
		return nil, err
	}
	return &jsast.Catch{Ident: id, Body: &jsast.Block{Body: body}}, nil
}

// raise throws its operand. A bare raise rethrows the exception bound by
// the nearest enclosing handler.
func (t *Translator) raise(n *frontend.Raise) (jsast.Node, error) {
	if n.Cause != nil {
		return nil, unsupported(n, "exception chaining")
	}
	if n.Exc == nil {
		current, ok := t.handlers.Peek()
		if !ok {
			return nil, unsupported(n, "bare raise outside an except clause")
		}
		return &jsast.Throw{Value: current}, nil
	}
	value, err := t.expr(n.Exc)
	if err != nil {
		return nil, err
	}
	return &jsast.Throw{Value: value}, nil
}
