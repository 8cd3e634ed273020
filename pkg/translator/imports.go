package translator

import (
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
	"github.com/GriffinCanCode/cobrascript/pkg/runtime"
)

// importStmt only accepts the reserved special-form names. Each alias is
// bound in the special-form registry and declared at the top of the module:
//
//	import _global as g  ->  var g = this;
func (t *Translator) importStmt(n *frontend.Import) (jsast.Node, error) {
	for _, alias := range n.Names {
		if !runtime.IsReserved(alias.Name) {
			return nil, unsupported(n, "import of "+alias.Name)
		}
		value, _ := runtime.SpecialForm(alias.Name)
		name := alias.AsName
		if name == "" {
			name = alias.Name
		}
		id := t.ident(name)
		if err := t.scope.DeclareSpecial(id.Value, id, value); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
