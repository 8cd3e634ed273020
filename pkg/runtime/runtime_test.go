package runtime

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/cobrascript/pkg/codegen/js"
	"github.com/GriffinCanCode/cobrascript/pkg/jsast"
)

func TestHelpers(t *testing.T) {
	x, y := ident("x"), ident("y")
	tests := []struct {
		name string
		node jsast.Expr
		want string
	}{
		{"pow", Pow(x, y), "Math.pow(x, y)"},
		{"floor div", FloorDiv(x, y), "Math.floor(x / y)"},
		{"rest args", RestArgs(2), "Array.prototype.slice.call(arguments, 2)"},
		{"context", Context(), "this"},
		{"undefined", Undefined(), "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := js.String(tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInherit(t *testing.T) {
	nodes := Inherit(ident("B"), ident("A"))
	got := js.NewGenerator(nil, 4).Program(&jsast.Program{Body: nodes})
	want := "B.prototype = Object.create(A.prototype);\nB.prototype.constructor = B;"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSpecialForm(t *testing.T) {
	if v, ok := SpecialForm(ContextAlias); !ok || js.String(v) != "this" {
		t.Errorf("SpecialForm(%s) = %v, %v", ContextAlias, v, ok)
	}

	v, ok := SpecialForm(ConstructHelper)
	if !ok {
		t.Fatalf("SpecialForm(%s) not found", ConstructHelper)
	}
	src := js.String(v)
	for _, part := range []string{"args.shift()", "ctor.apply(instance, args)", "return instance;"} {
		if !strings.Contains(src, part) {
			t.Errorf("construct helper missing %q:\n%s", part, src)
		}
	}

	if _, ok := SpecialForm("os"); ok {
		t.Error("os should not be a special form")
	}
	if !IsReserved(ConstructHelper) || IsReserved("os") {
		t.Error("IsReserved mismatch")
	}
}
