// Package compiler chains the translation phases: normalize the source
// text, parse it, translate the tree and print the output.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/GriffinCanCode/cobrascript/pkg/codegen/js"
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
	"github.com/GriffinCanCode/cobrascript/pkg/translator"
)

// Options controls one compilation.
type Options struct {
	// Bare leaves the module body unwrapped instead of enclosing it in a
	// closure invoked with the caller's context.
	Bare          bool
	AutoCamelcase bool
	Debug         bool
	// Indent is the output indent width; zero selects js.DefaultIndent.
	Indent int
}

// Translator returns the translator options implied by o.
func (o Options) Translator() translator.Options {
	return translator.Options{
		ModuleAsClosure: !o.Bare,
		AutoCamelcase:   o.AutoCamelcase,
		Debug:           o.Debug,
	}
}

// Source is one named input.
type Source struct {
	Name string
	Text string
}

// Result is the output of one compilation.
type Result struct {
	Name     string
	Output   string
	Warnings []*translator.UndefinedReference
}

// Normalize strips the common leading indentation of every line and the
// surrounding blank space, so indented snippets parse as a module.
func Normalize(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.TrimSpace(dedent.Dedent(source))
}

// Compile translates source and returns the output text.
func Compile(source string, opts Options) (string, error) {
	res, err := CompileSource(Source{Name: "<input>", Text: source}, opts)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// CompileSource runs every phase on src.
func CompileSource(src Source, opts Options) (*Result, error) {
	text := Normalize(src.Text)

	logger.LogPhase("parse")
	if opts.Debug {
		logger.LogLexing(src.Name, len(frontend.NewLexer(text).Tokenize()))
	}
	mod, err := frontend.Parse(text)
	if err != nil {
		return nil, fail("parse", src.Name, err)
	}
	logger.LogParsing(src.Name, frontend.Count(mod))
	logger.LogPhaseComplete("parse")

	logger.LogPhase("translate")
	tr := translator.New(opts.Translator())
	prog, err := tr.Translate(mod)
	if err != nil {
		return nil, fail("translate", src.Name, err)
	}
	warnings := tr.Warnings()
	for _, w := range warnings {
		logger.LogWarning("translate", src.Name, w.Line, w.Error())
	}
	logger.LogTranslation(src.Name, len(prog.Body), len(warnings))
	logger.LogPhaseComplete("translate")

	logger.LogPhase("generate")
	out, err := js.NewGenerator(nil, opts.Indent).GenerateWithValidation(prog)
	if err != nil {
		return nil, fail("generate", src.Name, err)
	}
	logger.LogCodeGen(src.Name, len(out))
	logger.LogPhaseComplete("generate")

	return &Result{Name: src.Name, Output: out, Warnings: warnings}, nil
}

// fail logs err against the phase that raised it and prefixes it with the
// source name.
func fail(phase, name string, err error) error {
	logger.LogError(phase, name, errorLine(err), err.Error())
	return fmt.Errorf("%s: %w", name, err)
}

// errorLine returns the source line carried by err, or 0.
func errorLine(err error) int {
	var (
		se *frontend.SyntaxError
		uc *translator.UnsupportedConstruct
		mc *translator.MalformedCall
	)
	switch {
	case errors.As(err, &se):
		return se.Line
	case errors.As(err, &uc):
		return uc.Line
	case errors.As(err, &mc):
		return mc.Line
	}
	return 0
}

// CompileAll compiles every source. With join set the sources are
// concatenated and compiled as one module, producing a single result named
// after the first source.
func CompileAll(sources []Source, join bool, opts Options) ([]*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input")
	}

	if join {
		texts := make([]string, len(sources))
		for i, src := range sources {
			texts[i] = Normalize(src.Text)
		}
		joined := Source{Name: sources[0].Name, Text: strings.Join(texts, "\n\n")}
		res, err := CompileSource(joined, opts)
		if err != nil {
			return nil, err
		}
		return []*Result{res}, nil
	}

	results := make([]*Result, 0, len(sources))
	for _, src := range sources {
		logger.LogFileProcessing(src.Name)
		res, err := CompileSource(src, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
