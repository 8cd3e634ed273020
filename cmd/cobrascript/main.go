// Package main implements the cobrascript command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/GriffinCanCode/cobrascript/pkg/compiler"
	"github.com/GriffinCanCode/cobrascript/pkg/config"
	"github.com/GriffinCanCode/cobrascript/pkg/frontend"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
)

const version = "0.1.0"

const (
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".cobrascript_history"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "compile":
		os.Exit(compile(os.Args[2:]))
	case "repl":
		os.Exit(repl(os.Args[2:]))
	case "version":
		fmt.Printf("cobrascript version %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println(`cobrascript - Translate Python source to JavaScript

Usage:
    cobrascript compile [options] <source.py>...  Translate files (stdin when none)
    cobrascript repl [options]                    Translate interactively
    cobrascript version                           Show version
    cobrascript help                              Show this help message

Options:
    -o <file>       Write output to file (default: stdout)
    -b              Bare output, no module closure
    -j              Join all inputs into one module
    -indent <n>     Output indent width (default: 4)
    -camelcase      Convert identifiers to camel case
    -w              Report undefined references
    -g              Trace translation (debug logging)
    -config <file>  Settings file (default: ./.cobrascript.yaml)`)
}

type flags struct {
	fs     *flag.FlagSet
	cfg    config.Config
	path   string
	output string
}

// parseFlags loads the settings file, then applies every flag given on the
// command line on top of it.
func parseFlags(name string, args []string) (*flags, error) {
	f := &flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	var (
		bare      = f.fs.Bool("b", false, "bare output, no module closure")
		join      = f.fs.Bool("j", false, "join all inputs into one module")
		indent    = f.fs.Int("indent", 4, "output indent width")
		camelcase = f.fs.Bool("camelcase", false, "convert identifiers to camel case")
		warnings  = f.fs.Bool("w", false, "report undefined references")
		debug     = f.fs.Bool("g", false, "trace translation")
	)
	f.fs.StringVar(&f.output, "o", "", "output file")
	f.fs.StringVar(&f.path, "config", "", "settings file")
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	settings := f.path != ""
	if settings {
		f.cfg, err = config.Load(f.path)
	} else {
		f.cfg, err = config.Discover(".")
		_, statErr := os.Stat(config.FileName)
		settings = statErr == nil
	}
	if err != nil {
		return nil, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "b":
			f.cfg.Bare = *bare
		case "j":
			f.cfg.Join = *join
		case "indent":
			f.cfg.Indent = *indent
		case "camelcase":
			f.cfg.AutoCamelcase = *camelcase
		case "w":
			f.cfg.Warnings = *warnings
		case "g":
			f.cfg.Debug = *debug
		case "o":
			f.cfg.Output = f.output
		}
	})
	if err := f.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := initLogging(f.cfg, settings); err != nil {
		return nil, err
	}
	return f, nil
}

// initLogging uses the development logger when -g is given without a
// settings file, so the trace carries source locations.
func initLogging(cfg config.Config, settings bool) error {
	if cfg.Debug && !settings {
		logger.InitDev()
		return nil
	}
	return logger.Init(cfg.LoggerConfig())
}

func compile(args []string) int {
	start := time.Now()
	f, err := parseFlags("compile", args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	logger.LogCompilerStart(args)

	sources, err := readSources(f.fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	results, err := compiler.CompileAll(sources, f.cfg.Join, f.cfg.CompilerOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.LogCompilerComplete(false, time.Since(start).String())
		return 1
	}

	if f.cfg.Warnings {
		for _, res := range results {
			for _, w := range res.Warnings {
				fmt.Fprintf(os.Stderr, "%s:%d: warning: undefined variable %s\n", res.Name, w.Line, w.Name)
			}
		}
	}
	text := render(results)

	if f.cfg.Output == "" {
		fmt.Print(text)
	} else {
		if err := os.WriteFile(f.cfg.Output, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		logger.LogOutputWritten(f.cfg.Output, len(text))
	}

	logger.LogCompilerComplete(true, time.Since(start).String())
	return 0
}

// render joins the per-file outputs with a blank line between modules.
func render(results []*compiler.Result) string {
	outputs := make([]string, 0, len(results))
	for _, res := range results {
		outputs = append(outputs, res.Output)
	}
	return strings.Join(outputs, "\n\n") + "\n"
}

func readSources(paths []string) ([]compiler.Source, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []compiler.Source{{Name: "<stdin>", Text: string(data)}}, nil
	}

	sources := make([]compiler.Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, compiler.Source{Name: p, Text: string(data)})
	}
	return sources, nil
}

func repl(args []string) int {
	f, err := parseFlags("repl", args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	opts := f.cfg.CompilerOptions()
	opts.Bare = true

	fmt.Printf("cobrascript %s. Type :quit to exit.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hf, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(hf)
		_ = hf.Close()
	}
	defer func() {
		if hf, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(hf)
			_ = hf.Close()
		}
	}()

	for {
		code, ok := readStatement(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == ":q" {
			return 0
		}

		res, err := compiler.CompileSource(compiler.Source{Name: "<repl>", Text: code}, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: line %d: undefined variable %s\n", w.Line, w.Name)
		}
		fmt.Println(res.Output)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// prompter reads one line of input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readStatement reads lines until the accumulated input parses. A block
// opened on the first line stays open until an empty line is entered.
// It reports false when input ends or the terminal fails.
func readStatement(ln prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	lines := 0

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return "", false
		}

		if lines > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		lines++

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !complete(src, lines, line) {
			continue
		}
		return src, true
	}
}

// complete reports whether src can be translated as entered.
func complete(src string, lines int, last string) bool {
	_, err := frontend.Parse(compiler.Normalize(src))
	if frontend.IsIncomplete(err) {
		return false
	}
	return lines == 1 || strings.TrimSpace(last) == ""
}
