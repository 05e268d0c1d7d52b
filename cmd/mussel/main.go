package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/gianndev/mussel"
)

const (
	appName     = "mussel"
	historyFile = ".mussel_history"
	prompt      = ">>> "
)

var banner = fmt.Sprintf("mussel %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mussel.Version)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(mussel.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		// Compatibility with the original single-argument form:
		// `mussel program.mus` behaves like `mussel run program.mus`.
		if _, err := os.Stat(cmd); err == nil {
			os.Exit(cmdRun(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`mussel %s (built %s)

Usage:
  %s run <file.mus>    Run a script.
  %s repl              Start the REPL.
  %s version           Print the compiled version

`, mussel.Version, mussel.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.mus>\n", appName)
		return 2
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	files := mussel.NewFileSet()
	id := files.AddFile(fileAbsOrOrig(file), string(src))

	exprs, derr := frontend(string(src))
	if derr != nil {
		path, _ := files.Path(id)
		content, _ := files.Content(id)
		fmt.Fprintln(os.Stderr, mussel.RenderDiagnostic(derr, path, content))
		return 1
	}

	ip := mussel.NewInterpreter()
	if err := ip.Run(exprs); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

// frontend runs the lex, parse and lower stages.
func frontend(src string) ([]mussel.Expr, error) {
	tokens, err := mussel.Lex(src)
	if err != nil {
		return nil, err
	}
	unit, err := mussel.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return mussel.Lower(src, unit)
}

func fileAbsOrOrig(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := mussel.NewInterpreter()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		ln.AppendHistory(line)

		exprs, derr := frontend(code)
		if derr != nil {
			fmt.Fprintln(os.Stderr, red(mussel.RenderDiagnostic(derr, "repl", code)))
			continue
		}
		for _, e := range exprs {
			v, err := ip.Eval(e)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				break
			}
			if _, isVoid := v.(mussel.Void); !isVoid {
				fmt.Println(green(v.String()))
			}
		}
	}
}
