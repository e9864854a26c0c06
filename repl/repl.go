// Package repl implements the interactive shell: each submitted
// template snippet is parsed and its AST printed in the selected
// format.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"blocml/logging"
	"blocml/pkg/parser"
	"blocml/shared"
)

// Version is the application version reported by :version.
const Version = "0.3.0"

// Config contains configuration for the REPL.
type Config struct {
	Prompt         string // main prompt (default: "bloc> ")
	ContinuePrompt string // continuation prompt (default: "... ")
	HistoryFile    string // history file path
	HistorySize    int    // maximum history size
	ShowWelcome    bool
	Format         shared.Format
	Verbose        bool
	Logger         logging.Logger
}

// REPL is the Read-Eval-Print loop over the template parser.
type REPL struct {
	prompt         string
	continuePrompt string
	historyFile    string
	historySize    int
	showWelcome    bool
	format         shared.Format
	verbose        bool
	running        bool
	history        []string
	log            logging.Logger
	out            io.Writer
}

// New creates a REPL from its configuration, filling defaults.
func New(config Config) *REPL {
	prompt := config.Prompt
	if prompt == "" {
		prompt = "bloc> "
	}
	continuePrompt := config.ContinuePrompt
	if continuePrompt == "" {
		continuePrompt = "... "
	}
	historyFile := config.HistoryFile
	if historyFile == "" {
		historyFile = "/tmp/blocml_history"
	}
	historySize := config.HistorySize
	if historySize <= 0 {
		historySize = 1000
	}
	format := config.Format
	if format == "" {
		format = shared.FormatTree
	}
	log := config.Logger
	if log == nil {
		log = logging.NewDefaultLogger()
	}
	return &REPL{
		prompt:         prompt,
		continuePrompt: continuePrompt,
		historyFile:    historyFile,
		historySize:    historySize,
		showWelcome:    config.ShowWelcome,
		format:         format,
		verbose:        config.Verbose,
		running:        true,
		log:            log.WithComponent("repl"),
		out:            os.Stdout,
	}
}

// Run starts the loop, choosing interactive or piped mode by whether
// stdin is a terminal.
func (r *REPL) Run() error {
	if r.isInteractive() {
		return r.runInteractive()
	}
	return r.runPiped()
}

func (r *REPL) isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *REPL) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt,
		HistoryFile:     r.historyFile,
		HistoryLimit:    r.historySize,
		InterruptPrompt: "^C",
		EOFPrompt:       ":exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %v", err)
	}
	defer func() {
		if err := rl.Close(); err != nil {
			fmt.Fprintf(r.out, "Warning: failed to close readline: %v\n", err)
		}
	}()

	if r.showWelcome {
		r.printWelcome()
	}

	buffer := NewMultiLineBuffer()
	for r.running {
		if buffer.IsActive() {
			rl.SetPrompt(r.continuePrompt)
		} else {
			rl.SetPrompt(r.prompt)
		}

		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if buffer.IsActive() {
					buffer.Clear()
					continue
				}
				fmt.Fprintln(r.out, "\nGoodbye!")
				break
			}
			if err == io.EOF {
				fmt.Fprintln(r.out, "\nGoodbye!")
				break
			}
			return fmt.Errorf("read error: %v", err)
		}

		line := strings.TrimRight(input, "\r\n")
		if !buffer.IsActive() && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if r.handleCommand(strings.TrimSpace(line)) {
				continue
			}
		}

		if strings.HasSuffix(line, "\\") {
			buffer.AddLine(strings.TrimSuffix(line, "\\"))
			continue
		}

		if buffer.IsActive() {
			buffer.AddLine(line)
			snippet := buffer.Content()
			buffer.Clear()
			r.processInput(snippet)
			continue
		}

		if strings.TrimSpace(line) != "" {
			r.processInput(line)
		}
	}
	return nil
}

// runPiped reads the whole of stdin and parses it as one template.
func (r *REPL) runPiped() error {
	reader := bufio.NewReader(os.Stdin)
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	r.processInput(string(data))
	return nil
}

// processInput parses one template snippet and prints the AST or the
// located error.
func (r *REPL) processInput(input string) {
	r.history = append(r.history, input)
	if r.verbose {
		r.log.Debug("parsing snippet", logging.Field("bytes", len(input)))
	}
	tpl, err := parser.ParseNamed(input, "repl")
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	rendered, err := shared.FormatNode(tpl, r.format)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, rendered)
}

// handleCommand executes a ":" command. It reports whether the input
// was consumed as a command.
func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case ":exit", ":quit", ":q":
		r.running = false
		fmt.Fprintln(r.out, "Goodbye!")
	case ":help", ":h":
		r.printHelp()
	case ":history":
		for i, entry := range r.history {
			fmt.Fprintf(r.out, "%3d  %s\n", i+1, entry)
		}
	case ":clear":
		fmt.Fprint(r.out, "\033[2J\033[H")
	case ":version":
		fmt.Fprintf(r.out, "blocml %s\n", Version)
	case ":format":
		if len(parts) < 2 {
			fmt.Fprintf(r.out, "current format: %s\n", r.format)
			return true
		}
		format, err := shared.ParseFormat(parts[1])
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return true
		}
		r.format = format
	default:
		fmt.Fprintf(r.out, "unknown command %s (try :help)\n", parts[0])
	}
	return true
}

func (r *REPL) printWelcome() {
	fmt.Fprintf(r.out, "blocml %s - bloc template parser\n", Version)
	fmt.Fprintln(r.out, "Enter template text to see its AST. End a line with \\ to continue on the next one.")
	fmt.Fprintln(r.out, "Type :help for commands.")
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  :help              show this help")
	fmt.Fprintln(r.out, "  :format [NAME]     show or set the AST output format (tree, json, yaml)")
	fmt.Fprintln(r.out, "  :history           show entered snippets")
	fmt.Fprintln(r.out, "  :clear             clear the screen")
	fmt.Fprintln(r.out, "  :version           show the version")
	fmt.Fprintln(r.out, "  :exit              leave the shell")
}
