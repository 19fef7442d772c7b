package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrUnbalancedQuotes is returned for lines with an unterminated quote.
var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

// Executor runs one command line split into arguments and prints its result.
type Executor func(args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	prompt    func() string
	completer *Completer
	history   *History
}

// New creates a REPL reading stdin and writing stdout.
func New(exec Executor) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		exec:      exec,
		prompt:    func() string { return "respkv> " },
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// SetIO replaces the input and output streams.
func (r *REPL) SetIO(in io.Reader, out io.Writer) {
	r.input = in
	r.output = out
}

// SetHistory replaces the session history.
func (r *REPL) SetHistory(h *History) {
	r.history = h
}

// SetPrompt replaces the prompt function. It is called before every line.
func (r *REPL) SetPrompt(prompt func() string) {
	r.prompt = prompt
}

// History returns the session history.
func (r *REPL) History() *History {
	return r.history
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if done := r.dispatch(line); done || eof {
			return nil
		}
	}
}

// dispatch handles one non-empty line and reports whether the loop should stop.
func (r *REPL) dispatch(line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) ERR %v\n", err)
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true
	case "help":
		prefix := ""
		if len(args) > 1 {
			prefix = args[1]
		}
		r.help(prefix)
		return false
	}

	if r.exec == nil {
		return false
	}
	if err := r.exec(args); err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
	}
	return false
}

func (r *REPL) help(prefix string) {
	matches := r.completer.Complete(prefix)
	if len(matches) == 0 {
		fmt.Fprintf(r.output, "no command matches %q\n", prefix)
		return
	}
	for _, name := range matches {
		fmt.Fprintf(r.output, "%-6s %s\n", name, r.completer.Usage(name))
	}
}

// SplitArgs splits a command line into arguments. Double-quoted arguments
// support \n, \r, \t, \\, \" and \xHH escapes; single-quoted arguments are
// literal except for \'.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		i       int
		lineLen = len(line)
	)

	for i < lineLen {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
			i++
		case c == '"':
			inArg = true
			i++
			closed := false
			for i < lineLen {
				c = line[i]
				if c == '"' {
					closed = true
					i++
					break
				}
				if c == '\\' && i+1 < lineLen {
					if line[i+1] == 'x' && i+3 < lineLen {
						if b, err := strconv.ParseUint(line[i+2:i+4], 16, 8); err == nil {
							cur.WriteByte(byte(b))
							i += 4
							continue
						}
					}
					switch line[i+1] {
					case 'n':
						cur.WriteByte('\n')
					case 'r':
						cur.WriteByte('\r')
					case 't':
						cur.WriteByte('\t')
					default:
						cur.WriteByte(line[i+1])
					}
					i += 2
					continue
				}
				cur.WriteByte(c)
				i++
			}
			if !closed {
				return nil, ErrUnbalancedQuotes
			}
		case c == '\'':
			inArg = true
			i++
			closed := false
			for i < lineLen {
				c = line[i]
				if c == '\'' {
					closed = true
					i++
					break
				}
				if c == '\\' && i+1 < lineLen && line[i+1] == '\'' {
					cur.WriteByte('\'')
					i += 2
					continue
				}
				cur.WriteByte(c)
				i++
			}
			if !closed {
				return nil, ErrUnbalancedQuotes
			}
		default:
			inArg = true
			cur.WriteByte(c)
			i++
		}
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
