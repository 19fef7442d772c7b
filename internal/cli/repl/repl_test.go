package repl

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// newTestREPL returns a REPL over input that records executed commands.
func newTestREPL(input string) (*REPL, *bytes.Buffer, *[][]string) {
	var executed [][]string
	output := &bytes.Buffer{}
	r := New(func(args []string) error {
		executed = append(executed, args)
		return nil
	})
	r.input = strings.NewReader(input)
	r.output = output
	r.history = NewHistoryFile("")
	return r, output, &executed
}

func TestNew(t *testing.T) {
	r := New(nil)
	if r == nil {
		t.Fatal("New returned nil")
	}
	if r.completer == nil {
		t.Error("completer should be initialized")
	}
	if r.history == nil {
		t.Error("history should be initialized")
	}
	if r.prompt() != "respkv> " {
		t.Errorf("prompt = %q", r.prompt())
	}
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"uppercase exit", "EXIT\n"},
		{"EOF", ""}, // No newline, simulates Ctrl+D
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, executed := newTestREPL(tt.input + "PING\n")
			if err := r.Run(); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
			if tt.input != "" && len(*executed) != 0 {
				t.Errorf("commands after exit were executed: %v", *executed)
			}
		})
	}
}

func TestREPL_Run_EmptyLines(t *testing.T) {
	r, output, executed := newTestREPL("\n\n\nexit\n")

	if err := r.Run(); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
	if prompts := strings.Count(output.String(), "respkv>"); prompts < 4 {
		t.Errorf("expected at least 4 prompts, got %d", prompts)
	}
	if len(*executed) != 0 {
		t.Errorf("empty lines should not execute, got %v", *executed)
	}
}

func TestREPL_Run_ExecutesCommands(t *testing.T) {
	r, _, executed := newTestREPL("SET k \"hello world\"\nget k\nexit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := [][]string{{"SET", "k", "hello world"}, {"get", "k"}}
	if !reflect.DeepEqual(*executed, want) {
		t.Errorf("executed = %v, want %v", *executed, want)
	}
}

func TestREPL_Run_LastLineWithoutNewline(t *testing.T) {
	r, _, executed := newTestREPL("PING")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(*executed) != 1 || (*executed)[0][0] != "PING" {
		t.Errorf("executed = %v, want [[PING]]", *executed)
	}
}

func TestREPL_Run_ExecutorError(t *testing.T) {
	output := &bytes.Buffer{}
	r := New(func([]string) error { return errors.New("connection refused") })
	r.input = strings.NewReader("PING\nexit\n")
	r.output = output
	r.history = NewHistoryFile("")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(output.String(), "Error: connection refused") {
		t.Errorf("output = %q, want executor error", output.String())
	}
}

func TestREPL_Run_UnbalancedQuotes(t *testing.T) {
	r, output, executed := newTestREPL("ECHO \"oops\nexit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(*executed) != 0 {
		t.Errorf("executed = %v, want nothing", *executed)
	}
	if !strings.Contains(output.String(), "unbalanced quotes") {
		t.Errorf("output = %q", output.String())
	}
}

func TestREPL_Run_Help(t *testing.T) {
	r, output, executed := newTestREPL("help SE\nexit\n")

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(*executed) != 0 {
		t.Errorf("help should not reach the executor")
	}
	if !strings.Contains(output.String(), "SET key value [PX milliseconds]") {
		t.Errorf("output = %q, want SET usage", output.String())
	}
}

func TestREPL_Run_HistoryAdded(t *testing.T) {
	r, _, _ := newTestREPL("  command1  \n\tcommand2\t\nexit\n")

	if err := r.Run(); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}

	h := r.History()
	if h.Get(0) != "exit" {
		t.Errorf("most recent command = %q, want %q", h.Get(0), "exit")
	}
	if h.Get(1) != "command2" {
		t.Errorf("second most recent = %q, want %q", h.Get(1), "command2")
	}
	if h.Get(2) != "command1" {
		t.Errorf("third most recent = %q, want %q", h.Get(2), "command1")
	}
}

func TestREPL_SetPrompt(t *testing.T) {
	r, output, _ := newTestREPL("exit\n")
	r.SetPrompt(func() string { return "127.0.0.1:6379> " })

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.HasPrefix(output.String(), "127.0.0.1:6379> ") {
		t.Errorf("output = %q", output.String())
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{"plain", "SET k v", []string{"SET", "k", "v"}, false},
		{"extra whitespace", "  GET \t k  ", []string{"GET", "k"}, false},
		{"double quotes", `ECHO "hello world"`, []string{"ECHO", "hello world"}, false},
		{"escapes", `ECHO "a\r\nb\t\"c\"\\"`, []string{"ECHO", "a\r\nb\t\"c\"\\"}, false},
		{"hex escape", `ECHO "\x41\x42"`, []string{"ECHO", "AB"}, false},
		{"single quotes are literal", `ECHO 'a\nb'`, []string{"ECHO", `a\nb`}, false},
		{"escaped single quote", `ECHO 'it\'s'`, []string{"ECHO", "it's"}, false},
		{"empty quoted argument", `ECHO ""`, []string{"ECHO", ""}, false},
		{"quotes join adjacent text", `SET k"ey" v`, []string{"SET", "key", "v"}, false},
		{"empty line", "", nil, false},
		{"unterminated double", `ECHO "abc`, nil, true},
		{"unterminated single", `ECHO 'abc`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrUnbalancedQuotes) {
					t.Errorf("err = %v, want ErrUnbalancedQuotes", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
