package repl

import (
	"sort"
	"strings"
)

// Completer provides command name completion for the REPL.
type Completer struct {
	commands map[string]string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: map[string]string{
			"PING": "PING [message]",
			"ECHO": "ECHO message",
			"SET":  "SET key value [PX milliseconds]",
			"GET":  "GET key",
			"use":  "use address|name",
			"help": "help [prefix]",
			"exit": "exit",
			"quit": "quit",
		},
	}
}

// Complete returns the sorted command names starting with prefix,
// ignoring case. An empty prefix matches every command.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for name := range c.commands {
		if len(prefix) <= len(name) && strings.EqualFold(name[:len(prefix)], prefix) {
			suggestions = append(suggestions, name)
		}
	}
	sort.Strings(suggestions)
	return suggestions
}

// Usage returns the usage line for name, or "" if unknown.
func (c *Completer) Usage(name string) string {
	return c.commands[name]
}
