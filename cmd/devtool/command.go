package main

import (
	"fmt"
	"sort"
)

// Command is implemented by every devtool subcommand.
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry holds the available commands keyed by name.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry with the given commands.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// PrintHelp prints usage with the commands sorted by name.
func (r *Registry) PrintHelp() {
	names := make([]string, 0, len(r.commands))
	maxLen := 0
	for name := range r.commands {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("\nAvailable Commands:")
	for _, name := range names {
		fmt.Printf("  %-*s  %s\n", maxLen, name, r.commands[name].Description())
	}
}
