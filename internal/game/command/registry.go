package command

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves typed words to Command definitions by canonical name,
// alias or unambiguous prefix.
type Registry struct {
	byName map[string]*Command
	// words maps every name and alias to its canonical name.
	words map[string]string
	// sorted holds every key of words in order, for prefix lookup.
	sorted []string
}

// NewRegistry creates a Registry populated with the given commands.
// Names and aliases are stored lowercase.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Command, len(cmds)),
		words:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		name := strings.ToLower(cmd.Name)
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate command name: %q", name)
		}
		if owner, taken := r.words[name]; taken {
			return nil, fmt.Errorf("command name %q conflicts with an alias of %q", name, owner)
		}
		r.byName[name] = cmd
		r.words[name] = name

		for _, alias := range cmd.Aliases {
			alias = strings.ToLower(alias)
			if _, isName := r.byName[alias]; isName {
				return nil, fmt.Errorf("alias %q of %q conflicts with command name %q", alias, name, alias)
			}
			if owner, taken := r.words[alias]; taken {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, owner, name)
			}
			r.words[alias] = name
		}
	}

	r.sorted = make([]string, 0, len(r.words))
	for w := range r.words {
		r.sorted = append(r.sorted, w)
	}
	sort.Strings(r.sorted)
	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command case-insensitively. An exact name or alias wins;
// otherwise a prefix that selects exactly one command resolves to it.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	input = strings.ToLower(input)
	if input == "" {
		return nil, false
	}
	if name, ok := r.words[input]; ok {
		return r.byName[name], true
	}
	matches := r.Suggest(input)
	if len(matches) != 1 {
		return nil, false
	}
	return r.byName[matches[0]], true
}

// Suggest returns the canonical names of every command with a name or alias
// starting with prefix, sorted and deduplicated.
func (r *Registry) Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)
	seen := make(map[string]bool)
	var out []string
	i := sort.SearchStrings(r.sorted, prefix)
	for ; i < len(r.sorted) && strings.HasPrefix(r.sorted[i], prefix); i++ {
		name := r.words[r.sorted[i]]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.byName))
	for _, cmd := range r.byName {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
