// Package macro stores parameterised text templates. Placeholders $1..$n
// in a body are replaced by positional arguments on instantiation.
package macro

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknown  = errors.New("unknown macro")
	ErrArgCount = errors.New("wrong number of macro arguments")
)

type macro struct {
	argc int
	body string
}

type Registry struct {
	macros map[string]macro
}

func NewRegistry() *Registry {
	return &Registry{macros: make(map[string]macro)}
}

// Insert adds or replaces a macro.
func (r *Registry) Insert(name string, argc int, body string) {
	r.macros[name] = macro{argc: argc, body: body}
}

func (r *Registry) Has(name string) bool {
	_, ok := r.macros[name]
	return ok
}

// Names lists the registered macros alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate expands name with args. Higher-numbered placeholders are
// substituted first so $1 never clobbers the prefix of $10.
func (r *Registry) Instantiate(name string, args ...string) (string, error) {
	m, ok := r.macros[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if m.argc != len(args) {
		return "", fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, name, m.argc, len(args))
	}
	body := m.body
	for i := len(args); i >= 1; i-- {
		body = strings.ReplaceAll(body, fmt.Sprintf("$%d", i), args[i-1])
	}
	return body, nil
}

// AddOSMacros registers the system-call wrappers. Each loads its trap
// number and issues SCALL with the caller's operand and mode.
func AddOSMacros(r *Registry) {
	for _, name := range []string{"DECI", "DECO", "HEXO", "STRO", "SNOP"} {
		r.Insert(name, 2, "LDWA "+name+",i\nSCALL $1,$2\n")
	}
}
