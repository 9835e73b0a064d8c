package interp

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type binding struct {
	value Value
	konst bool
}

// Env is one scope in the environment chain. Lookups walk outward through
// parents; child scopes are created per block and per call. Lambda values
// hold their captured Env by pointer, so a closure and its defining scope
// share mutations.
type Env struct {
	parent *Env
	vars   map[string]binding
}

// NewEnv returns an empty root environment
func NewEnv() *Env {
	return &Env{vars: make(map[string]binding)}
}

// Child returns a new innermost scope chained to e
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: make(map[string]binding)}
}

// Lookup resolves a name through the scope chain
func (e *Env) Lookup(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Bind declares a name in the innermost scope, shadowing any outer binding
// of the same name
func (e *Env) Bind(name string, v Value, konst bool) {
	e.vars[name] = binding{value: v, konst: konst}
}

// Assign mutates the nearest reachable binding of name. It fails when no
// binding exists or when the binding is const.
func (e *Env) Assign(name string, v Value) *RuntimeError {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			if b.konst {
				return &RuntimeError{Kind: ErrorAssignToConst, Name: name}
			}
			scope.vars[name] = binding{value: v}
			return nil
		}
	}
	return &RuntimeError{
		Kind:       ErrorUnknownVariable,
		Name:       name,
		Suggestion: e.Suggest(name),
	}
}

// Names returns every name reachable from e, innermost first
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for scope := e; scope != nil; scope = scope.parent {
		for name := range scope.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Suggest returns the bound name closest to a misspelled one, or "" when
// nothing is within editing distance two
func (e *Env) Suggest(name string) string {
	best := ""
	bestDist := 3
	for _, candidate := range e.Names() {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}
