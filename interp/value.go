// Package interp evaluates core Linger programs.
package interp

import (
	"strconv"

	"github.com/linger-lang/linger/ir"
)

// Value is a Linger runtime value. The set of values is closed: numbers,
// booleans, strings, lambdas and void.
type Value interface {
	value()
	// Display returns the text print writes for this value
	Display() string
}

// Num is a 64-bit integer value
type Num struct {
	Value int64
}

// Bool is a boolean value
type Bool struct {
	Value bool
}

// Str is a string value
type Str struct {
	Value string
}

// Lambda is a procedure value with its captured environment. Top-level
// procedures capture the root environment, so they can see each other;
// lambda expressions capture the environment they were evaluated in, by
// reference.
type Lambda struct {
	Params []string
	Body   []ir.Stmt
	Env    *Env
}

// Void is the value of statements and of procedures that return nothing
type Void struct{}

func (v *Num) value()    {}
func (v *Bool) value()   {}
func (v *Str) value()    {}
func (v *Lambda) value() {}
func (v *Void) value()   {}

func (v *Num) Display() string    { return strconv.FormatInt(v.Value, 10) }
func (v *Bool) Display() string   { return strconv.FormatBool(v.Value) }
func (v *Str) Display() string    { return v.Value }
func (v *Lambda) Display() string { return "<lambda>" }
func (v *Void) Display() string   { return "<void>" }
