package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linger-lang/linger/ir"
	"github.com/linger-lang/linger/parser"
)

// run evaluates source and returns the value of main plus everything print
// wrote
func run(t *testing.T, source string) (Value, string, error) {
	t.Helper()
	prog, err := parser.ParseString(source)
	require.NoError(t, err, "parse error")

	var out bytes.Buffer
	value, rerr := New(Options{Output: &out}).Run(ir.Transform(prog))
	return value, out.String(), rerr
}

// runValue evaluates source that must succeed and returns main's value
func runValue(t *testing.T, source string) Value {
	t.Helper()
	value, _, err := run(t, source)
	require.NoError(t, err)
	return value
}

// runError evaluates source that must fail and returns the runtime error
func runError(t *testing.T, source string) *RuntimeError {
	t.Helper()
	_, _, err := run(t, source)
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	return rerr
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected int64
	}{
		{"addition", "1 + 2", 3},
		{"subtraction", "10 - 3", 7},
		{"multiplication", "4 * 5", 20},
		{"division", "9 / 2", 4},
		{"modulo", "9 % 4", 1},
		{"precedence", "2 + 3 * 4", 14},
		{"unary_minus", "-(3 + 4)", -7},
		{"double_negation", "-(-5) - 1", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := runValue(t, "proc main() { return "+tt.expr+"; }")
			require.IsType(t, &Num{}, value)
			assert.Equal(t, tt.expected, value.(*Num).Value)
		})
	}
}

func TestStringConcatenation(t *testing.T) {
	value := runValue(t, `proc main() { return "foo" + "bar"; }`)
	require.IsType(t, &Str{}, value)
	assert.Equal(t, "foobar", value.(*Str).Value)
}

func TestMixedPlusIsBadArg(t *testing.T) {
	// A num on the left blames the right operand; a str on the left is
	// itself the bad argument.
	rerr := runError(t, `proc main() { return 1 + "a"; }`)
	assert.Equal(t, ErrorBadArg, rerr.Kind)
	assert.Equal(t, `bad argument "a"`, rerr.Error())

	rerr = runError(t, `proc main() { return "a" + 1; }`)
	assert.Equal(t, ErrorBadArg, rerr.Kind)
	assert.Equal(t, `bad argument "a"`, rerr.Error())
}

func TestDivisionByZero(t *testing.T) {
	for _, expr := range []string{"1 / 0", "1 % 0"} {
		rerr := runError(t, "proc main() { return "+expr+"; }")
		assert.Equal(t, ErrorDivisionByZero, rerr.Kind)
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected bool
	}{
		{"num_lt", "1 < 2", true},
		{"num_gte", "2 >= 3", false},
		{"num_eq", "3 == 3", true},
		{"num_ne", "3 != 3", false},
		{"str_eq", `"a" == "a"`, true},
		{"str_lt", `"abc" < "abd"`, true},
		{"bool_eq", "true == true", true},
		{"bool_order", "false < true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := runValue(t, "proc main() { return "+tt.expr+"; }")
			require.IsType(t, &Bool{}, value)
			assert.Equal(t, tt.expected, value.(*Bool).Value)
		})
	}
}

func TestComparingMixedTypesIsBadArgs(t *testing.T) {
	rerr := runError(t, `proc main() { return 1 == "a"; }`)
	assert.Equal(t, ErrorBadArgs, rerr.Kind)
	assert.Equal(t, `bad args: [1, a]`, rerr.Error())
}

func TestLogicalShortCircuit(t *testing.T) {
	// The right operand would blow up if evaluated
	value := runValue(t, `proc main() { return false && (1 / 0 == 0); }`)
	require.IsType(t, &Bool{}, value)
	assert.False(t, value.(*Bool).Value)

	value = runValue(t, `proc main() { return true || (1 / 0 == 0); }`)
	require.IsType(t, &Bool{}, value)
	assert.True(t, value.(*Bool).Value)
}

func TestLogicalRequiresBool(t *testing.T) {
	rerr := runError(t, `proc main() { return 1 && true; }`)
	assert.Equal(t, ErrorExpectedBool, rerr.Kind)
	assert.Equal(t, "expected boolean value, instead got 1", rerr.Error())
}

func TestLogicalNot(t *testing.T) {
	value := runValue(t, `proc main() { return !(1 < 2); }`)
	require.IsType(t, &Bool{}, value)
	assert.False(t, value.(*Bool).Value)
}

func TestIncrementDecrement(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int64
	}{
		{"pre_increment_yields_new", "let x = 1; return ++x;", 2},
		{"post_increment_yields_old", "let x = 1; return x++;", 1},
		{"post_increment_mutates", "let x = 1; x++; return x;", 2},
		{"pre_decrement", "let x = 1; return --x;", 0},
		{"post_decrement_mutates", "let x = 1; x--; return x;", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := runValue(t, "proc main() { "+tt.body+" }")
			require.IsType(t, &Num{}, value)
			assert.Equal(t, tt.expected, value.(*Num).Value)
		})
	}
}

func TestIncrementNonLvalue(t *testing.T) {
	rerr := runError(t, `proc main() { return (1 + 2)++; }`)
	assert.Equal(t, ErrorInvalidAssignmentTarget, rerr.Kind)
	assert.Equal(t, "invalid assignment target", rerr.Error())
}

func TestLetAndAssign(t *testing.T) {
	value := runValue(t, `
		proc main() {
			let x = 1;
			x = x + 1;
			{
				x = 10;
				let x = 100;
				x = 200;
			}
			return x;
		}
	`)
	// The inner block first mutates the outer x, then shadows it; the
	// shadow dies with the block.
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(10), value.(*Num).Value)
}

func TestAssignWithoutLet(t *testing.T) {
	rerr := runError(t, `proc main() { x = 1; }`)
	assert.Equal(t, ErrorUnknownVariable, rerr.Kind)
	assert.Contains(t, rerr.Error(), `unknown variable "x"`)
}

func TestUnknownVariableSuggestion(t *testing.T) {
	rerr := runError(t, `proc main() { let count = 1; return conut; }`)
	assert.Equal(t, ErrorUnknownVariable, rerr.Kind)
	assert.Equal(t, `unknown variable "conut", did you mean "count"?`, rerr.Error())
}

func TestConstCannotBeReassigned(t *testing.T) {
	rerr := runError(t, `proc main() { const x = 1; x = 2; }`)
	assert.Equal(t, ErrorAssignToConst, rerr.Kind)
	assert.Equal(t, `cannot assign to constant "x"`, rerr.Error())

	rerr = runError(t, `proc main() { const x = 1; x++; }`)
	assert.Equal(t, ErrorAssignToConst, rerr.Kind)
}

func TestWhileLoop(t *testing.T) {
	value := runValue(t, `
		proc main() {
			let sum = 0;
			let i = 0;
			while (i < 5) {
				sum = sum + i;
				i = i + 1;
			}
			return sum;
		}
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(10), value.(*Num).Value)
}

func TestBreakAndContinue(t *testing.T) {
	value := runValue(t, `
		proc main() {
			let sum = 0;
			for (let i = 0; i < 10; i++) {
				if (i % 2 == 0) {
					continue;
				}
				if (i > 6) {
					break;
				}
				sum += i;
			}
			return sum;
		}
	`)
	// 1 + 3 + 5
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(9), value.(*Num).Value)
}

func TestBreakOutsideLoop(t *testing.T) {
	rerr := runError(t, `proc main() { break; }`)
	assert.Equal(t, ErrorBreakNotInLoop, rerr.Kind)
	assert.Equal(t, "tried to break while not within a loop", rerr.Error())
}

func TestContinueOutsideLoop(t *testing.T) {
	rerr := runError(t, `proc main() { { continue; } }`)
	assert.Equal(t, ErrorContinueNotInLoop, rerr.Kind)
	assert.Equal(t, "continue statement found outside of a loop", rerr.Error())
}

func TestBreakDoesNotEscapeCall(t *testing.T) {
	// The lambda body is not lexically inside the caller's loop
	rerr := runError(t, `
		proc main() {
			let f = () => break;;
			while (true) {
				f();
			}
		}
	`)
	assert.Equal(t, ErrorBreakNotInLoop, rerr.Kind)
}

func TestReturnExitsNestedLoops(t *testing.T) {
	value := runValue(t, `
		proc main() {
			while (true) {
				while (true) {
					return 42;
				}
			}
		}
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(42), value.(*Num).Value)
}

func TestProcedureCalls(t *testing.T) {
	value := runValue(t, `
		proc double(n) { return n * 2; }
		proc quadruple(n) { return double(double(n)); }
		proc main() { return quadruple(5); }
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(20), value.(*Num).Value)
}

func TestRecursion(t *testing.T) {
	value := runValue(t, `
		proc fib(n) {
			if (n < 2) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		}
		proc main() { return fib(10); }
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(55), value.(*Num).Value)
}

func TestMainIsNotCallable(t *testing.T) {
	rerr := runError(t, `proc main() { return main(); }`)
	assert.Equal(t, ErrorUnknownVariable, rerr.Kind)
	assert.Contains(t, rerr.Error(), `unknown variable "main"`)
}

func TestArgumentCountMismatch(t *testing.T) {
	rerr := runError(t, `
		proc add(a, b) { return a + b; }
		proc main() { return add(1); }
	`)
	assert.Equal(t, ErrorArgMismatch, rerr.Kind)
	assert.Equal(t, `procedure "add" expected 2 args, instead got 1`, rerr.Error())
}

func TestCallingNonProcedure(t *testing.T) {
	rerr := runError(t, `proc main() { let x = 1; return x(2); }`)
	assert.Equal(t, ErrorBadArg, rerr.Kind)
}

func TestClosuresCaptureByReference(t *testing.T) {
	value := runValue(t, `
		proc makeCounter() {
			let count = 0;
			return () => {
				count = count + 1;
				return count;
			};
		}
		proc main() {
			let counter = makeCounter();
			counter();
			counter();
			return counter();
		}
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(3), value.(*Num).Value)
}

func TestClosuresAreIndependent(t *testing.T) {
	value := runValue(t, `
		proc makeCounter() {
			let count = 0;
			return () => {
				count = count + 1;
				return count;
			};
		}
		proc main() {
			let a = makeCounter();
			let b = makeCounter();
			a();
			a();
			return b();
		}
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(1), value.(*Num).Value)
}

func TestLambdaAsArgument(t *testing.T) {
	value := runValue(t, `
		proc apply(f, x) { return f(x); }
		proc main() { return apply((n) => return n * 3;, 7); }
	`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(21), value.(*Num).Value)
}

func TestRecursionLimit(t *testing.T) {
	prog, err := parser.ParseString(`
		proc loop(n) { return loop(n + 1); }
		proc main() { return loop(0); }
	`)
	require.NoError(t, err)

	var out bytes.Buffer
	_, rerr := New(Options{Output: &out, MaxDepth: 50}).Run(ir.Transform(prog))
	require.Error(t, rerr)

	var re *RuntimeError
	require.ErrorAs(t, rerr, &re)
	assert.Equal(t, ErrorRecursionLimit, re.Kind)
	assert.Contains(t, re.Error(), "maximum recursion depth exceeded")
}

func TestPrint(t *testing.T) {
	_, out, err := run(t, `proc main() { print(1, "a", true); }`)
	require.NoError(t, err)
	assert.Equal(t, "1 a true", out)
}

func TestPrintOrdering(t *testing.T) {
	_, out, err := run(t, `
		proc main() {
			for (let i = 0; i < 3; i++) {
				print(i);
			}
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "012", out)
}

func TestPrintDisplaysSpecialValues(t *testing.T) {
	_, out, err := run(t, `
		proc noop() { }
		proc main() {
			print(noop(), (x) => return x;);
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "<void> <lambda>", out)
}

func TestMainValueIsLastExpression(t *testing.T) {
	// Without a return, main's value is the last statement's value
	value := runValue(t, `proc main() { 1 + 1; 2 + 2; }`)
	require.IsType(t, &Num{}, value)
	assert.Equal(t, int64(4), value.(*Num).Value)
}

func TestConditionMustBeBool(t *testing.T) {
	rerr := runError(t, `proc main() { if (1) { } }`)
	assert.Equal(t, ErrorBadArg, rerr.Kind)

	rerr = runError(t, `proc main() { while ("x") { } }`)
	assert.Equal(t, ErrorBadArg, rerr.Kind)
}

func TestForLoopEquivalentToWhile(t *testing.T) {
	forResult := runValue(t, `
		proc main() {
			let sum = 0;
			for (let i = 0; i < 6; i += 1) {
				sum += i;
			}
			return sum;
		}
	`)
	whileResult := runValue(t, `
		proc main() {
			let sum = 0;
			{
				let i = 0;
				while (i < 6) {
					sum += i;
					i += 1;
				}
			}
			return sum;
		}
	`)
	assert.Equal(t, forResult, whileResult)
	assert.Equal(t, int64(15), forResult.(*Num).Value)
}

func TestSuggestIgnoresDistantNames(t *testing.T) {
	env := NewEnv()
	env.Bind("alpha", &Num{Value: 1}, false)
	assert.Equal(t, "", env.Suggest("zzzzzz"))
	assert.Equal(t, "alpha", env.Suggest("alpah"))
}
