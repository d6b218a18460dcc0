package raven

import (
	"bytes"
	"testing"
)

// runProgram parses, checks, and evaluates src with program output captured
// instead of going to the process's stdout.
func runProgram(t *testing.T, src string) (string, *Error) {
	t.Helper()
	prog, perr := ParseProgram(src)
	if perr != nil {
		t.Fatalf("ParseProgram(%q) error: %v", src, perr)
	}
	reg, cerr := Check(prog, nil, "")
	if cerr != nil {
		t.Fatalf("Check(%q) error: %v", src, cerr)
	}
	ev := NewEvaluator(reg, nil, "")
	var buf bytes.Buffer
	ev.out = &buf
	err := ev.RunTopLevel(prog)
	return buf.String(), err
}

func mustRunProgram(t *testing.T, src string) string {
	t.Helper()
	out, err := runProgram(t, src)
	if err != nil {
		t.Fatalf("running %q: %v", src, err)
	}
	return out
}

func TestRunArithmeticWidensIntToFloat(t *testing.T) {
	out := mustRunProgram(t, `
let x: float = 1;
let y = x + 1;
print(y);
`)
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestRunStringConcatenationViaPlus(t *testing.T) {
	out := mustRunProgram(t, `print("a" + "b" + "c");`)
	if out != "abc\n" {
		t.Fatalf("got %q, want %q", out, "abc\n")
	}
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `let x = 1 / 0;`)
	if err == nil || err.Kind != DivisionByZero {
		t.Fatalf("want DivisionByZero, got %v", err)
	}
}

func TestRunModuloByZeroIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `let x = 1 % 0;`)
	if err == nil || err.Kind != DivisionByZero {
		t.Fatalf("want DivisionByZero, got %v", err)
	}
}

func TestRunShortCircuitAndSkipsRightOperand(t *testing.T) {
	// If && evaluated the right side, calling sideEffect() would print.
	out := mustRunProgram(t, `
fun sideEffect() -> bool {
    print("called");
    return true;
}
let r = false && sideEffect();
print(r);
`)
	if out != "false\n" {
		t.Fatalf("&& must short-circuit before calling the right operand, got %q", out)
	}
}

func TestRunShortCircuitOrSkipsRightOperand(t *testing.T) {
	out := mustRunProgram(t, `
fun sideEffect() -> bool {
    print("called");
    return true;
}
let r = true || sideEffect();
print(r);
`)
	if out != "true\n" {
		t.Fatalf("|| must short-circuit before calling the right operand, got %q", out)
	}
}

func TestRunIfElseifElseChainPicksFirstMatch(t *testing.T) {
	src := `
fun classify(n: int) -> string {
    if (n < 0) {
        return "negative";
    } elseif (n == 0) {
        return "zero";
    } else {
        return "positive";
    }
}
print(classify(-5));
print(classify(0));
print(classify(5));
`
	if out := mustRunProgram(t, src); out != "negative\nzero\npositive\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunWhileLoopAccumulates(t *testing.T) {
	out := mustRunProgram(t, `
let i = 0;
let sum = 0;
while (i < 5) {
    sum = sum + i;
    i = i + 1;
}
print(sum);
`)
	if out != "10\n" {
		t.Fatalf("got %q, want %q", out, "10\n")
	}
}

func TestRunForLoopSharesInitCondStepWithHeader(t *testing.T) {
	out := mustRunProgram(t, `
let total = 0;
for (let i = 0; i < 4; i = i + 1) {
    total = total + i;
}
print(total);
`)
	if out != "6\n" {
		t.Fatalf("got %q, want %q", out, "6\n")
	}
}

func TestRunRecursiveFunctionCall(t *testing.T) {
	out := mustRunProgram(t, `
fun fib(n: int) -> int {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
print(fib(10));
`)
	if out != "55\n" {
		t.Fatalf("got %q, want %q", out, "55\n")
	}
}

func TestRunFunctionLocalsDoNotLeakToCaller(t *testing.T) {
	out := mustRunProgram(t, `
fun helper() -> int {
    let local = 99;
    return local;
}
let local = 1;
helper();
print(local);
`)
	if out != "1\n" {
		t.Fatalf("a function's locals must not clobber the caller's same-named variable, got %q", out)
	}
}

func TestRunArrayMutationViaPushIsVisibleThroughAliasing(t *testing.T) {
	out := mustRunProgram(t, `
fun addOne(xs: int[]) {
    xs.push(1);
}
let nums: int[] = [];
addOne(nums);
addOne(nums);
print(len(nums));
`)
	if out != "2\n" {
		t.Fatalf("array values have reference semantics; want mutations visible through the caller, got %q", out)
	}
}

func TestRunStructFieldAssignmentMutatesSharedInterior(t *testing.T) {
	out := mustRunProgram(t, `
struct Counter { n: int }
fun bump(c: Counter) {
    c.n = c.n + 1;
}
let c = Counter { n: 0 };
bump(c);
bump(c);
print(c.n);
`)
	if out != "2\n" {
		t.Fatalf("struct values have reference semantics; want field mutation visible through the caller, got %q", out)
	}
}

func TestRunArrayIndexOutOfBoundsIsIndexError(t *testing.T) {
	_, err := runProgram(t, `
let xs = [1, 2, 3];
let y = xs[5];
`)
	if err == nil || err.Kind != IndexError {
		t.Fatalf("want IndexError, got %v", err)
	}
}

func TestRunArrayPopOnEmptyArrayIsIndexError(t *testing.T) {
	_, err := runProgram(t, `
let xs: int[] = [];
xs.pop();
`)
	if err == nil || err.Kind != IndexError {
		t.Fatalf("want IndexError, got %v", err)
	}
}

func TestRunEnumValueRoundTripsThroughPrint(t *testing.T) {
	out := mustRunProgram(t, `
enum Suit { Hearts, Spades, Clubs, Diamonds }
let s = Suit::Spades;
print(s);
`)
	if out != "Suit::Spades\n" {
		t.Fatalf("got %q, want %q", out, "Suit::Spades\n")
	}
}

func TestRunEnumFromStringBuildsMatchingVariant(t *testing.T) {
	out := mustRunProgram(t, `
enum Suit { Hearts, Spades, Clubs, Diamonds }
let s = enum_from_string("Suit", "Clubs");
print(s);
`)
	if out != "Suit::Clubs\n" {
		t.Fatalf("got %q, want %q", out, "Suit::Clubs\n")
	}
}

func TestRunEnumFromStringUnknownVariantIsVariantError(t *testing.T) {
	_, err := runProgram(t, `
enum Suit { Hearts, Spades, Clubs, Diamonds }
let s = enum_from_string("Suit", "Joker");
`)
	if err == nil || err.Kind != VariantError {
		t.Fatalf("want VariantError, got %v", err)
	}
}

func TestRunFormatBuiltinSubstitutesPlaceholdersInOrder(t *testing.T) {
	out := mustRunProgram(t, `print(format("{} plus {} is {}", 1, 2, 3));`)
	if out != "1 plus 2 is 3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunFormatBuiltinAppendsExcessArguments(t *testing.T) {
	out := mustRunProgram(t, `print(format("{}", 1, 2, 3));`)
	if out != "1 2 3\n" {
		t.Fatalf("got %q, want excess arguments appended, space-separated", out)
	}
}

func TestRunLenBuiltinOnStringCountsRunesNotBytes(t *testing.T) {
	out := mustRunProgram(t, `print(len("héllo"));`)
	if out != "5\n" {
		t.Fatalf("got %q, want %q (rune count, not byte count)", out, "5\n")
	}
}

func TestRunStringSliceAndSplitMethods(t *testing.T) {
	out := mustRunProgram(t, `
print("hello".slice(1, 3));
let parts = "a,b,c".split(",");
print(len(parts));
`)
	if out != "el\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunArraySliceAndJoinMethods(t *testing.T) {
	out := mustRunProgram(t, `
let xs = [1, 2, 3, 4];
let mid = xs.slice(1, 3);
print(len(mid));
let words = ["a", "b", "c"];
print(words.join("-"));
`)
	if out != "2\na-b-c\n" {
		t.Fatalf("got %q", out)
	}
}
