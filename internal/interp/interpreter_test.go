package interp

import (
	"bytes"
	"testing"
)

func run(t *testing.T, src string) (string, Value) {
	t.Helper()
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	i.SourcePath = "test.lag"
	result := i.Run(src, "test.lag")
	if IsError(result) {
		t.Fatalf("unexpected error: %s", result.(*ErrorValue).Message)
	}
	return buf.String(), result
}

func TestClosureCaptureIsSnapshot(t *testing.T) {
	out, _ := run(t, `
let x = 1;
let f = fn() { return x; };
x = 2;
println(f());
`)
	if out != "1\n" {
		t.Fatalf("got %q, want %q", out, "1\n")
	}
}

func TestConstImmutability(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	result := i.Run(`const K = 1; K = 2;`, "test.lag")
	errVal, ok := result.(*ErrorValue)
	if !ok {
		t.Fatalf("expected error, got %v", result)
	}
	if errVal.Kind != CannotAssignValueToConstant {
		t.Fatalf("got kind %v, want CannotAssignValueToConstant", errVal.Kind)
	}
}

func TestStructFieldIsolationOnConstruction(t *testing.T) {
	out, _ := run(t, `
struct P { x }
let a = P { x: P { x: 0 } };
let b = P { x: a.x };
b.x.x = 9;
println(a.x.x);
`)
	if out != "0\n" {
		t.Fatalf("got %q, want %q", out, "0\n")
	}
}

func TestListAliasing(t *testing.T) {
	out, _ := run(t, `
let a = [1];
let b = a;
b[0] = 2;
println(a[0]);
`)
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestGlobalPrecedesLocal(t *testing.T) {
	out, _ := run(t, `
fn foo() { return "global"; }
fn caller() {
  let foo = "local";
  return foo();
}
println(caller());
`)
	if out != "global\n" {
		t.Fatalf("got %q, want %q", out, "global\n")
	}
}

func TestTruthinessOfZero(t *testing.T) {
	out, _ := run(t, `
if 0 then { println("A"); } else { println("B"); }
if -1 then { println("A"); } else { println("B"); }
`)
	if out != "B\nB\n" {
		t.Fatalf("got %q, want %q", out, "B\nB\n")
	}
}

func TestForLoopBindingDrop(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	result := i.Run(`
for item in [1, 2, 3] then {}
println(item);
`, "test.lag")
	errVal, ok := result.(*ErrorValue)
	if !ok {
		t.Fatalf("expected undefined variable error after loop, got %v", result)
	}
	if errVal.Kind != UndefinedVariable {
		t.Fatalf("got kind %v, want UndefinedVariable", errVal.Kind)
	}
}

func TestIndexAssignAppend(t *testing.T) {
	out, _ := run(t, `
let xs = [1, 2];
xs[] = 3;
println(xs.join("-"));
`)
	if out != "1-2-3\n" {
		t.Fatalf("got %q, want %q", out, "1-2-3\n")
	}
}

func TestForLoopValueAndIndexBinding(t *testing.T) {
	out, _ := run(t, `
for v, i in ["a", "b"] then {
	println(i);
	println(v);
}
`)
	if out != "0\na\n1\nb\n" {
		t.Fatalf("got %q, want %q", out, "0\na\n1\nb\n")
	}
}

func TestStringInterpolation(t *testing.T) {
	out, _ := run(t, `
let name = "world";
println("hi {name}!");
`)
	if out != "hi world!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMembershipOperators(t *testing.T) {
	out, _ := run(t, `
println(2 in [1, 2, 3]);
println(5 not in [1, 2, 3]);
`)
	if out != "1\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMethodDispatchThis(t *testing.T) {
	out, _ := run(t, `
struct Counter { n }
let c = Counter { n: 0 };
c.increment = fn(this) { this.n = this.n + 1; };
c.increment();
c.increment();
println(c.n);
`)
	if out != "2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestToFixedTruncatesAtZeroDigits(t *testing.T) {
	out, _ := run(t, `
println((1.9).toFixed(0));
println((1.9).toFixed());
println((1.955).toFixed(2));
`)
	if out != "1\n1\n1.96\n" {
		t.Fatalf("got %q", out)
	}
}

func TestPlusConcatenatesWhenEitherSideIsString(t *testing.T) {
	out, _ := run(t, `
println("n=" + 5);
println(5 + "=n");
println("a" + "b");
`)
	if out != "n=5\n5=n\nab\n" {
		t.Fatalf("got %q", out)
	}
}

func TestPowerOperatorSupportsFractionalExponent(t *testing.T) {
	out, _ := run(t, `
println(4 ** 0.5);
println(2 ** 3);
`)
	if out != "2\n8\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEqualityIsKindHomogeneous(t *testing.T) {
	out, _ := run(t, `
println(1 == "1");
println("1" == 1);
println(1 == 1);
println("1" == "1");
println(1 != "1");
`)
	if out != "0\n0\n1\n1\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCallRejectsTooManyArguments(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	result := i.Run(`
fn add(a, b) { return a + b; }
add(1, 2, 3);
`, "test.lag")
	errVal, ok := result.(*ErrorValue)
	if !ok {
		t.Fatalf("expected error, got %v", result)
	}
	if errVal.Kind != TooFewArguments {
		t.Fatalf("got kind %v, want TooFewArguments", errVal.Kind)
	}
}

func TestListFirst(t *testing.T) {
	out, _ := run(t, `
println([1, 2, 3].first());
println([1, 2, 3].first(|x| x > 1));
println([].first());
println([1, 2, 3].first(|x| x > 10));
`)
	if out != "1\n2\n\n\n" {
		t.Fatalf("got %q", out)
	}
}

func TestListBuiltinMethods(t *testing.T) {
	out, _ := run(t, `
let xs = [1, 2, 3];
println(xs.map(|x| x * 2).join(","));
println(xs.filter(|x| x > 1).length());
`)
	if out != "2,4,6\n2\n" {
		t.Fatalf("got %q", out)
	}
}
