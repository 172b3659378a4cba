package interp_test

import (
	"errors"
	"testing"

	"powerassert/internal/interp"
)

type point struct {
	X, Y int
}

func (p point) Sum() int { return p.X + p.Y }

func newEnv() *interp.Env {
	env := interp.Builtins()
	env.Set("xs", []int{3, 1, 2})
	env.Set("name", "swift")
	env.Set("opt", nil)
	env.Set("p", point{X: 2, Y: 5})
	env.Set("pp", &point{X: 1, Y: 1})
	env.Set("user", map[string]any{"age": 30})
	env.Set("#line", int64(42))
	return env
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		want interp.Value
	}{
		{"1 + 2 * 3", int64(7)},
		{"(1 + 2) * 3", int64(9)},
		{"10 / 4", int64(2)},
		{"10.0 / 4", 2.5},
		{"-3 + 1", int64(-2)},
		{"1_000 + 0x10", int64(1016)},
		{`"a" + "b"`, "ab"},
		{"1 < 2 && 2 < 3", true},
		{"false && undefined", false},
		{"true || undefined", true},
		{"!false", true},
		{"1 == 1.0", true},
		{"3 ... 5", []interp.Value{int64(3), int64(4), int64(5)}},
		{"(0..<3).count", int64(3)},
		{"2 ~= 1...3", false},
		{"1...3 ~= 2", true},
		{"true ? 1 : 2", int64(1)},
		{"false ? 1 : true ? 2 : 3", int64(2)},
		{"nil ?? 5", int64(5)},
		{"opt ?? 5", int64(5)},
		{"opt?.count", nil},
		{"opt?.count.description", nil},
		{"xs.count", int64(3)},
		{"xs[0]", int64(3)},
		{"xs.first", int64(3)},
		{"xs.sorted()", []interp.Value{int64(1), int64(2), int64(3)}},
		{"xs.map { $0 * 2 }", []interp.Value{int64(6), int64(2), int64(4)}},
		{"xs.filter { x in x > 1 }.count", int64(2)},
		{"xs.reduce(0, +)", int64(6)},
		{"xs.reduce(0) { $0 + $1 }", int64(6)},
		{"xs.contains(2)", true},
		{"name.count", int64(5)},
		{"name.uppercased()", "SWIFT"},
		{`name.hasPrefix("sw")`, true},
		{`"sum: \(1 + 2)"`, "sum: 3"},
		{`"name: \(name)"`, "name: swift"},
		{`"e\u{301}" == "é"`, true},
		{`"tab\tend"`, "tab\tend"},
		{"(a: 1, b: 2).b", int64(2)},
		{"(1, 2).0", int64(1)},
		{"(4)", int64(4)},
		{`["a": 1, "b": 2]["b"]`, int64(2)},
		{`["a": 1]["z"]`, nil},
		{"[:].isEmpty", true},
		{"[].count", int64(0)},
		{"p.x + p.y", int64(7)},
		{"p.sum()", int64(7)},
		{"pp.x", int64(1)},
		{"user.age", int64(30)},
		{"Int.self", "Int"},
		{"xs.self.count", int64(3)},
		{`\.name`, `\.name`},
		{"#line", int64(42)},
		{"max(1, 7, 3)", int64(7)},
		{"abs(-4)", int64(4)},
		{".red", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			in := interp.New(newEnv(), nil)
			got, err := in.EvalString(tt.src)
			if err != nil {
				t.Fatalf("EvalString(%q): %v", tt.src, err)
			}
			if !interp.Equal(got, tt.want) || (got == nil) != (tt.want == nil) {
				t.Errorf("EvalString(%q) = %s, want %s", tt.src, interp.Format(got), interp.Format(tt.want))
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []string{
		"undefined",
		"1 / 0",
		"xs[10]",
		`1 + "a"`,
		"opt.count",
		"true ? 1",
		"xs.nope",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			in := interp.New(newEnv(), nil)
			if _, err := in.EvalString(src); err == nil {
				t.Errorf("EvalString(%q): expected error", src)
			}
		})
	}
}

func TestForceUnwrapNil(t *testing.T) {
	in := interp.New(newEnv(), nil)
	_, err := in.EvalString("opt!.count")
	if !errors.Is(err, interp.ErrUnwrapNil) {
		t.Fatalf("err = %v, want ErrUnwrapNil", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    interp.Value
		want string
	}{
		{nil, "nil"},
		{int64(3), "3"},
		{2.0, "2.0"},
		{0.5, "0.5"},
		{"hi", `"hi"`},
		{[]interp.Value{int64(1), "a"}, `[1, "a"]`},
		{map[any]interp.Value{"b": int64(2), "a": int64(1)}, `["a": 1, "b": 2]`},
		{map[any]interp.Value{}, "[:]"},
		{interp.Tuple{Labels: []string{"x", ""}, Elems: []interp.Value{int64(1), true}}, "(x: 1, true)"},
		{interp.Func(nil), "(Function)"},
	}
	for _, tt := range tests {
		if got := interp.Format(tt.v); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRecorderOrder(t *testing.T) {
	env := newEnv()
	rec := &interp.Recorder{}
	rec.Bind(env, "capture")
	in := interp.New(env, nil)

	got, err := in.EvalString("capture(capture(1, column: 0) + capture(2, column: 4), column: 2)")
	if err != nil {
		t.Fatal(err)
	}
	if !interp.Equal(got, int64(3)) {
		t.Fatalf("result = %s", interp.Format(got))
	}
	want := []interp.Record{{int64(1), 0}, {int64(2), 4}, {int64(3), 2}}
	records := rec.Records()
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i, r := range records {
		if !interp.Equal(r.Value, want[i].Value) || r.Column != want[i].Column {
			t.Errorf("record %d = %v, want %v", i, r, want[i])
		}
	}
}

func TestRecorderDottedCallee(t *testing.T) {
	env := newEnv()
	rec := &interp.Recorder{}
	rec.Bind(env, "pa.capture")
	in := interp.New(env, nil)

	if _, err := in.EvalString("pa.capture(name, column: 7)"); err != nil {
		t.Fatal(err)
	}
	records := rec.Records()
	if len(records) != 1 || records[0].Value != "swift" || records[0].Column != 7 {
		t.Fatalf("records = %v", records)
	}
	rec.Reset()
	if n := len(rec.Records()); n != 0 {
		t.Fatalf("after Reset: %d records", n)
	}
}

func TestOptionalChainStopsAtCaptureBoundary(t *testing.T) {
	env := newEnv()
	rec := &interp.Recorder{}
	rec.Bind(env, "capture")
	in := interp.New(env, nil)

	got, err := in.EvalString("capture(capture(capture(opt, column: 0)?.count, column: 5)?.description, column: 11)")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("result = %s, want nil", interp.Format(got))
	}
	if n := len(rec.Records()); n != 3 {
		t.Fatalf("got %d records, want 3", n)
	}
}
