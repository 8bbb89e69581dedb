package pattern

import "testing"

func TestParseConditionSteps(t *testing.T) {
	p, err := Compile("(?1)(?2)(?3)", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Steps()) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(p.Steps()))
	}
	for i, s := range p.Steps() {
		if s.Kind != StepCondition || s.Condition != i+1 {
			t.Errorf("step %d = %+v, want Condition(%d)", i, s, i+1)
		}
	}
}

func TestParseWildcardAndAny(t *testing.T) {
	p, err := Compile("(?1).*(?2).", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := p.Steps()
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d: %+v", len(steps), steps)
	}
	wantKinds := []StepKind{StepCondition, StepAnyEvents, StepCondition, StepOneEvent}
	for i, want := range wantKinds {
		if steps[i].Kind != want {
			t.Errorf("step %d kind = %v, want %v", i, steps[i].Kind, want)
		}
	}
}

func TestParseTimeConstraint(t *testing.T) {
	p, err := Compile("(?1)(?t<=30)(?2)", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := p.Steps()
	if len(steps) != 3 || steps[1].Kind != StepTimeConstraint {
		t.Fatalf("expected middle step to be TimeConstraint, got %+v", steps)
	}
	if steps[1].Op != OpLe || steps[1].Threshold != 30 {
		t.Errorf("time constraint = %+v, want <=30", steps[1])
	}
}

func TestParseAllOperators(t *testing.T) {
	ops := map[string]TimeOp{
		"==": OpEq, "!=": OpNe, "<=": OpLe, ">=": OpGe, "<": OpLt, ">": OpGt,
	}
	for lit, want := range ops {
		src := "(?1)(?t" + lit + "5)(?2)"
		p, err := Compile(src, 2)
		if err != nil {
			t.Fatalf("Compile(%q): %v", src, err)
		}
		if got := p.Steps()[1].Op; got != want {
			t.Errorf("Compile(%q): op = %v, want %v", src, got, want)
		}
	}
}

func TestParseNegativeThreshold(t *testing.T) {
	p, err := Compile("(?1)(?t>-5)(?2)", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Steps()[1].Threshold != -5 {
		t.Errorf("threshold = %d, want -5", p.Steps()[1].Threshold)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"(?",
		"(?abc)",
		"(?1",
		"(?tX5)",
		"x",
		"(?t<=)",
	}
	for _, src := range cases {
		if _, err := Compile(src, 5); err == nil {
			t.Errorf("Compile(%q): expected error, got nil", src)
		}
	}
}

func TestConsecutiveTimeConstraintsRejected(t *testing.T) {
	_, err := Compile("(?1)(?t<=5)(?t>=2)(?2)", 2)
	if err == nil {
		t.Fatal("expected error for consecutive time constraints")
	}
}

func TestConditionIndexOutOfRange(t *testing.T) {
	cases := []struct {
		src  string
		n    int
	}{
		{"(?0)", 5},
		{"(?6)", 5},
		{"(?33)", 32},
	}
	for _, c := range cases {
		if _, err := Compile(c.src, c.n); err == nil {
			t.Errorf("Compile(%q, %d): expected out-of-range error", c.src, c.n)
		}
	}
}

func TestMustCompilePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on invalid pattern")
		}
	}()
	MustCompile("(?", 2)
}
