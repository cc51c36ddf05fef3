package zcl

import "testing"

func TestEqualValidator(t *testing.T) {
	v := Equal{Expected: uint64(10)}
	if err := v.Validate(uint64(10)); err != nil {
		t.Errorf("Equal(10).Validate(10) should pass, got %v", err)
	}
	if err := v.Validate(uint64(11)); err == nil {
		t.Error("Equal(10).Validate(11) should fail")
	}
}

func TestBetweenValidator(t *testing.T) {
	v := Between{Low: 10, High: 20}
	for _, in := range []int64{10, 15, 20} {
		if err := v.Validate(in); err != nil {
			t.Errorf("Between(10,20).Validate(%d) should pass, got %v", in, err)
		}
	}
	for _, in := range []int64{9, 21} {
		if err := v.Validate(in); err == nil {
			t.Errorf("Between(10,20).Validate(%d) should fail", in)
		}
	}
}

func TestExpectWithBetween(t *testing.T) {
	// S7: single INT8U arg Between(10,20) matches [0x0F], fails naming the
	// arg on [0x05].
	proto := &CommandPrototype{
		Name:   "LevelReport",
		Params: []CommandParam{{Name: "level", Type: Int8U}},
	}
	inv, err := proto.BindExpectation(Between{Low: 10, High: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cur := NewCursor([]byte{0x0F})
	received, _ := Decode(Int8U, cur)
	if err := ValidatePayload(inv.Args, []any{received}); err != nil {
		t.Errorf("expected 0x0F to satisfy Between(10,20), got %v", err)
	}

	cur = NewCursor([]byte{0x05})
	received, _ = Decode(Int8U, cur)
	err = ValidatePayload(inv.Args, []any{received})
	if err == nil {
		t.Fatal("expected 0x05 to fail Between(10,20)")
	}
	af, ok := err.(*AssertionFailure)
	if !ok {
		t.Fatalf("expected *AssertionFailure, got %T", err)
	}
	if af.ArgName != "level" {
		t.Errorf("AssertionFailure should name the arg, got %q", af.ArgName)
	}
}

func TestDontCareAcceptsAnything(t *testing.T) {
	proto := &CommandPrototype{
		Name:   "Whatever",
		Params: []CommandParam{{Name: "x", Type: Int8U}},
	}
	inv, err := proto.BindExpectation(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePayload(inv.Args, []any{uint64(255)}); err != nil {
		t.Errorf("don't-care arg should accept anything, got %v", err)
	}
}

func TestAnyValidatorExplicit(t *testing.T) {
	if err := (Any{}).Validate("whatever"); err != nil {
		t.Errorf("Any should accept anything, got %v", err)
	}
}
