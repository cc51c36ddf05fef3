package zcl

import "testing"

func TestEncodeAcceptsJSONNumberAndByteArray(t *testing.T) {
	// JSON-sourced args arrive as float64 (numbers) and []any (arrays).
	b, err := Encode(Int16U, float64(4242))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 2 || b[0] != 0x92 || b[1] != 0x10 {
		t.Errorf("got %v, want [0x92 0x10]", b)
	}

	b, err = Encode(OctetString, []any{float64(6), float64(7), float64(8), float64(9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x04, 0x06, 0x07, 0x08, 0x09}
	if len(b) != len(want) {
		t.Fatalf("got %v, want %v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("byte %d: got 0x%02X, want 0x%02X", i, b[i], want[i])
		}
	}
}

func TestAsInt64WidensFloat64(t *testing.T) {
	v, ok := AsInt64(float64(15))
	if !ok || v != 15 {
		t.Errorf("got (%v, %v), want (15, true)", v, ok)
	}
}
