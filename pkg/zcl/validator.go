package zcl

import (
	"bytes"
	"fmt"
)

// Validator is a polymorphic predicate over a received, decoded value.
// Implementations: Equal, Between, Any.
type Validator interface {
	Validate(received any) error
}

// Equal asserts that a received value equals Expected.
type Equal struct {
	Expected any
}

// Validate implements Validator.
func (e Equal) Validate(received any) error {
	if valuesEqual(e.Expected, received) {
		return nil
	}
	return fmt.Errorf("expected %v, got %v", e.Expected, received)
}

// Between asserts that a received numeric value falls within [Low, High]
// inclusive.
type Between struct {
	Low, High int64
}

// Validate implements Validator.
func (b Between) Validate(received any) error {
	v, ok := AsInt64(received)
	if !ok {
		return fmt.Errorf("value %v is not numeric", received)
	}
	if v < b.Low || v > b.High {
		return fmt.Errorf("expected value between %d and %d, got %d", b.Low, b.High, v)
	}
	return nil
}

// Any matches any received value unconditionally — equivalent to a
// CommandArg whose Value and Validator are both unset, but usable
// explicitly when constructing an expectation list positionally.
type Any struct{}

// Validate implements Validator.
func (Any) Validate(any) error { return nil }

// valuesEqual compares two decoded/bound ZCL values for equality,
// widening numeric types to a common representation so e.g. a uint64
// decoded from the wire compares equal to an int literal used to build an
// expectation.
func valuesEqual(expected, received any) bool {
	if eb, ok := expected.([]byte); ok {
		rb, ok := received.([]byte)
		return ok && bytes.Equal(eb, rb)
	}
	if es, ok := expected.(string); ok {
		rs, ok := received.(string)
		return ok && es == rs
	}
	if eBool, ok := expected.(bool); ok {
		rBool, ok := received.(bool)
		return ok && eBool == rBool
	}
	ei, eok := AsInt64(expected)
	ri, rok := AsInt64(received)
	if eok && rok {
		return ei == ri
	}
	return expected == received
}

// validateArg checks a single CommandArg against a received value,
// dispatching to its Validator if set, falling back to equality against
// its concrete Value, or accepting anything if both are unset.
func validateArg(arg CommandArg, received any) error {
	if arg.Validator != nil {
		if err := arg.Validator.Validate(received); err != nil {
			return &AssertionFailure{ArgName: arg.Name, Expected: arg.Validator, Received: received}
		}
		return nil
	}
	if arg.Value == nil {
		return nil
	}
	if !valuesEqual(arg.Value, received) {
		return &AssertionFailure{ArgName: arg.Name, Expected: arg.Value, Received: received}
	}
	return nil
}

// ValidatePayload checks each CommandArg in args against the corresponding
// decoded positional value in received, in order. It returns the first
// mismatch found, or nil if every argument matches.
func ValidatePayload(args []CommandArg, received []any) error {
	for i, arg := range args {
		if i >= len(received) {
			return &AssertionFailure{ArgName: arg.Name, Expected: arg.Value, Received: nil}
		}
		if err := validateArg(arg, received[i]); err != nil {
			return err
		}
	}
	return nil
}
