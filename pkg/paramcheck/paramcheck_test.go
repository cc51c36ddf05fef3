package paramcheck

import (
	"encoding/json"
	"testing"

	"github.com/urmzd/zcl-harness/pkg/zcl"
)

func setPinProto() *zcl.CommandPrototype {
	return &zcl.CommandPrototype{
		ClusterCode: 0x0101,
		Code:        0x00,
		Name:        "SetPin",
		Params: []zcl.CommandParam{
			{Name: "user_id", Type: zcl.Int16U},
			{Name: "user_status", Type: zcl.Enum8},
			{Name: "user_type", Type: zcl.Enum8},
			{Name: "pin_length", Type: zcl.Enum8},
			{Name: "pin", Type: zcl.CharString},
		},
	}
}

func TestValidateAcceptsWellTypedArgs(t *testing.T) {
	c := NewChecker()
	err := c.Validate(setPinProto(), json.RawMessage(`[7, 1, 1, 4, "1234"]`))
	if err != nil {
		t.Errorf("expected valid args, got: %v", err)
	}
}

func TestValidateRejectsWrongArity(t *testing.T) {
	c := NewChecker()
	err := c.Validate(setPinProto(), json.RawMessage(`[7, 1]`))
	if err == nil {
		t.Fatal("expected arity error")
	}
	if _, ok := err.(*ParamValidationError); !ok {
		t.Errorf("got %T, want *ParamValidationError", err)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	c := NewChecker()
	err := c.Validate(setPinProto(), json.RawMessage(`[7, 1, 1, 4, 1234]`))
	if err == nil {
		t.Fatal("expected type error for non-string pin")
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	c := NewChecker()
	err := c.Validate(setPinProto(), json.RawMessage(`not json`))
	if err == nil {
		t.Fatal("expected malformed JSON to be rejected")
	}
}

func TestValidateCachesCompiledSchema(t *testing.T) {
	c := NewChecker()
	proto := setPinProto()

	if err := c.Validate(proto, json.RawMessage(`[7, 1, 1, 4, "1234"]`)); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(proto, json.RawMessage(`[8, 1, 1, 4, "5678"]`)); err != nil {
		t.Fatal(err)
	}

	c.mu.RLock()
	cacheSize := len(c.cache)
	c.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}

func TestValidateAcceptsOctetStringAsByteArray(t *testing.T) {
	c := NewChecker()
	proto := &zcl.CommandPrototype{
		Name:   "Ident",
		Params: []zcl.CommandParam{{Name: "data", Type: zcl.OctetString}},
	}
	if err := c.Validate(proto, json.RawMessage(`[[6,7,8,9]]`)); err != nil {
		t.Errorf("expected byte-array octet string to validate, got: %v", err)
	}
}

func TestValidateAcceptsBooleanParam(t *testing.T) {
	c := NewChecker()
	proto := &zcl.CommandPrototype{
		Name:   "Toggle",
		Params: []zcl.CommandParam{{Name: "on", Type: zcl.Boolean}},
	}
	if err := c.Validate(proto, json.RawMessage(`[true]`)); err != nil {
		t.Errorf("expected boolean arg to validate, got: %v", err)
	}
	if err := c.Validate(proto, json.RawMessage(`[1]`)); err == nil {
		t.Error("expected integer in place of boolean to be rejected")
	}
}
