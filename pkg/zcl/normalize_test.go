package zcl

import "testing"

func TestNormalizeTableExamples(t *testing.T) {
	cases := map[string]string{
		"Door Lock":                    "door_lock",
		"ThisIsACamelCaseName":         "this_is_a_camel_case_name",
		"this-has.some Punctuation":    "thishassome_punctuation",
		"this is a name with spaces":   "this_is_a_name_with_spaces",
		"thisIsAnotherCamelCaseName":   "this_is_another_camel_case_name",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Door Lock",
		"ThisIsACamelCaseName",
		"this-has.some Punctuation",
		"already_normalized",
		"Set PIN",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
