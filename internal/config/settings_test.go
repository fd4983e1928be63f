package config

import (
	"fmt"
	"testing"
)

func TestValueString_RendersEveryKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", Value{}, ""},
		{"string", String("dark"), "dark"},
		{"int", Int(42), "42"},
		{"float", Float(0.7), "0.7"},
		{"bool", Bool(true), "true"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("%s: String() = %q, want %q", tc.name, got, tc.want)
		}
		if got := fmt.Sprintf("%v", tc.v); got != tc.want {
			t.Errorf("%s: %%v = %q, want %q", tc.name, got, tc.want)
		}
	}

	if got := List(Int(1), Int(2)).String(); got == "" {
		t.Error("list rendering must not be empty")
	}
	if got := Map(map[string]Value{"k": Int(1)}).String(); got == "" {
		t.Error("map rendering must not be empty")
	}
}
