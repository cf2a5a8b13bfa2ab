package models

import (
	"reflect"
	"testing"
)

func TestMapping_SetAppendsNewKey(t *testing.T) {
	m := Mapping{{Key: "a", Value: Number("1")}}
	m = m.Set("b", Bool(true))

	want := Mapping{
		{Key: "a", Value: Number("1")},
		{Key: "b", Value: Bool(true)},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Set() = %v, want %v", m, want)
	}
}

func TestMapping_SetKeepsPositionOnDuplicate(t *testing.T) {
	m := Mapping{
		{Key: "a", Value: Number("1")},
		{Key: "b", Value: Number("2")},
	}
	m = m.Set("a", String("updated"))

	if len(m) != 2 {
		t.Fatalf("Set() produced %d members, want 2", len(m))
	}
	if m[0].Key != "a" {
		t.Errorf("Set() moved key %q to position %d, want position 0", "a", 1)
	}
	if !reflect.DeepEqual(m[0].Value, String("updated")) {
		t.Errorf("Set() value = %v, want %v", m[0].Value, String("updated"))
	}
}

func TestMapping_Get(t *testing.T) {
	m := Mapping{
		{Key: "name", Value: String("refract")},
		{Key: "count", Value: Number("3")},
	}

	v, ok := m.Get("count")
	if !ok {
		t.Fatalf("Get(%q) ok = false, want true", "count")
	}
	if !reflect.DeepEqual(v, Number("3")) {
		t.Errorf("Get(%q) = %v, want %v", "count", v, Number("3"))
	}

	if _, ok := m.Get("missing"); ok {
		t.Errorf("Get(%q) ok = true, want false", "missing")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Null{}, "null"},
		{Bool(false), "boolean"},
		{Number("3.14"), "number"},
		{String("hi"), "string"},
		{Sequence{}, "sequence"},
		{Mapping{}, "mapping"},
	}
	for _, c := range cases {
		if got := KindOf(c.value); got != c.want {
			t.Errorf("KindOf(%T) = %q, want %q", c.value, got, c.want)
		}
	}
}
