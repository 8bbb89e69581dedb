package event

import (
	"testing"
	"unsafe"
)

func TestEventSize(t *testing.T) {
	if got := unsafe.Sizeof(Event{}); got != 16 {
		t.Fatalf("Event must be 16 bytes, got %d", got)
	}
}

func TestEventHas(t *testing.T) {
	e := New(100, 0)
	e.Conditions |= 1 << 0 // condition 1
	e.Conditions |= 1 << 31 // condition 32
	if !e.Has(1) || !e.Has(32) {
		t.Fatalf("expected conditions 1 and 32 set: %032b", e.Conditions)
	}
	if e.Has(2) {
		t.Fatalf("condition 2 should not be set: %032b", e.Conditions)
	}
}

func TestValueNullAndShared(t *testing.T) {
	if !NullValue.IsNull() {
		t.Fatal("NullValue.IsNull() should be true")
	}
	v := NewValue("Home")
	if v.IsNull() {
		t.Fatal("NewValue should not be null")
	}
	if v.String() != "Home" {
		t.Fatalf("got %q, want Home", v.String())
	}
	// Copying a Value is a pointer copy: both see the same string.
	v2 := v
	if v2.String() != v.String() {
		t.Fatal("copy should observe the same string")
	}
}

func TestValueEmptyStringIsNotNull(t *testing.T) {
	v := NewValue("")
	if v.IsNull() {
		t.Fatal("empty string value should not be null")
	}
}
