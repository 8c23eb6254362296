package entity

import (
	"reflect"
	"testing"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("0.0.6624800")
	if err != nil {
		t.Fatalf("ParseID: %v", err)
	}
	if id.Shard != 0 || id.Realm != 0 || id.Num != 6624800 {
		t.Errorf("ParseID = %+v", id)
	}
	if id.String() != "0.0.6624800" {
		t.Errorf("String() = %s", id.String())
	}
}

func TestParseID_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"0.0",
		"0.0.5.1",
		" 0.0.5",
		"0.0.5 ",
		"0.0.5/messages",
		"a.b.c",
		"0.0.-5",
	}
	for _, input := range invalid {
		if _, err := ParseID(input); err == nil {
			t.Errorf("ParseID(%q) should fail", input)
		}
		if IsID(input) {
			t.Errorf("IsID(%q) should be false", input)
		}
	}
}

func TestParseHRL(t *testing.T) {
	hrl, err := ParseHRL("hcs://1/0.0.12345")
	if err != nil {
		t.Fatalf("ParseHRL: %v", err)
	}
	if hrl.Standard != "1" || hrl.Target != "0.0.12345" {
		t.Errorf("ParseHRL = %+v", hrl)
	}
	if hrl.String() != "hcs://1/0.0.12345" {
		t.Errorf("String() = %s", hrl.String())
	}

	for _, input := range []string{"hcs://x/0.0.5", "http://1/0.0.5", "0.0.5", "hcs://1/"} {
		if _, err := ParseHRL(input); err == nil {
			t.Errorf("ParseHRL(%q) should fail", input)
		}
	}
}

func TestIsHRL(t *testing.T) {
	if !IsHRL("hcs://1/0.0.5") {
		t.Error("IsHRL should accept hcs:// prefix")
	}
	if IsHRL("0.0.5") || IsHRL("https://example.com") {
		t.Error("IsHRL should reject non-hcs strings")
	}
}

func TestFindIDs(t *testing.T) {
	got := FindIDs("send 1 HBAR from 0.0.1001 to 0.0.1002, then 0.0.1001 again")
	want := []string{"0.0.1001", "0.0.1002", "0.0.1001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindIDs = %v, want %v", got, want)
	}

	if ids := FindIDs("no entities here"); len(ids) != 0 {
		t.Errorf("FindIDs = %v, want none", ids)
	}
}
