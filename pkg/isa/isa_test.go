package isa

import (
	"reflect"
	"testing"
)

func TestAAABitPatterns(t *testing.T) {
	for i, am := range AllModes {
		if got := am.AAA(); got != uint8(i) {
			t.Errorf("%s.AAA() = %d; want %d", am, got, i)
		}
	}
}

func TestABitPatterns(t *testing.T) {
	if a, err := I.A(); err != nil || a != 0 {
		t.Errorf("I.A() = %d, %v; want 0, nil", a, err)
	}
	if a, err := X.A(); err != nil || a != 1 {
		t.Errorf("X.A() = %d, %v; want 1, nil", a, err)
	}
	if _, err := SX.A(); err == nil {
		t.Error("SX.A() should fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustA on SF should panic")
		}
	}()
	SF.MustA()
}

func TestParseAddressingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AddressingMode
		wantErr bool
	}{
		{"i", I, false},
		{"D", D, false},
		{"sfx", SFX, false},
		{"SfX", SFX, false},
		{"cat", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseAddressingMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAddressingMode(%q) error = %v; wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseAddressingMode(%q) = %s; want %s", tc.in, got, tc.want)
		}
	}
}

func TestTypeMasks(t *testing.T) {
	if !AIx.Allows(I) || !AIx.Allows(X) || AIx.Allows(D) {
		t.Error("A_ix must allow exactly i and x")
	}
	if RAAANoImmediate.Allows(I) || !RAAANoImmediate.Allows(D) {
		t.Error("RAAA_noi must reject only i")
	}
	for _, am := range AllModes {
		if !RAAAAll.Allows(am) || !AAAAll.Allows(am) {
			t.Errorf("%s should be allowed everywhere", am)
		}
		if M.Allows(am) || R.Allows(am) {
			t.Errorf("unary types should reject %s", am)
		}
	}
	if !AAAImmediate.Allows(I) || AAAImmediate.Allows(S) {
		t.Error("AAA_i must allow exactly i")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     InstructionType
		ok       bool
	}{
		{"RET", M, true},
		{"nota", R, true},
		{"call", AIx, true},
		{"SUBSP", AAAAll, true},
		{"LdWa", RAAAAll, true},
		{"STBX", RAAANoImmediate, true},
		{"RETS", 0, false},
	}
	for _, tc := range tests {
		got, ok := Lookup(tc.mnemonic)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Lookup(%q) = %s, %v; want %s, %v", tc.mnemonic, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		mnemonic string
		mode     AddressingMode
		want     uint8
		wantErr  bool
	}{
		{"call", I, 0x36, false},
		{"CALL", X, 0x37, false},
		{"BR", I, 0x24, false},
		{"BR", D, 0, true},
		{"ADDA", D, 0x51, false},
		{"ADDA", SX, 0x56, false},
		{"STWA", S, 0xE3, false},
		{"STWA", I, 0, true},
		{"SUBSP", I, 0x48, false},
		{"RET", I, 0, true},
		{"NOPE", I, 0, true},
	}
	for _, tc := range tests {
		got, err := Encode(tc.mnemonic, tc.mode)
		if (err != nil) != tc.wantErr {
			t.Errorf("Encode(%q, %s) error = %v; wantErr %v", tc.mnemonic, tc.mode, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Encode(%q, %s) = 0x%02X; want 0x%02X", tc.mnemonic, tc.mode, got, tc.want)
		}
	}
}

func TestEncodeUnary(t *testing.T) {
	if got, err := EncodeUnary("RET"); err != nil || got != 0x01 {
		t.Errorf("EncodeUnary(RET) = 0x%02X, %v", got, err)
	}
	if got, err := EncodeUnary("nota"); err != nil || got != 0x1E {
		t.Errorf("EncodeUnary(nota) = 0x%02X, %v", got, err)
	}
	if _, err := EncodeUnary("CALL"); err == nil {
		t.Error("EncodeUnary(CALL) should fail")
	}
}

func TestDefaultMode(t *testing.T) {
	if am, ok := DefaultMode("brle"); !ok || am != I {
		t.Errorf("DefaultMode(brle) = %s, %v", am, ok)
	}
	if _, ok := DefaultMode("ADDA"); ok {
		t.Error("ADDA has no default addressing mode")
	}
}

func TestMnemonicsOrdered(t *testing.T) {
	got := Mnemonics()
	if len(got) != len(instructions) {
		t.Fatalf("Mnemonics() returned %d entries; want %d", len(got), len(instructions))
	}
	want := []string{"RET", "SRET", "MOVFLGA"}
	if !reflect.DeepEqual(got[:3], want) {
		t.Errorf("Mnemonics()[:3] = %v; want %v", got[:3], want)
	}
	if got[len(got)-1] != "STBX" {
		t.Errorf("last mnemonic = %s; want STBX", got[len(got)-1])
	}
}
