package key

import "testing"

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrlLeft, false},
		{ModCtrlLeft, ModCtrlLeft, true},
		{ModCtrlLeft | ModAltLeft, ModCtrlLeft, true},
		{ModCtrlLeft | ModAltLeft, ModAltLeft, true},
		{ModCtrlLeft | ModAltLeft, ModShiftLeft, false},
		{ModCtrlLeft, ModCtrlRight, false},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrlLeft).With(ModAltLeft)
	if !mod.Has(ModCtrlLeft) || !mod.Has(ModAltLeft) {
		t.Error("With should accumulate modifiers")
	}

	mod = mod.Without(ModAltLeft)
	if mod.Has(ModAltLeft) {
		t.Error("Without(ModAltLeft) should remove Alt")
	}
	if !mod.Has(ModCtrlLeft) {
		t.Error("Without(ModAltLeft) should keep Ctrl")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrlLeft, "Ctrl"},
		{ModCtrlLeft | ModAltLeft, "Ctrl+Alt"},
		{ModShiftRight, "RShift"},
		{ModCtrlLeft | ModAltLeft | ModShiftLeft, "Ctrl+Alt+Shift"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierKeysRoundTrip(t *testing.T) {
	mod := ModCtrlLeft | ModAltLeft | ModShiftRight
	keys := mod.Keys()
	if len(keys) != mod.Count() {
		t.Fatalf("Keys() length %d, Count() %d", len(keys), mod.Count())
	}

	var rebuilt Modifier
	for _, k := range keys {
		rebuilt = rebuilt.With(ModifierForKey(k))
	}
	if rebuilt != mod {
		t.Errorf("rebuilt modifier %v, want %v", rebuilt, mod)
	}
}

func TestModifierBitsDistinct(t *testing.T) {
	// Every physical modifier key gets its own bit, including the
	// right-hand variants at the top of the mask.
	all := []Modifier{
		ModCtrlLeft, ModCtrlRight,
		ModAltLeft, ModAltRight,
		ModShiftLeft, ModShiftRight,
		ModMetaLeft, ModMetaRight,
	}

	var union Modifier
	for i, m := range all {
		if m == ModNone {
			t.Fatalf("modifier %d is zero", i)
		}
		if m&(m-1) != 0 {
			t.Errorf("modifier %d = %#x is not a single bit", i, uint16(m))
		}
		if union.Has(m) {
			t.Errorf("modifier %d = %#x overlaps an earlier bit", i, uint16(m))
		}
		union = union.With(m)
	}

	if union.Count() != len(all) {
		t.Errorf("union Count() = %d, want %d", union.Count(), len(all))
	}
	if got := ModifierForKey(KeyMetaRight); got != ModMetaRight {
		t.Errorf("ModifierForKey(KeyMetaRight) = %#x, want %#x",
			uint16(got), uint16(ModMetaRight))
	}
}

func TestModifierForKey(t *testing.T) {
	if ModifierForKey(KeyCtrlLeft) != ModCtrlLeft {
		t.Error("KeyCtrlLeft should map to ModCtrlLeft")
	}
	if ModifierForKey(KeyH) != ModNone {
		t.Error("non-modifier key should map to ModNone")
	}
}
