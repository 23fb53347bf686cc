package protocol

import "testing"

func TestProfileOverrides(t *testing.T) {
	alt := Classic().WithName("alt").WithPrefix(0x3B).WithOpcode(KindFixedWhite1, 0x1B)

	got := alt.Encode(FixedWhite1())
	want := Frame{0x3B, 0, 0, 0, 0x1B}
	if got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}

	// Untouched entries come through from the base table.
	if op := alt.Opcode(KindPower); op != 0xAA {
		t.Errorf("alt power opcode = 0x%02X, want 0xAA", op)
	}
}

func TestWithOpcodeDoesNotMutateBase(t *testing.T) {
	base := Classic()
	_ = base.WithOpcode(KindPower, 0x00)

	if op := base.Opcode(KindPower); op != 0xAA {
		t.Errorf("base power opcode = 0x%02X after override copy, want 0xAA", op)
	}
	if op := Classic().Opcode(KindPower); op != 0xAA {
		t.Errorf("Classic() power opcode = 0x%02X, want 0xAA", op)
	}
}
