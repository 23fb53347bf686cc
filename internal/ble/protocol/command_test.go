package protocol

import (
	"errors"
	"testing"
)

func TestParameterlessFrames(t *testing.T) {
	p := Classic()

	tests := []struct {
		name   string
		cmd    Command
		opcode byte
	}{
		{"hello", Hello(), 0xD5},
		{"status", StatusQuery(), 0x10},
		{"power", Power(), 0xAA},
		{"fixed red", FixedRed(), 0x36},
		{"fixed green", FixedGreen(), 0x18},
		{"fixed blue", FixedBlue(), 0x12},
		{"fixed white1", FixedWhite1(), 0x3B},
		{"fixed white2", FixedWhite2(), 0x56},
		{"speed up", SpeedUp(), 0x03},
		{"speed down", SpeedDown(), 0x09},
		{"brightness up", BrightnessUp(), 0x2A},
		{"brightness down", BrightnessDown(), 0x28},
	}

	for _, tt := range tests {
		got := p.Encode(tt.cmd)
		want := Frame{p.Prefix, 0, 0, 0, tt.opcode}
		if got != want {
			t.Errorf("%s: Encode() = % X, want % X", tt.name, got, want)
		}
		if got.Opcode() != tt.opcode {
			t.Errorf("%s: Opcode() = 0x%02X, want 0x%02X", tt.name, got.Opcode(), tt.opcode)
		}
	}
}

func TestSetPixelCountBigEndian(t *testing.T) {
	p := Classic()

	cmd, err := SetPixelCount(0x1234)
	if err != nil {
		t.Fatalf("SetPixelCount(0x1234) error = %v", err)
	}

	got := p.Encode(cmd)
	want := Frame{p.Prefix, 0x12, 0x34, 0x00, 0x2D}
	if got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestSetPixelCountOutOfRange(t *testing.T) {
	for _, n := range []uint16{0, 2049, 65535} {
		_, err := SetPixelCount(n)
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("SetPixelCount(%d) error = %v, want OutOfRangeError", n, err)
			continue
		}
		if oor.Value != int(n) {
			t.Errorf("SetPixelCount(%d): error carries value %d", n, oor.Value)
		}
	}
}

func TestAnimationRange(t *testing.T) {
	p := Classic()

	cmd, err := Animation(42)
	if err != nil {
		t.Fatalf("Animation(42) error = %v", err)
	}
	want := Frame{p.Prefix, 42, 0, 0, 0x2C}
	if got := p.Encode(cmd); got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}

	_, err = Animation(201)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("Animation(201) error = %v, want OutOfRangeError", err)
	}
}

func TestColorRawOrder(t *testing.T) {
	p := Classic()

	// The codec never reorders channels; that is the controller's job.
	got := p.Encode(Color(0x12, 0x34, 0x56))
	want := Frame{p.Prefix, 0x12, 0x34, 0x56, 0x1E}
	if got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestSetColorOrderOrdinal(t *testing.T) {
	p := Classic()

	if got := uint8(OrderGRB); got != 2 {
		t.Fatalf("OrderGRB ordinal = %d, want 2", got)
	}
	got := p.Encode(SetColorOrder(OrderGRB))
	want := Frame{p.Prefix, 2, 0, 0, 0x3C}
	if got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestSetPixelTypeOrdinal(t *testing.T) {
	p := Classic()

	if got := uint8(PixelAPA102); got != 9 {
		t.Fatalf("PixelAPA102 ordinal = %d, want 9", got)
	}
	got := p.Encode(SetPixelType(PixelAPA102))
	want := Frame{p.Prefix, 9, 0, 0, 0x1C}
	if got != want {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestFrameShape(t *testing.T) {
	p := Classic()

	cmds := []Command{
		Hello(), StatusQuery(), Power(), FixedRed(), FixedGreen(),
		FixedBlue(), FixedWhite1(), FixedWhite2(), SpeedUp(), SpeedDown(),
		BrightnessUp(), BrightnessDown(), Color(1, 2, 3),
		SetColorOrder(OrderBGR), SetPixelType(PixelWS2811),
	}
	seen := make(map[byte]Kind)
	for _, cmd := range cmds {
		frame := p.Encode(cmd)
		if frame[0] != p.Prefix {
			t.Errorf("%s: frame prefix = 0x%02X, want 0x%02X", cmd.Kind(), frame[0], p.Prefix)
		}
		if frame.Opcode() != p.Opcode(cmd.Kind()) {
			t.Errorf("%s: frame opcode 0x%02X does not match table", cmd.Kind(), frame.Opcode())
		}
		if prev, dup := seen[frame.Opcode()]; dup {
			t.Errorf("opcode 0x%02X reused by %s and %s", frame.Opcode(), prev, cmd.Kind())
		}
		seen[frame.Opcode()] = cmd.Kind()
	}
}

func TestParseColorOrder(t *testing.T) {
	got, err := ParseColorOrder("grb")
	if err != nil || got != OrderGRB {
		t.Errorf("ParseColorOrder(grb) = %v, %v", got, err)
	}
	if _, err := ParseColorOrder("rgbw"); err == nil {
		t.Error("ParseColorOrder(rgbw) should fail")
	}
}

func TestParsePixelType(t *testing.T) {
	got, err := ParsePixelType("ws2811")
	if err != nil || got != PixelWS2811 {
		t.Errorf("ParsePixelType(ws2811) = %v, %v", got, err)
	}
	if _, err := ParsePixelType("WS9999"); err == nil {
		t.Error("ParsePixelType(WS9999) should fail")
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", name, got, err, k)
		}
	}
	if _, err := ParseKind("warp_drive"); err == nil {
		t.Error("ParseKind(warp_drive) should fail")
	}
}
