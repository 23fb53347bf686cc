package protocol

import (
	"errors"
	"testing"
)

func TestDecodeStatus(t *testing.T) {
	got, err := DecodeStatus([]byte{1, 5, 3, 4, 9, 2, 1, 0xF4})
	if err != nil {
		t.Fatalf("DecodeStatus() error = %v", err)
	}

	want := Status{
		Power:      1,
		Mode:       Mode{Kind: ModeAnimation, Animation: 5},
		Speed:      3,
		Brightness: 4,
		PixelType:  PixelAPA102,
		ColorOrder: OrderGRB,
		Reserved:   [2]byte{1, 0xF4},
	}
	if got != want {
		t.Errorf("DecodeStatus() = %+v, want %+v", got, want)
	}
}

func TestDecodeStatusLength(t *testing.T) {
	for _, n := range []int{0, 7, 9} {
		_, err := DecodeStatus(make([]byte, n))
		var malformed *MalformedStatusError
		if !errors.As(err, &malformed) {
			t.Errorf("DecodeStatus(%d bytes) error = %v, want MalformedStatusError", n, err)
			continue
		}
		if malformed.Len != n {
			t.Errorf("MalformedStatusError.Len = %d, want %d", malformed.Len, n)
		}
	}
}

func TestDecodeStatusModes(t *testing.T) {
	tests := []struct {
		raw  byte
		want Mode
	}{
		{0x00, Mode{Kind: ModeAnimation, Animation: 0x00}},
		{0xC8, Mode{Kind: ModeAnimation, Animation: 0xC8}},
		{0xC9, Mode{Kind: ModeCustomColor}},
		{0xCA, Mode{Kind: ModeFixedRed}},
		{0xCB, Mode{Kind: ModeFixedGreen}},
		{0xCC, Mode{Kind: ModeFixedBlue}},
		{0xCD, Mode{Kind: ModeFixedWhite1}},
		{0xCE, Mode{Kind: ModeFixedWhite2}},
	}
	for _, tt := range tests {
		st, err := DecodeStatus([]byte{1, tt.raw, 0, 0, 0, 0, 0, 0})
		if err != nil {
			t.Errorf("mode 0x%02X: error = %v", tt.raw, err)
			continue
		}
		if st.Mode != tt.want {
			t.Errorf("mode 0x%02X: decoded %+v, want %+v", tt.raw, st.Mode, tt.want)
		}
	}
}

func TestDecodeStatusUnknownMode(t *testing.T) {
	_, err := DecodeStatus([]byte{1, 0xCF, 0, 0, 0, 0, 0, 0})
	var unknown *UnknownModeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownModeError", err)
	}
	if unknown.Value != 0xCF {
		t.Errorf("UnknownModeError.Value = 0x%02X, want 0xCF", unknown.Value)
	}
}

func TestDecodeStatusEnumBounds(t *testing.T) {
	_, err := DecodeStatus([]byte{1, 0, 0, 0, 27, 0, 0, 0})
	var invalid *InvalidEnumError
	if !errors.As(err, &invalid) {
		t.Fatalf("pixel_type 27: error = %v, want InvalidEnumError", err)
	}
	if invalid.Field != "pixel_type" || invalid.Value != 27 {
		t.Errorf("InvalidEnumError = %+v, want pixel_type/27", invalid)
	}

	_, err = DecodeStatus([]byte{1, 0, 0, 0, 0, 6, 0, 0})
	if !errors.As(err, &invalid) {
		t.Fatalf("color_order 6: error = %v, want InvalidEnumError", err)
	}
	if invalid.Field != "color_order" || invalid.Value != 6 {
		t.Errorf("InvalidEnumError = %+v, want color_order/6", invalid)
	}

	// 26 and 5 are the last valid ordinals.
	st, err := DecodeStatus([]byte{0, 0, 0, 0, 26, 5, 0, 0})
	if err != nil {
		t.Fatalf("boundary decode error = %v", err)
	}
	if st.PixelType != PixelSK9822 || st.ColorOrder != OrderBGR {
		t.Errorf("boundary decode = %+v", st)
	}
}

func TestIsHelloAck(t *testing.T) {
	ack := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0xBF}
	if !IsHelloAck(ack) {
		t.Error("IsHelloAck(ack) = false")
	}
	if IsHelloAck(ack[:7]) {
		t.Error("IsHelloAck(short) = true")
	}
	bad := append([]byte(nil), ack...)
	bad[7] = 0xBE
	if IsHelloAck(bad) {
		t.Error("IsHelloAck(corrupted) = true")
	}
}

func TestStatusString(t *testing.T) {
	st := Status{
		Power:      1,
		Mode:       Mode{Kind: ModeFixedBlue},
		Speed:      2,
		Brightness: 6,
		PixelType:  PixelWS2811,
		ColorOrder: OrderRGB,
		Reserved:   [2]byte{0x01, 0xF4},
	}
	got := st.String()
	want := `power=on mode="fixed blue" speed=2 brightness=6 pixel_type=WS2811 color_order=RGB reserved=01F4`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
