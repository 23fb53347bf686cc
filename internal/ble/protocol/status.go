package protocol

import "fmt"

// StatusLength is the exact size of the status notification payload.
const StatusLength = 8

// Raw mode bytes above the animation range.
const (
	maxAnimationMode = 0xC8
	modeCustomColor  = 0xC9
	modeFixedRed     = 0xCA
	modeFixedGreen   = 0xCB
	modeFixedBlue    = 0xCC
	modeFixedWhite1  = 0xCD
	modeFixedWhite2  = 0xCE
)

// MalformedStatusError reports a status payload of the wrong size.
type MalformedStatusError struct {
	Len int
}

func (e *MalformedStatusError) Error() string {
	return fmt.Sprintf("protocol: status payload is %d bytes, want %d", e.Len, StatusLength)
}

// UnknownModeError reports a mode byte outside the documented range.
type UnknownModeError struct {
	Value byte
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("protocol: unknown mode byte 0x%02X", e.Value)
}

// InvalidEnumError reports an enumerated status field outside its range.
type InvalidEnumError struct {
	Field string
	Value byte
	Max   byte
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("protocol: %s value %d outside [0,%d]", e.Field, e.Value, e.Max)
}

// ModeKind classifies what the controller is currently displaying.
type ModeKind int

const (
	// ModeAnimation means a preprogrammed animation is running; the
	// raw mode byte is the animation index.
	ModeAnimation ModeKind = iota
	// ModeCustomColor means a custom RGB color is active. The color
	// values themselves are not recoverable from the status record.
	ModeCustomColor
	ModeFixedRed
	ModeFixedGreen
	ModeFixedBlue
	ModeFixedWhite1
	ModeFixedWhite2
)

// Mode is the decoded display mode of the controller.
type Mode struct {
	Kind      ModeKind
	Animation uint8 // valid only when Kind == ModeAnimation
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeAnimation:
		return fmt.Sprintf("animation %d", m.Animation)
	case ModeCustomColor:
		return "custom color"
	case ModeFixedRed:
		return "fixed red"
	case ModeFixedGreen:
		return "fixed green"
	case ModeFixedBlue:
		return "fixed blue"
	case ModeFixedWhite1:
		return "fixed white1"
	case ModeFixedWhite2:
		return "fixed white2"
	}
	return fmt.Sprintf("mode(%d)", int(m.Kind))
}

// Status is the decoded 8-byte status notification.
type Status struct {
	Power      uint8
	Mode       Mode
	Speed      uint8
	Brightness uint8
	PixelType  PixelType
	ColorOrder ColorOrder
	// Reserved carries the last two payload bytes unchanged. Their
	// meaning is unknown; they are kept for diagnostic visibility.
	Reserved [2]byte
}

func (s Status) String() string {
	power := "off"
	if s.Power != 0 {
		power = "on"
	}
	return fmt.Sprintf("power=%s mode=%q speed=%d brightness=%d pixel_type=%s color_order=%s reserved=%02X%02X",
		power, s.Mode, s.Speed, s.Brightness, s.PixelType, s.ColorOrder, s.Reserved[0], s.Reserved[1])
}

// DecodeStatus parses a status notification payload. The payload must be
// exactly StatusLength bytes; enumerated fields are bounds-checked and
// never reinterpreted blindly.
func DecodeStatus(b []byte) (Status, error) {
	if len(b) != StatusLength {
		return Status{}, &MalformedStatusError{Len: len(b)}
	}

	mode, err := decodeMode(b[1])
	if err != nil {
		return Status{}, err
	}
	if b[4] >= numPixelTypes {
		return Status{}, &InvalidEnumError{Field: "pixel_type", Value: b[4], Max: numPixelTypes - 1}
	}
	if b[5] >= numColorOrders {
		return Status{}, &InvalidEnumError{Field: "color_order", Value: b[5], Max: numColorOrders - 1}
	}

	return Status{
		Power:      b[0],
		Mode:       mode,
		Speed:      b[2],
		Brightness: b[3],
		PixelType:  PixelType(b[4]),
		ColorOrder: ColorOrder(b[5]),
		Reserved:   [2]byte{b[6], b[7]},
	}, nil
}

func decodeMode(raw byte) (Mode, error) {
	switch {
	case raw <= maxAnimationMode:
		return Mode{Kind: ModeAnimation, Animation: raw}, nil
	case raw == modeCustomColor:
		return Mode{Kind: ModeCustomColor}, nil
	case raw == modeFixedRed:
		return Mode{Kind: ModeFixedRed}, nil
	case raw == modeFixedGreen:
		return Mode{Kind: ModeFixedGreen}, nil
	case raw == modeFixedBlue:
		return Mode{Kind: ModeFixedBlue}, nil
	case raw == modeFixedWhite1:
		return Mode{Kind: ModeFixedWhite1}, nil
	case raw == modeFixedWhite2:
		return Mode{Kind: ModeFixedWhite2}, nil
	}
	return Mode{}, &UnknownModeError{Value: raw}
}

// HelloAckLength is the size of the reply a controller notifies back
// after a Hello command.
const HelloAckLength = 8

var helloAck = [HelloAckLength]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0xBF}

// IsHelloAck reports whether b is the fixed handshake reply.
func IsHelloAck(b []byte) bool {
	if len(b) != HelloAckLength {
		return false
	}
	for i, v := range b {
		if v != helloAck[i] {
			return false
		}
	}
	return true
}
