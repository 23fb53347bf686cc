// Package protocol implements the 5-byte command framing and status
// decoding used by SP105E-family LED strip controllers. A command is
// written to the control characteristic as [prefix, p0, p1, p2, opcode];
// the prefix and opcode table vary per firmware family and come from a
// Profile.
package protocol

import "fmt"

// Controller limits. Values outside these ranges are rejected at
// command construction, never truncated.
const (
	MinPixelCount = 1
	MaxPixelCount = 2048
	MaxAnimation  = 200
)

// Kind identifies a command variant independent of its wire opcode.
type Kind int

const (
	KindHello Kind = iota
	KindStatusQuery
	KindPower
	KindSetPixelCount
	KindSetColorOrder
	KindSetPixelType
	KindFixedRed
	KindFixedGreen
	KindFixedBlue
	KindFixedWhite1
	KindFixedWhite2
	KindAnimation
	KindColor
	KindSpeedUp
	KindSpeedDown
	KindBrightnessUp
	KindBrightnessDown
)

// kindNames are the stable names used in config files and log output.
var kindNames = map[Kind]string{
	KindHello:          "hello",
	KindStatusQuery:    "status",
	KindPower:          "power",
	KindSetPixelCount:  "set_pixel_count",
	KindSetColorOrder:  "set_color_order",
	KindSetPixelType:   "set_pixel_type",
	KindFixedRed:       "fixed_red",
	KindFixedGreen:     "fixed_green",
	KindFixedBlue:      "fixed_blue",
	KindFixedWhite1:    "fixed_white1",
	KindFixedWhite2:    "fixed_white2",
	KindAnimation:      "animation",
	KindColor:          "color",
	KindSpeedUp:        "speed_up",
	KindSpeedDown:      "speed_down",
	KindBrightnessUp:   "brightness_up",
	KindBrightnessDown: "brightness_down",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a config-file command name to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("protocol: unknown command name %q", s)
}

// OutOfRangeError reports a command parameter outside the controller's
// accepted range.
type OutOfRangeError struct {
	What     string
	Value    int
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("protocol: %s %d out of range [%d,%d]", e.What, e.Value, e.Min, e.Max)
}

// Command is an immutable, validated command value. Build one through
// the constructor functions below; the zero value encodes as Hello.
type Command struct {
	kind    Kind
	payload [3]byte
}

// Kind returns the command variant.
func (c Command) Kind() Kind { return c.kind }

// Hello asks the controller to identify itself. A healthy controller
// notifies back a fixed 8-byte acknowledgement.
func Hello() Command { return Command{kind: KindHello} }

// StatusQuery asks the controller to notify back its 8-byte status record.
func StatusQuery() Command { return Command{kind: KindStatusQuery} }

// Power toggles the power state.
func Power() Command { return Command{kind: KindPower} }

// SpeedUp raises the animation speed by one step.
func SpeedUp() Command { return Command{kind: KindSpeedUp} }

// SpeedDown lowers the animation speed by one step.
func SpeedDown() Command { return Command{kind: KindSpeedDown} }

// BrightnessUp raises the brightness by one step.
func BrightnessUp() Command { return Command{kind: KindBrightnessUp} }

// BrightnessDown lowers the brightness by one step.
func BrightnessDown() Command { return Command{kind: KindBrightnessDown} }

// The fixed color modes are distinct commands on the wire, not a
// parameterized variant of Color.

func FixedRed() Command    { return Command{kind: KindFixedRed} }
func FixedGreen() Command  { return Command{kind: KindFixedGreen} }
func FixedBlue() Command   { return Command{kind: KindFixedBlue} }
func FixedWhite1() Command { return Command{kind: KindFixedWhite1} }
func FixedWhite2() Command { return Command{kind: KindFixedWhite2} }

// SetPixelCount sets the number of attached pixels. The count is sent
// big-endian across the first two payload bytes.
func SetPixelCount(n uint16) (Command, error) {
	if n < MinPixelCount || n > MaxPixelCount {
		return Command{}, &OutOfRangeError{What: "pixel count", Value: int(n), Min: MinPixelCount, Max: MaxPixelCount}
	}
	return Command{
		kind:    KindSetPixelCount,
		payload: [3]byte{byte(n >> 8), byte(n & 0xFF), 0},
	}, nil
}

// Animation starts the preprogrammed animation with the given index
// (0 = auto cycle).
func Animation(id uint8) (Command, error) {
	if id > MaxAnimation {
		return Command{}, &OutOfRangeError{What: "animation id", Value: int(id), Min: 0, Max: MaxAnimation}
	}
	return Command{
		kind:    KindAnimation,
		payload: [3]byte{id, 0, 0},
	}, nil
}

// SetColorOrder tells the controller which channel order the strip expects.
func SetColorOrder(order ColorOrder) Command {
	return Command{
		kind:    KindSetColorOrder,
		payload: [3]byte{byte(order), 0, 0},
	}
}

// SetPixelType tells the controller which LED chip drives the strip.
func SetPixelType(t PixelType) Command {
	return Command{
		kind:    KindSetPixelType,
		payload: [3]byte{byte(t), 0, 0},
	}
}

// Color sets a custom static color. The three bytes are sent exactly as
// given; the controller reorders channels according to its configured
// ColorOrder.
func Color(r, g, b uint8) Command {
	return Command{
		kind:    KindColor,
		payload: [3]byte{r, g, b},
	}
}
