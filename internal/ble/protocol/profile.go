package protocol

// FrameLength is the fixed size of every command frame.
const FrameLength = 5

// Frame is a wire-ready command: [prefix, p0, p1, p2, opcode].
type Frame [FrameLength]byte

// Opcode returns the command discriminant byte of the frame.
func (f Frame) Opcode() byte { return f[FrameLength-1] }

// Profile is the prefix byte and opcode table of one firmware family.
// Two prefix constants (0x38 and 0x3B) and diverging Fixed* opcodes have
// been observed across controllers, so nothing here is hard-coded at the
// call sites: a Client encodes through whichever Profile it was given.
type Profile struct {
	Name    string
	Prefix  byte
	opcodes map[Kind]byte
}

// classicOpcodes is the table of the original SP105E firmware.
var classicOpcodes = map[Kind]byte{
	KindHello:          0xD5,
	KindStatusQuery:    0x10,
	KindPower:          0xAA,
	KindSetPixelCount:  0x2D,
	KindSetColorOrder:  0x3C,
	KindSetPixelType:   0x1C,
	KindFixedRed:       0x36,
	KindFixedGreen:     0x18,
	KindFixedBlue:      0x12,
	KindFixedWhite1:    0x3B,
	KindFixedWhite2:    0x56,
	KindAnimation:      0x2C,
	KindColor:          0x1E,
	KindSpeedUp:        0x03,
	KindSpeedDown:      0x09,
	KindBrightnessUp:   0x2A,
	KindBrightnessDown: 0x28,
}

// Classic returns the built-in profile for the original SP105E firmware
// (prefix 0x38).
func Classic() Profile {
	return Profile{Name: "classic", Prefix: 0x38, opcodes: classicOpcodes}
}

// WithName returns a copy of the profile under a different name.
func (p Profile) WithName(name string) Profile {
	p.Name = name
	return p
}

// WithPrefix returns a copy of the profile using a different frame prefix.
func (p Profile) WithPrefix(prefix byte) Profile {
	p.Prefix = prefix
	return p
}

// WithOpcode returns a copy of the profile with one opcode overridden.
// The receiver's table is never mutated.
func (p Profile) WithOpcode(k Kind, opcode byte) Profile {
	table := make(map[Kind]byte, len(p.opcodes))
	for kind, op := range p.opcodes {
		table[kind] = op
	}
	table[k] = opcode
	p.opcodes = table
	return p
}

// Opcode returns the wire discriminant for a command kind.
func (p Profile) Opcode(k Kind) byte { return p.opcodes[k] }

// Encode builds the wire frame for a command. Commands carry validated
// payloads, so encoding is total.
func (p Profile) Encode(c Command) Frame {
	return Frame{p.Prefix, c.payload[0], c.payload[1], c.payload[2], p.opcodes[c.kind]}
}
