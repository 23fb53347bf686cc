package protocol

import (
	"fmt"
	"strings"
)

// ColorOrder is the channel order of the attached strip. The wire
// representation is the ordinal position.
type ColorOrder uint8

const (
	OrderRGB ColorOrder = iota
	OrderRBG
	OrderGRB
	OrderGBR
	OrderBRG
	OrderBGR

	numColorOrders = 6
)

var colorOrderNames = [numColorOrders]string{"RGB", "RBG", "GRB", "GBR", "BRG", "BGR"}

func (o ColorOrder) String() string {
	if int(o) < len(colorOrderNames) {
		return colorOrderNames[o]
	}
	return fmt.Sprintf("ColorOrder(%d)", uint8(o))
}

// ParseColorOrder resolves a CLI argument like "grb" to its ColorOrder.
// Matching is case-insensitive.
func ParseColorOrder(s string) (ColorOrder, error) {
	for i, name := range colorOrderNames {
		if strings.EqualFold(s, name) {
			return ColorOrder(i), nil
		}
	}
	return 0, fmt.Errorf("protocol: unknown color order %q", s)
}

// PixelType is the LED driver chip of the attached strip. The wire
// representation is the ordinal position.
type PixelType uint8

const (
	PixelSM16703 PixelType = iota
	PixelTM1804
	PixelUSC1903
	PixelWS2811
	PixelWS2801
	PixelSK6812
	PixelSK6812RGBW
	PixelLPD6803
	PixelLPD8806
	PixelAPA102
	PixelAPA105
	PixelTM1814
	PixelTM1914
	PixelTM1913
	PixelP9813
	PixelINK1003
	PixelDMX512
	PixelP943S
	PixelP9411
	PixelP9412
	PixelP9413
	PixelP9414
	PixelTX1812
	PixelTX1813
	PixelGS8206
	PixelGS8208
	PixelSK9822

	numPixelTypes = 27
)

var pixelTypeNames = [numPixelTypes]string{
	"SM16703", "TM1804", "USC1903", "WS2811", "WS2801", "SK6812",
	"SK6812RGBW", "LPD6803", "LPD8806", "APA102", "APA105", "TM1814",
	"TM1914", "TM1913", "P9813", "INK1003", "DMX512", "P943S", "P9411",
	"P9412", "P9413", "P9414", "TX1812", "TX1813", "GS8206", "GS8208",
	"SK9822",
}

func (t PixelType) String() string {
	if int(t) < len(pixelTypeNames) {
		return pixelTypeNames[t]
	}
	return fmt.Sprintf("PixelType(%d)", uint8(t))
}

// ParsePixelType resolves a CLI argument like "ws2811" to its PixelType.
// Matching is case-insensitive.
func ParsePixelType(s string) (PixelType, error) {
	for i, name := range pixelTypeNames {
		if strings.EqualFold(s, name) {
			return PixelType(i), nil
		}
	}
	return 0, fmt.Errorf("protocol: unknown pixel type %q", s)
}
