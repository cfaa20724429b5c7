package render

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

type MapColor uint8

const (
	Clear MapColor = iota
	PaleGreen
	PaleYellow
	WhiteGray
	BrightRed
	PalePurple
	IronGray
	DarkGreen
	White
	LightBlueGray
	DirtBrown
	StoneGray
	WaterBlue
	OakTan
	OffWhite
	Orange
	Magenta
	LightBlue
	Yellow
	Lime
	Pink
	Gray
	LightGray
	Cyan
	Purple
	Blue
	Brown
	Green
	Red
	Black
	Gold
	DiamondBlue
	LapisBlue
	EmeraldGreen
	SpruceBrown
	DarkRed
	TerracottaWhite
	TerracottaOrange
	TerracottaMagenta
	TerracottaLightBlue
	TerracottaYellow
	TerracottaLime
	TerracottaPink
	TerracottaGray
	TerracottaLightGray
	TerracottaCyan
	TerracottaPurple
	TerracottaBlue
	TerracottaBrown
	TerracottaGreen
	TerracottaRed
	TerracottaBlack
	DullRed
	DullPink
	DarkCrimson
	Teal
	DarkAqua
	DarkDullPink
	BrightTeal
	DeepslateGray
	RawIronPink
	LichenGreen
	mapColorCount
)

var mapColorNames = [mapColorCount]string{
	"Clear", "PaleGreen", "PaleYellow", "WhiteGray", "BrightRed", "PalePurple",
	"IronGray", "DarkGreen", "White", "LightBlueGray", "DirtBrown", "StoneGray",
	"WaterBlue", "OakTan", "OffWhite", "Orange", "Magenta", "LightBlue", "Yellow",
	"Lime", "Pink", "Gray", "LightGray", "Cyan", "Purple", "Blue", "Brown", "Green",
	"Red", "Black", "Gold", "DiamondBlue", "LapisBlue", "EmeraldGreen", "SpruceBrown",
	"DarkRed", "TerracottaWhite", "TerracottaOrange", "TerracottaMagenta",
	"TerracottaLightBlue", "TerracottaYellow", "TerracottaLime", "TerracottaPink",
	"TerracottaGray", "TerracottaLightGray", "TerracottaCyan", "TerracottaPurple",
	"TerracottaBlue", "TerracottaBrown", "TerracottaGreen", "TerracottaRed",
	"TerracottaBlack", "DullRed", "DullPink", "DarkCrimson", "Teal", "DarkAqua",
	"DarkDullPink", "BrightTeal", "DeepslateGray", "RawIronPink", "LichenGreen",
}

// 0xRRGGBB
var mapColorRGB = [mapColorCount]uint32{
	Clear:               0,
	PaleGreen:           8368696,
	PaleYellow:          16247203,
	WhiteGray:           13092807,
	BrightRed:           16711680,
	PalePurple:          10526975,
	IronGray:            10987431,
	DarkGreen:           31744,
	White:               16777215,
	LightBlueGray:       10791096,
	DirtBrown:           9923917,
	StoneGray:           7368816,
	WaterBlue:           4210943,
	OakTan:              9402184,
	OffWhite:            16776437,
	Orange:              14188339,
	Magenta:             11685080,
	LightBlue:           6724056,
	Yellow:              15066419,
	Lime:                8375321,
	Pink:                15892389,
	Gray:                5000268,
	LightGray:           10066329,
	Cyan:                5013401,
	Purple:              8339378,
	Blue:                3361970,
	Brown:               6704179,
	Green:               6717235,
	Red:                 10040115,
	Black:               1644825,
	Gold:                16445005,
	DiamondBlue:         6085589,
	LapisBlue:           4882687,
	EmeraldGreen:        55610,
	SpruceBrown:         8476209,
	DarkRed:             7340544,
	TerracottaWhite:     13742497,
	TerracottaOrange:    10441252,
	TerracottaMagenta:   9787244,
	TerracottaLightBlue: 7367818,
	TerracottaYellow:    12223780,
	TerracottaLime:      6780213,
	TerracottaPink:      10505550,
	TerracottaGray:      3746083,
	TerracottaLightGray: 8874850,
	TerracottaCyan:      5725276,
	TerracottaPurple:    8014168,
	TerracottaBlue:      4996700,
	TerracottaBrown:     4993571,
	TerracottaGreen:     5001770,
	TerracottaRed:       9321518,
	TerracottaBlack:     2430480,
	DullRed:             12398641,
	DullPink:            9715553,
	DarkCrimson:         6035741,
	Teal:                1474182,
	DarkAqua:            3837580,
	DarkDullPink:        5647422,
	BrightTeal:          1356933,
	DeepslateGray:       6579300,
	RawIronPink:         14200723,
	LichenGreen:         8365974,
}

var mapColorByName = func() map[string]MapColor {
	m := make(map[string]MapColor, mapColorCount)
	for i, n := range mapColorNames {
		m[n] = MapColor(i)
	}
	return m
}()

func (c MapColor) String() string {
	if c >= mapColorCount {
		return fmt.Sprintf("MapColor(%d)", uint8(c))
	}
	return mapColorNames[c]
}

// RGB returns base color as 0xRRGGBB
func (c MapColor) RGB() uint32 {
	if c >= mapColorCount {
		return 0
	}
	return mapColorRGB[c]
}

func ParseMapColor(s string) (MapColor, error) {
	c, ok := mapColorByName[s]
	if !ok {
		return Clear, fmt.Errorf("unknown map color %q", s)
	}
	return c, nil
}

func (c *MapColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	p, err := ParseMapColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = p
	return nil
}

type Tint uint8

const (
	TintNormal Tint = iota
	TintDark
	TintLight
)

func (t Tint) String() string {
	switch t {
	case TintDark:
		return "Dark"
	case TintLight:
		return "Light"
	default:
		return "Normal"
	}
}

// Multiplier is applied as channel*m/255
func (t Tint) Multiplier() uint16 {
	switch t {
	case TintDark:
		return 180
	case TintLight:
		return 255
	default:
		return 220
	}
}

// Tinted returns final pixel color, Clear is always fully transparent
func (c MapColor) Tinted(t Tint) color.RGBA {
	if c == Clear || c >= mapColorCount {
		return color.RGBA{}
	}
	rgb := mapColorRGB[c]
	m := t.Multiplier()
	ch := func(shift uint) uint8 {
		return uint8(uint16(uint8(rgb>>shift)) * m / 255)
	}
	return color.RGBA{R: ch(16), G: ch(8), B: ch(0), A: 0xff}
}
