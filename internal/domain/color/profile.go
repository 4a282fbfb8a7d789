// Package color classifies wardrobe colors and scores how well they combine.
//
// Every function is pure and safe for concurrent use. Hex strings that fail
// to parse are analyzed as a mid gray so that a bad value never aborts
// outfit generation.
package color

// Temperature is the warm/cool reading of a hue.
type Temperature string

const (
	Warm        Temperature = "warm"
	Cool        Temperature = "cool"
	NeutralTemp Temperature = "neutral"
)

// Intensity describes how saturated a color reads.
type Intensity string

const (
	Vibrant        Intensity = "vibrant"
	Muted          Intensity = "muted"
	NeutralIntense Intensity = "neutral"
)

// Category is the fashion family of a color.
type Category string

const (
	Neutral Category = "neutral"
	Earth   Category = "earth"
	Jewel   Category = "jewel"
	Pastel  Category = "pastel"
	Bright  Category = "bright"
	Dark    Category = "dark"
)

// Profile is the derived classification of one color.
type Profile struct {
	Hex         string      `json:"hex"`
	HSL         HSL         `json:"hsl"`
	Temperature Temperature `json:"temperature"`
	Intensity   Intensity   `json:"intensity"`
	Category    Category    `json:"category"`
	Valid       bool        `json:"valid"`
}

var fallbackHSL = HSL{H: 0, S: 0, L: 50}

// Analyze classifies hex.
func Analyze(hex string) Profile {
	hsl := fallbackHSL
	rgb, err := ParseHex(hex)
	if err == nil {
		hsl = rgb.HSL()
	}
	return Profile{
		Hex:         hex,
		HSL:         hsl,
		Temperature: temperatureOf(hsl),
		Intensity:   intensityOf(hsl),
		Category:    categoryOf(hsl),
		Valid:       err == nil,
	}
}

func temperatureOf(c HSL) Temperature {
	if c.S < 15 {
		return NeutralTemp
	}
	if c.H > 60 && c.H <= 300 {
		return Cool
	}
	return Warm
}

func intensityOf(c HSL) Intensity {
	switch {
	case c.S > 70 && c.L > 30 && c.L < 80:
		return Vibrant
	case c.S < 30 || c.L > 85 || c.L < 20:
		return Muted
	default:
		return NeutralIntense
	}
}

func categoryOf(c HSL) Category {
	switch {
	case c.S < 15:
		return Neutral
	case c.L > 80:
		return Pastel
	case c.L < 25:
		return Dark
	case c.S > 70 && c.L > 40 && c.L < 70:
		return Jewel
	case c.S > 80 && c.L > 50:
		return Bright
	case c.S < 50 && c.L > 30 && c.L < 70:
		return Earth
	default:
		return Neutral
	}
}
