package colortree

import "fmt"

// RGB is a true color with three 8-bit channels.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color is a color estimate with fractional channels.
type Color struct {
	R, G, B float64
}

// ColorOf converts a true color to an estimate.
func ColorOf(c RGB) Color {
	return Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// RGB rounds the estimate to the nearest true color, clamping each channel
// to [0…255].
func (c Color) RGB() RGB {
	return RGB{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B)}
}

func (c Color) String() string {
	return fmt.Sprintf("(%.2f,%.2f,%.2f)", c.R, c.G, c.B)
}

// Dist2 returns the squared euclidean distance between c and a true color.
func (c Color) Dist2(t RGB) float64 {
	dr := c.R - float64(t.R)
	dg := c.G - float64(t.G)
	db := c.B - float64(t.B)
	return dr*dr + dg*dg + db*db
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// Sum accumulates channel values of true colors.
//
// Sums form a monoid: the zero value is the neutral element and Add is
// associative, so sums may be aggregated in any grouping.
type Sum struct {
	R, G, B uint64
}

// SumOf returns the sum holding a single color.
func SumOf(c RGB) Sum {
	return Sum{R: uint64(c.R), G: uint64(c.G), B: uint64(c.B)}
}

// Add returns the sum of s and other.
func (s Sum) Add(other Sum) Sum {
	return Sum{R: s.R + other.R, G: s.G + other.G, B: s.B + other.B}
}

// Mean divides a sum by a count. n must be greater than 0.
func (s Sum) Mean(n uint64) Color {
	assert(n > 0, "mean of an empty sum")
	d := float64(n)
	return Color{R: float64(s.R) / d, G: float64(s.G) / d, B: float64(s.B) / d}
}
