package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var (
	Desktop = Viewport{Width: 1366, Height: 768}
	Mobile  = Viewport{Width: 390, Height: 844}
)

// String formats v as "WIDTHxHEIGHT".
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// IsZero reports whether v is unset.
func (v Viewport) IsZero() bool { return v.Width == 0 && v.Height == 0 }

// MarshalText implements encoding.TextMarshaler.
func (v Viewport) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText parses "1366x768".
func (v *Viewport) UnmarshalText(b []byte) error {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(string(b))), "x")
	if !ok {
		return fmt.Errorf("viewport %q: want WIDTHxHEIGHT", b)
	}
	wi, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || wi <= 0 {
		return fmt.Errorf("viewport %q: bad width", b)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hi <= 0 {
		return fmt.Errorf("viewport %q: bad height", b)
	}
	v.Width, v.Height = wi, hi
	return nil
}

// Rect is an element bounding box as reported by getBoundingClientRect.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports a box with no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersects reports whether r and o share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
