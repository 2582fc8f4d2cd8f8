package common

// Size is a width/height pair in world pixels.
type Size struct {
	Width  float64
	Height float64
}
