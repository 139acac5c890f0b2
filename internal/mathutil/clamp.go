package mathutil

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToByte maps a normalized value to 0..255 with rounding.
func ToByte(v float64) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}

// Level quantizes a normalized value to an integer level in 0..255.
func Level(v float64) int {
	return int(ToByte(v))
}
