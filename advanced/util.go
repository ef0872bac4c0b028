package advanced

import "math"

// Root and minimiser iteration budget shared by every solver in the package.
const MaxIterations = 200

// Wrap a phase into [0, 1).
func NormalizePhase(phase float64) float64 {
	phase = math.Mod(phase, 1)
	if phase < 0 {
		phase++
	}
	// math.Mod(-tiny, 1) + 1 rounds to exactly 1
	if phase >= 1 {
		phase = 0
	}
	return phase
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
