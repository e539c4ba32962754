package scale

import "math"

func clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}

// FromUnit returns a function that scales a number from the unit interval
// ([0,1]) to the interval [rMin,rMax]; if the result falls outside the target
// interval, it is clamped to rMin or rMax.
func FromUnit(rMin, rMax float64) func(t float64) float64 {
	return func(t float64) float64 {
		return clamp(rMin+t*(rMax-rMin), rMin, rMax)
	}
}

// ToUnitClamp returns a function that scales a number from the interval
// [rMin,rMax] to the unit interval ([0,1]), if the result falls outside [0,1],
// it is clamped to 0 or 1.
func ToUnitClamp(rMin, rMax float64) func(m float64) float64 {
	return func(m float64) float64 {
		if rMax == rMin {
			return 0
		}
		return clamp((m-rMin)/(rMax-rMin), 0, 1)
	}
}
