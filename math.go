package bayspar

import (
	"math"
)

func degToRad(angle float64) float64 {
	return angle * math.Pi / 180
}

func pow2(x float64) float64 {
	return x * x
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
