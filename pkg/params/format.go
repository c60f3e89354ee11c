package params

import (
	"fmt"
	"math"
	"strconv"
)

const maxDenominator = 12

func FormatAmplitude(a float64) string {
	return fmt.Sprintf("A = %.2f", a)
}

// FormatFrequency renders an angular frequency for display.
func FormatFrequency(f float64) string {
	return fmt.Sprintf("ω = %.2f rad/s", f)
}

// FormatPhase renders a phase difference as a fraction of π.
func FormatPhase(ph float64) string {
	return "Δφ = " + PiFraction(ph)
}

// PiFraction writes x as p/q·π with the smallest q up to 12 that matches
// within 1e-6, or as a decimal multiple of π otherwise.
func PiFraction(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	r := x / math.Pi
	for q := 1; q <= maxDenominator; q++ {
		p := math.Round(r * float64(q))
		if math.Abs(r*float64(q)-p) > 1e-6*float64(q) {
			continue
		}
		return piString(int(p), q)
	}
	return strconv.FormatFloat(r, 'f', 2, 64) + "π"
}

func piString(p, q int) string {
	if p == 0 {
		return "0"
	}
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	num := "π"
	if p != 1 {
		num = strconv.Itoa(p) + "π"
	}
	if q == 1 {
		return sign + num
	}
	return sign + num + "/" + strconv.Itoa(q)
}
