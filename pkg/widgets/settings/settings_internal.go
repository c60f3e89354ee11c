package settings

import "fyne.io/fyne/v2"

// Frequency returns the saved angular frequency.
func Frequency(fallback float64) float64 {
	return fyne.CurrentApp().Preferences().FloatWithFallback(prefsFrequency, fallback)
}

func SaveFrequency(v float64) {
	fyne.CurrentApp().Preferences().SetFloat(prefsFrequency, v)
}

// Phase returns the saved phase of E_y.
func Phase(fallback float64) float64 {
	return fyne.CurrentApp().Preferences().FloatWithFallback(prefsPhase, fallback)
}

func SavePhase(v float64) {
	fyne.CurrentApp().Preferences().SetFloat(prefsPhase, v)
}
