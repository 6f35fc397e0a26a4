package domain

import (
	"fmt"
	"math"
)

// MsToKmh converts a wind speed from metres per second to kilometres per hour.
func MsToKmh(ms float64) float64 { return ms * 3.6 }

// CToF converts a temperature from Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// roundInt rounds to the nearest integer, halves away from zero.
func roundInt(v float64) int { return int(math.Round(v)) }

// FormatTemp renders a stored Celsius value for display in the requested
// unit ("C" or "F"). Conversion happens here and only here; the stored model
// stays Celsius.
func FormatTemp(celsius float64, unit string) string {
	if unit == "F" {
		return fmt.Sprintf("%d°F", roundInt(CToF(celsius)))
	}
	return fmt.Sprintf("%d°C", roundInt(celsius))
}
