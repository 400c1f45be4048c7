package service

import "fmt"

// FormatRate renders num/den as a percentage with two decimals. A zero
// denominator yields "0.00%".
func FormatRate(num, den int) string {
	if den <= 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(num)/float64(den)*100)
}
