package utils

import "math"

// RoundWithTwoDecimalPlace arredonda percentuais e valores monetários
// para duas casas decimais
func RoundWithTwoDecimalPlace(f float64) float64 {
	return math.Round(f*100) / 100
}
