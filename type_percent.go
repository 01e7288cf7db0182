package stockfolio

import (
	"fmt"
	"math"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// Round2 returns the percentage rounded to two decimals, the precision
// the API responses use.
func (p Percent) Round2() float64 {
	return math.Round(float64(p)*100) / 100
}
