package exception

import (
	"github.com/nkiryanov/modcheck/internal/models"
)

var (
	exception2Weights       = models.Weights{0, 0, 1, 2, 5, 3, 6, 4, 8, 7, 10, 9, 3, 1}
	exception2WeightsGNine  = models.Weights{0, 0, 0, 0, 0, 0, 0, 0, 8, 7, 10, 9, 3, 1}
	exception10AccountHeads = []string{"09", "99"}
)

// AdjustWeights returns the weights to use for the account detail.
// The entry's weights are copied, never modified.
func AdjustWeights(entry models.WeightEntry, detail string) models.Weights {
	weights := entry.Weights

	if zeroesSortCodeWeights(entry.Exception, detail) && models.PosG.Digit(detail) == '9' {
		for i := models.PosU; i <= models.PosB; i++ {
			weights[i] = 0
		}
	}

	if entry.Exception == 2 {
		a, g := models.PosA.Digit(detail), models.PosG.Digit(detail)
		switch {
		case a != '0' && g != '9':
			weights = exception2Weights
		case a != '0' && g == '9':
			weights = exception2WeightsGNine
		}
	}

	return weights
}

func zeroesSortCodeWeights(exc models.Exception, detail string) bool {
	switch exc {
	case 7:
		return true
	case 10:
		ab := detail[models.PosA : models.PosB+1]
		for _, head := range exception10AccountHeads {
			if ab == head {
				return true
			}
		}
		return false
	default:
		return false
	}
}
