package modulus

import (
	"github.com/nkiryanov/modcheck/internal/models"
)

// WeightedSum multiplies every digit of the account detail by its weight.
// Double alternate checks add the digits of every product instead of the product itself.
func WeightedSum(checkType models.CheckType, weights models.Weights, detail string) int {
	total := 0
	for i, w := range weights {
		product := int(detail[i]-'0') * w
		if checkType == models.CheckDblAl {
			total += product/10 + product%10
			continue
		}
		total += product
	}
	return total
}
