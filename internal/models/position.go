package models

// Position is an offset into the 14 digit account detail.
// The sort code occupies u..z and the account number a..h.
type Position int

const (
	PosU Position = iota
	PosV
	PosW
	PosX
	PosY
	PosZ
	PosA
	PosB
	PosC
	PosD
	PosE
	PosF
	PosG
	PosH
)

// Digit returns the character at the position of the account detail
func (p Position) Digit(detail string) byte {
	return detail[p]
}

// Value returns the numeric value of the digit at the position
func (p Position) Value(detail string) int {
	return int(detail[p] - '0')
}
