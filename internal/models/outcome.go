package models

// Outcome is the decision an exception rule may take on its own.
// OutcomeNone means the standard modulus comparison has to decide.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeValid
	OutcomeInvalid
)

func Decide(valid bool) Outcome {
	if valid {
		return OutcomeValid
	}
	return OutcomeInvalid
}

func (o Outcome) Decided() bool {
	return o != OutcomeNone
}

func (o Outcome) Valid() bool {
	return o == OutcomeValid
}

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "none"
	}
}
