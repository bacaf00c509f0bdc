package models

// CheckReport describes how one weight entry judged the account
type CheckReport struct {
	CheckType     CheckType
	Exception     Exception
	AccountDetail string
	Valid         bool

	// Set when an exception rule decided the result before the modulus comparison
	Decided bool
}

type CheckResult struct {
	Valid bool

	// False when no weight entry covers the sort code. Such accounts can't be checked and are treated as valid
	Checked bool

	Checks []CheckReport
}
