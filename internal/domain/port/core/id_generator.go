package core

// IDGenerator produces external identifiers for transactions
type IDGenerator interface {
	NewID() string
}

// CodeGenerator produces random referral codes of the requested length
// drawn from the given alphabet.
type CodeGenerator interface {
	Generate(alphabet string, length int) (string, error)
}
