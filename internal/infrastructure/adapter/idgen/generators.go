package idgen

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// UUIDGenerator issues random UUIDv4 transaction identifiers
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUIDGenerator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

var _ coreport.IDGenerator = (*UUIDGenerator)(nil)

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// RandomCodeGenerator draws referral codes from crypto/rand
type RandomCodeGenerator struct{}

// NewRandomCodeGenerator creates a RandomCodeGenerator
func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

var _ coreport.CodeGenerator = (*RandomCodeGenerator)(nil)

// Generate picks each character uniformly from alphabet
func (RandomCodeGenerator) Generate(alphabet string, length int) (string, error) {
	if alphabet == "" || length <= 0 {
		return "", errors.New("alphabet and length must be non-empty")
	}

	limit := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
