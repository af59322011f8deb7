package accountnumber

import (
	"strings"

	"github.com/google/uuid"
)

// Length of a generated account number.
const Length = 18

// Generator produces externally visible account numbers. It is stateless:
// every call draws fresh randomness, so no counter or external coordination
// is involved. Uniqueness is ultimately enforced by the database constraint
// on the accounts table; callers must treat a duplicate as retryable.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns an 18-character uppercase token derived from a random
// v4 UUID (crypto/rand backed), dashes stripped.
func (g *Generator) Generate() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:Length])
}
