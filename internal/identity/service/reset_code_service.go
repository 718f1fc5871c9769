package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/projecthub/internal/errors"
)

// resetCodeService implements ResetCodeService using bcrypt for code hashing.
// Codes are 6 uppercase hex characters: short enough to type from an email,
// random enough for a 5-minute single-use window.
type resetCodeService struct {
	cost int
}

// GenerateCode creates a new random 6-character uppercase code and its
// bcrypt hash.
func (r *resetCodeService) GenerateCode() (string, string, error) {
	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate reset code")
	}

	plainCode := strings.ToUpper(hex.EncodeToString(randomBytes))

	hash, err := bcrypt.GenerateFromPassword([]byte(plainCode), r.cost)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to hash reset code")
	}

	return plainCode, string(hash), nil
}

// CompareCode compares a plain code against its stored bcrypt hash.
func (r *resetCodeService) CompareCode(plainCode string, codeHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(plainCode)) == nil
}

// NewResetCodeService creates a new ResetCodeService instance using bcrypt.
func NewResetCodeService() ResetCodeService {
	return &resetCodeService{cost: bcrypt.DefaultCost}
}
