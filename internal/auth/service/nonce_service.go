package service

import (
	"crypto/rand"
	"encoding/hex"

	apperrors "github.com/allisson/projecthub/internal/errors"
)

// rotationNonceSize is the entropy of a rotation nonce in bytes.
const rotationNonceSize = 32

// nonceService implements NonceService with crypto/rand.
type nonceService struct{}

// Generate returns 32 random bytes hex encoded.
func (n *nonceService) Generate() (string, error) {
	buf := make([]byte, rotationNonceSize)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate rotation nonce")
	}
	return hex.EncodeToString(buf), nil
}

// NewNonceService creates a new NonceService.
func NewNonceService() NonceService {
	return &nonceService{}
}
