package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
)

// RunGenerateKeys generates two RSA keypairs, one for access token signing
// and one for refresh token signing, and prints them as base64-encoded
// environment variables ready for a .env file.
//
// Separate keypairs keep a leaked access signing key from forging refresh
// tokens.
func RunGenerateKeys(writer io.Writer, bits int) error {
	if bits != 2048 && bits != 4096 {
		return fmt.Errorf("invalid key size: %d (valid options: 2048, 4096)", bits)
	}

	accessPrivate, accessPublic, err := generateKeyPairPEM(bits)
	if err != nil {
		return fmt.Errorf("failed to generate access token keypair: %w", err)
	}

	refreshPrivate, refreshPublic, err := generateKeyPairPEM(bits)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token keypair: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Token Signing Keys")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "ACCESS_TOKEN_PRIVATE_KEY_BASE64=\"%s\"\n", encode(accessPrivate))
	_, _ = fmt.Fprintf(writer, "ACCESS_TOKEN_PUBLIC_KEY_BASE64=\"%s\"\n", encode(accessPublic))
	_, _ = fmt.Fprintf(writer, "REFRESH_TOKEN_PRIVATE_KEY_BASE64=\"%s\"\n", encode(refreshPrivate))
	_, _ = fmt.Fprintf(writer, "REFRESH_TOKEN_PUBLIC_KEY_BASE64=\"%s\"\n", encode(refreshPublic))

	return nil
}

// generateKeyPairPEM generates one RSA keypair and returns the PEM-encoded
// private and public keys.
func generateKeyPairPEM(bits int) ([]byte, []byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	return privatePEM, publicPEM, nil
}

func encode(pemBytes []byte) string {
	return base64.StdEncoding.EncodeToString(pemBytes)
}
