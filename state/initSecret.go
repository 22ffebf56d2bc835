package state

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// JwtSecret holds the verification key for bearer tokens. Token issuance
// belongs to the platform's auth service; the messaging core only verifies,
// so the private half is never loaded here.
type JwtSecret struct {
	Public *rsa.PublicKey
}

func InitSecret(publicKeyPath string) (*JwtSecret, error) {
	if publicKeyPath == "" {
		publicKeyPath = "public.pem"
	}

	pubKeyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, err
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	log.Info().Msg("JWT verification key initialized successfully")
	return &JwtSecret{
		Public: pubKey,
	}, nil
}
