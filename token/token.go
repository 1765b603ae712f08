package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformed means the token could not be decoded at all.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature means the signature check failed.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired means the token's expiry has passed.
	ErrExpired = errors.New("token expired")
)

type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims are the signed statements carried by a token. Timestamps are unix
// seconds encoded as strings. Resource is empty for session-wide tokens and
// holds a composite resource id for item-scoped ones.
type Claims struct {
	Issuer         string `json:"iss,omitempty"`
	Subject        string `json:"sub"`
	Audience       string `json:"aud,omitempty"`
	Resource       string `json:"res,omitempty"`
	IssuedAt       string `json:"iat"`
	ExpirationTime string `json:"exp"`
}

// Create creates a server-signed compact token.
func Create(claims Claims, key []byte) (string, error) {
	header := Header{
		Type:      "JWT",
		Algorithm: "HS256",
	}
	headerStr, err := json.Marshal(header)
	if err != nil {
		return "", err
	}

	payloadStr, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerStr)
	payloadB64 := base64.RawURLEncoding.EncodeToString(payloadStr)
	target := headerB64 + "." + payloadB64

	signatureB64 := base64.RawURLEncoding.EncodeToString(sign([]byte(target), key))

	return target + "." + signatureB64, nil
}

// Validate checks that a token decodes, carries a valid signature, and has
// not expired.
func Validate(raw string, key []byte) (*Header, *Claims, error) {

	split := strings.Split(raw, ".")
	if len(split) != 3 {
		return nil, nil, ErrMalformed
	}

	var header Header
	headerBytes, err := base64.RawURLEncoding.DecodeString(split[0])
	if err != nil {
		return nil, nil, ErrMalformed
	}
	err = json.Unmarshal(headerBytes, &header)
	if err != nil {
		return nil, nil, ErrMalformed
	}

	if header.Type != "JWT" || header.Algorithm != "HS256" {
		return nil, nil, ErrMalformed
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(split[1])
	if err != nil {
		return nil, nil, ErrMalformed
	}

	var claims Claims
	err = json.Unmarshal(payloadBytes, &claims)
	if err != nil {
		return nil, nil, ErrMalformed
	}

	signatureBytes, err := base64.RawURLEncoding.DecodeString(split[2])
	if err != nil {
		return nil, nil, ErrMalformed
	}

	expected := sign([]byte(split[0]+"."+split[1]), key)
	if !hmac.Equal(signatureBytes, expected) {
		return nil, nil, ErrInvalidSignature
	}

	// Expiry is checked after the signature so a forged exp cannot shadow
	// a signature failure.
	if claims.ExpirationTime != "" {
		exp, err := strconv.ParseInt(claims.ExpirationTime, 10, 64)
		if err != nil {
			return nil, nil, ErrMalformed
		}
		now := time.Now().Unix()
		if exp < now {
			return nil, nil, ErrExpired
		}
	}

	return &header, &claims, nil
}

func sign(target []byte, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(target)
	return mac.Sum(nil)
}
