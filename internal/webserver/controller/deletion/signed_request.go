package deletion

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const signatureAlgorithm = "HMAC-SHA256"

var ErrInvalidSignedRequest = errors.New("invalid signed request")

type signedPayload struct {
	Algorithm string `json:"algorithm"`
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"issued_at"`
}

// parseSignedRequest verifies a "<signature>.<payload>" pair, both base64url
// encoded, where the signature is the HMAC-SHA256 of the encoded payload
func parseSignedRequest(signedRequest, secret string) (signedPayload, error) {
	var payload signedPayload

	encodedSig, encodedPayload, found := strings.Cut(signedRequest, ".")
	if !found || encodedSig == "" || encodedPayload == "" {
		return payload, ErrInvalidSignedRequest
	}

	sig, err := decodeSegment(encodedSig)
	if err != nil {
		return payload, ErrInvalidSignedRequest
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedPayload))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return payload, ErrInvalidSignedRequest
	}

	raw, err := decodeSegment(encodedPayload)
	if err != nil {
		return payload, ErrInvalidSignedRequest
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, ErrInvalidSignedRequest
	}
	if !strings.EqualFold(payload.Algorithm, signatureAlgorithm) || payload.UserID == "" {
		return payload, ErrInvalidSignedRequest
	}
	return payload, nil
}

func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
}
