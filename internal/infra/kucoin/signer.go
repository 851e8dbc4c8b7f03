package kucoin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

// Signer produces KuCoin v1 authentication headers.
// It stores keys as []byte to allow memory wiping.
type Signer struct {
	apiKey    []byte
	secretKey []byte
}

// NewSigner creates a new signer.
// It converts string inputs to []byte for internal safety.
func NewSigner(apiKey, secretKey string) *Signer {
	return &Signer{
		apiKey:    []byte(apiKey),
		secretKey: []byte(secretKey),
	}
}

// Wipe clears the keys from memory.
func (s *Signer) Wipe() {
	if s == nil {
		return
	}
	s.wipeSlice(s.apiKey)
	s.wipeSlice(s.secretKey)
}

func (s *Signer) wipeSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateHeaders creates the headers for a private endpoint call.
// KuCoin signs base64(endpoint + "/" + nonce + "/" + queryString) with
// HMAC-SHA256 over the secret key; queryString must be sorted by key.
func (s *Signer) GenerateHeaders(endpoint, queryString string, nonce int64) map[string]string {
	nonceStr := strconv.FormatInt(nonce, 10)
	signature := s.sign(endpoint, queryString, nonceStr)

	return map[string]string{
		"KC-API-KEY":       string(s.apiKey),
		"KC-API-NONCE":     nonceStr,
		"KC-API-SIGNATURE": signature,
		"Accept":           "application/json",
	}
}

func (s *Signer) sign(endpoint, queryString, nonce string) string {
	strForSign := endpoint + "/" + nonce + "/" + queryString
	payload := base64.StdEncoding.EncodeToString([]byte(strForSign))

	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
