package zalo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks the webhook MAC header against an HMAC-SHA256 of the
// raw request body keyed with the app secret. Comparison is constant time.
func VerifySignature(body []byte, mac, appSecret string) bool {
	if mac == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(appSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(mac)))
}
