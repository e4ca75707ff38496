package entities

import (
	"strings"
	"time"
)

// AdminIdentity maps a device key to the staff member using the device.
//
// Storage model (DynamoDB):
//   - PK: key
type AdminIdentity struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	FullToken string    `json:"full_token"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityKeyFromToken derives the stable device key from a push token.
// "ExponentPushToken[abc]" yields "abc"; tokens without brackets are used as is.
func IdentityKeyFromToken(token string) string {
	token = strings.TrimSpace(token)
	start := strings.Index(token, "[")
	if start < 0 {
		return token
	}
	end := strings.Index(token[start+1:], "]")
	if end < 0 {
		return token
	}
	return strings.TrimSpace(token[start+1 : start+1+end])
}
