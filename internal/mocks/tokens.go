package mocks

import (
	"encoding/base64"
	"encoding/json"
)

// TestToken builds a syntactically valid three-segment token carrying the
// given authorities claim. The signature segment is garbage; client-side
// decoding never verifies it.
func TestToken(authorities ...string) string {
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, _ := json.Marshal(map[string]any{"authorities": authorities, "sub": "9876543210"})

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

// DefaultTestToken is a USER-role token for tests that don't care about claims.
var DefaultTestToken = TestToken("USER")
