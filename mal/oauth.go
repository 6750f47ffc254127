package mal

import (
	"crypto/rand"
	"encoding/base64"
	"net/url"

	"github.com/malbuddy/malbuddy/constant"
)

// verifierLength is the longest code verifier the authorization server accepts.
const verifierLength = 128

// GenerateCodeVerifier returns a random 128 character url-safe PKCE verifier.
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, 96)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:verifierLength], nil
}

// AuthURL builds the authorization page address. The challenge is the verifier itself (plain method).
func AuthURL(base, clientID, verifier string) string {
	if base == "" {
		base = constant.OAuthBaseURL
	}

	v := url.Values{}
	v.Set("response_type", "code")
	v.Set("client_id", clientID)
	v.Set("code_challenge", verifier)
	v.Set("code_challenge_method", "plain")

	return base + "/authorize?" + v.Encode()
}
