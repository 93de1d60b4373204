package transform

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWT returns a transform that parses and verifies an HMAC-signed token
// and resolves it to its claims as a map[string]any. Services handed a
// signed bootstrap token through the environment can verify it at
// configuration time rather than on first use. Expiry and not-before
// claims are validated during parsing; non-HMAC signing methods are
// rejected.
func JWT(key []byte) func(string) (any, error) {
	return func(raw string) (any, error) {
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return key, nil
		})
		if err != nil {
			return nil, err
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
		}

		out := make(map[string]any, len(claims))
		for k, v := range claims {
			out[k] = v
		}
		return out, nil
	}
}
