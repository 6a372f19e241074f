package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoUserID = errors.New("token payload has no user id")

// UserIDFromToken reads the "id" claim, or "sub" when "id" is missing, from
// the token payload. Only the middle segment is decoded; the header and the
// signature are NOT checked: the value only fills a request field and the
// server remains the authority.
//
// The claim is returned as decoded from JSON (string or float64) so that it
// is sent back in the same shape.
func UserIDFromToken(token string) (any, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("decode token payload: %w", jwt.ErrTokenMalformed)
	}

	payload, err := jwt.NewParser(jwt.WithPaddingAllowed()).DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}
	for _, key := range []string{"id", "sub"} {
		if v, ok := claims[key]; ok && !isZeroClaim(v) {
			return v, nil
		}
	}
	return nil, ErrNoUserID
}

func isZeroClaim(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	default:
		return false
	}
}
