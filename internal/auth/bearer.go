package auth

import "strings"

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrUnauthenticated
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrUnauthenticated
	}

	return raw, nil
}
