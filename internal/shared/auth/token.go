package auth

import "strings"

// ExtractBearerTokenFromHeader extracts the JWT token from an Authorization
// header value, handling the "Bearer " prefix in any casing.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	const bearerPrefix = "bearer "
	if strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}
