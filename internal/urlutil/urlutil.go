package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// IsValidURL reports whether raw is a well-formed http or https URL whose
// hostname contains a dot. Bare hostnames like "localhost" are rejected.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !strings.Contains(u.Hostname(), ".") {
		return false
	}
	return true
}

// WithQuery returns raw with its query string replaced by the encoded params.
// Values are stringified; keys are encoded in sorted order so the output is
// deterministic for a given parameter set.
func WithQuery(raw string, params map[string]interface{}) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	for key, value := range params {
		q.Set(key, fmt.Sprint(value))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
