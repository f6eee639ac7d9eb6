package metrics

import "strings"

// norm keeps label values bounded and lowercase; empty becomes "none".
func norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "none"
	}
	return s
}
