package logging

import "strings"

// secretKeyPatterns contains substrings that indicate an attribute key likely
// carries sensitive data. Keys are matched case-insensitively.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes are known credential prefixes that are masked regardless of key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
	"Bearer ",
}

// shouldMask reports whether an attribute key names a sensitive value.
func shouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// containsTokenPrefix reports whether value starts with a known credential prefix.
func containsTokenPrefix(value string) bool {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// maskValue keeps the last four characters of longer values.
func maskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
