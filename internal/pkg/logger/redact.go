package logger

import "strings"

// RedactEmail masks an address so logs never carry a full customer email.
// "alice.w@example.com" becomes "al***@example.com"; local parts of two
// characters or fewer are masked entirely.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	local := parts[0]
	if len(local) > 2 {
		return local[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}
