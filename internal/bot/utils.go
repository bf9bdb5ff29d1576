package bot

import (
	"strconv"
	"strings"
)

// ParseDigits accepts a non-empty string made only of decimal digits, ASCII
// or Arabic-Indic, and returns its value. Values that overflow int fail.
func ParseDigits(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			return 0, false
		}
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}

	return n, true
}

func displayName(s Sender, fallback string) string {
	if name := strings.TrimSpace(s.FullName); name != "" {
		return name
	}

	return fallback
}
