package service

import (
	"strings"
	"unicode/utf8"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

// ThemeValidator normalizes user themes and rejects blocked words
type ThemeValidator struct {
	maxLength    int
	blockedWords []string
}

// NewThemeValidator creates a validator; maxLength <= 0 disables truncation
func NewThemeValidator(maxLength int, blockedWords []string) *ThemeValidator {
	words := make([]string, 0, len(blockedWords))
	for _, w := range blockedWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return &ThemeValidator{maxLength: maxLength, blockedWords: words}
}

// Normalize trims and truncates the theme, then checks it against the blocklist
func (v *ThemeValidator) Normalize(theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return "", domain.ErrEmptyTheme
	}
	if v.maxLength > 0 {
		theme = strings.TrimSpace(truncateTheme(theme, v.maxLength))
	}

	lower := strings.ToLower(theme)
	for _, w := range v.blockedWords {
		if strings.Contains(lower, w) {
			return "", domain.ErrThemeNotAllowed
		}
	}
	return theme, nil
}

// truncateTheme safely truncates a string to the specified length while preserving UTF-8 characters
func truncateTheme(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}

	var size, n int
	for i := 0; i < length && n < len(s); i++ {
		_, size = utf8.DecodeRuneInString(s[n:])
		n += size
	}

	return s[:n]
}
