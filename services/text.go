package services

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength bounds question and choice texts, in characters.
const MaxTextLength = 200

// cleanText only trims. Texts are stored as submitted; escaping is left to
// whatever renders them.
func cleanText(s string) string {
	return strings.TrimSpace(s)
}

func requireText(field, raw string) (string, error) {
	text := cleanText(raw)
	if text == "" {
		return "", invalid(field, "this field is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return "", invalid(field, "ensure this value has at most %d characters (it has %d)", MaxTextLength, n)
	}
	return text, nil
}

// cleanChoices drops blank entries and enforces the length and count limits.
func cleanChoices(raw []string, maxChoices int) ([]string, error) {
	texts := make([]string, 0, len(raw))
	for _, r := range raw {
		text := cleanText(r)
		if text == "" {
			continue
		}
		if n := utf8.RuneCountInString(text); n > MaxTextLength {
			return nil, invalid("choices", "ensure each choice has at most %d characters (one has %d)", MaxTextLength, n)
		}
		texts = append(texts, text)
	}
	if maxChoices > 0 && len(texts) > maxChoices {
		return nil, invalid("choices", "please submit at most %d choices", maxChoices)
	}
	return texts, nil
}
