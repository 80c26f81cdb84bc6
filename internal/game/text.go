package game

import (
	"regexp"
	"strings"
)

var bannedWordsStrong = map[string]bool{
	"asshole": true,
	"bastard": true,
	"bitch":   true,
	"fuck":    true,
	"shit":    true,
}

// The strict profile also rejects mild swears.
var bannedWordsStrict = func() map[string]bool {
	m := map[string]bool{
		"crap": true,
		"damn": true,
		"darn": true,
		"hell": true,
	}
	for w := range bannedWordsStrong {
		m[w] = true
	}
	return m
}()

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// CleanText collapses all whitespace runs to single spaces, trims, and
// truncates to limit runes.
func CleanText(text string, limit int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) > limit {
		cleaned = strings.TrimSpace(string(runes[:limit]))
	}
	return cleaned
}

// ContainsBannedWord screens text against the configured profanity profile.
// Matching is per alphabetic word, case-insensitive; "off" disables the
// screen entirely.
func ContainsBannedWord(text, profile string) bool {
	if profile == "off" {
		return false
	}
	banned := bannedWordsStrong
	if profile == "strict" {
		banned = bannedWordsStrict
	}
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if banned[word] {
			return true
		}
	}
	return false
}

// NormalizeAnswer canonicalizes a free-text answer for uniqueness grouping:
// lowercase, collapsed whitespace, and one leading article stripped so
// "The Moon" and "moon" count as the same answer.
func NormalizeAnswer(text string) string {
	cleaned := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(cleaned, article) {
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, article))
			break
		}
	}
	return cleaned
}
