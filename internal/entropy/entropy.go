package entropy

import (
	"math"
	"regexp"
	"strings"
)

// Base64Alphabet is the 65-symbol alphabet a token must be drawn from to be
// considered for entropy scoring. Restricting to plausibly-encoded tokens
// avoids false positives on natural-language text.
const Base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

const (
	// MinTokenLength is the length at or below which a token is rejected
	// outright. Shorter strings carry too little entropy signal.
	MinTokenLength = 15

	// Threshold is the Shannon entropy (in bits) above which a token is
	// flagged as a secret candidate. Empirically chosen against the
	// Base64 alphabet.
	Threshold = 4.3
)

// tokenSplit breaks content on runs of whitespace, colons, or equals signs,
// the separators most assignments and config formats use.
var tokenSplit = regexp.MustCompile(`[\s:=]+`)

// Score returns the Shannon entropy of text in bits, computed from empirical
// per-character frequencies. Empty input scores 0.
func Score(text string) float64 {
	if text == "" {
		return 0
	}
	freq := make(map[rune]int)
	total := 0
	for _, r := range text {
		freq[r]++
		total++
	}
	var score float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		score -= p * math.Log2(p)
	}
	return score
}

// IsCandidateSecret reports whether token looks like an encoded secret:
// longer than MinTokenLength, drawn entirely from the Base64 alphabet, and
// scoring above Threshold.
func IsCandidateSecret(token string) bool {
	if len(token) <= MinTokenLength {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(Base64Alphabet, r) {
			return false
		}
	}
	return Score(token) > Threshold
}

// Candidates tokenizes content and returns every distinct secret candidate in
// first-seen order. Duplicate tokens within the same content are reported
// once.
func Candidates(content string) []string {
	seen := make(map[string]struct{})
	var found []string
	for _, token := range tokenSplit.Split(content, -1) {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if IsCandidateSecret(token) {
			found = append(found, token)
		}
	}
	return found
}
