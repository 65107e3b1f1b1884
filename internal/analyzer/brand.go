package analyzer

import "strings"

// brandRule describes how a brand name is spotted inside an authority.
type brandRule struct {
	// name is the brand as it appears in its official domain (<name>.com).
	name string

	// letters holds, per position, the characters accepted at that position.
	// The authority matches when it contains the positions in order, with any
	// characters in between.
	letters []string
}

// brandRules is evaluated in order and stops at the first matching brand.
// paypal accepts '1' and 'i' as look-alikes for its final 'l' only.
var brandRules = []brandRule{
	{name: "facebook", letters: spell("facebook")},
	{name: "paypal", letters: append(spell("paypa"), "l1i")},
	{name: "google", letters: spell("google")},
	{name: "amazon", letters: spell("amazon")},
}

// spell splits a word into single-letter positions.
func spell(word string) []string {
	word = strings.ToLower(word)
	letters := make([]string, 0, len(word))
	for _, r := range word {
		letters = append(letters, string(r))
	}
	return letters
}

// matches reports whether s contains the rule's letters as an ordered
// subsequence.
func (b brandRule) matches(s string) bool {
	pos := 0
	for _, r := range s {
		if pos == len(b.letters) {
			break
		}
		if strings.ContainsRune(b.letters[pos], r) {
			pos++
		}
	}
	return pos == len(b.letters)
}

// isOfficial reports whether authority is the brand's own .com domain or a
// subdomain of it.
func (b brandRule) isOfficial(authority string) bool {
	official := b.name + ".com"
	return authority == official || strings.HasSuffix(authority, "."+official)
}

// detectBrand returns the first brand whose pattern occurs in authority.
// ok is false when no brand pattern occurs.
func detectBrand(authority string) (rule brandRule, ok bool) {
	for _, b := range brandRules {
		if b.matches(authority) {
			return b, true
		}
	}
	return brandRule{}, false
}
