package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/phishscan/internal/model"
)

// tldShapePattern matches a dot, 2-6 lowercase letters, then '/' or the end.
// This is a lexical shape check, not a lookup against a list of real TLDs.
var tldShapePattern = regexp.MustCompile(`\.[a-z]{2,6}(/|$)`)

// Features are lexical facts about the normalized URL.
type Features struct {
	// HasHTTPS reports whether the URL starts with "https://".
	HasHTTPS bool

	// HasWWW reports whether the URL contains "www.".
	HasWWW bool

	// HasProperTLD reports whether the part after the first "//" contains
	// a TLD-shaped suffix.
	HasProperTLD bool

	// Length is the number of characters in the normalized URL.
	Length int
}

// ExtractFeatures computes the structural features of a normalized URL.
// It works on the normalized text, not on the parsed form, so an inferred
// scheme never counts as HTTPS.
func ExtractFeatures(normalized string) Features {
	afterScheme := normalized
	if i := strings.Index(afterScheme, "//"); i >= 0 {
		afterScheme = afterScheme[i+2:]
	}

	return Features{
		HasHTTPS:     strings.HasPrefix(normalized, "https://"),
		HasWWW:       strings.Contains(normalized, "www."),
		HasProperTLD: tldShapePattern.MatchString(afterScheme),
		Length:       utf8.RuneCountInString(normalized),
	}
}

// Specs converts the features to their report form.
func (f Features) Specs() model.Specs {
	return model.Specs{
		Length:   f.Length,
		HasHTTPS: model.Presence(f.HasHTTPS),
		HasWWW:   model.Presence(f.HasWWW),
		HasTLD:   model.TLDShape(f.HasProperTLD),
	}
}
