package analyzer

import (
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/phishscan/internal/model"
)

// defaultScheme is prefixed to inputs without "://" so that the authority
// can be extracted. It is never treated as evidence that the input used HTTPS.
const defaultScheme = "https://"

// Authority parse failures. They are the Cause of a *model.AnalysisError.
var (
	errUnbalancedBrackets = errors.New("unbalanced brackets in authority")
	errBracketedHost      = errors.New("invalid bracketed host")
	errNormalizedNetloc   = errors.New("authority contains characters that normalize to a delimiter")
)

// ipvFuturePattern matches an RFC 3986 IPvFuture literal such as "v1.fe80::a".
var ipvFuturePattern = regexp.MustCompile(`^v[0-9a-f]+\..+$`)

// Target is a URL prepared for scoring.
type Target struct {
	// Normalized is the input trimmed and lower-cased.
	// Lexical rules (keywords, '@', specs) read this form.
	Normalized string

	// Authority is the userinfo, host and port of the URL
	// (what some libraries call "netloc"). It may be empty.
	Authority string
}

// Normalize trims and lower-cases raw, then extracts the authority.
//
// Only the authority is inspected for structure: paths, queries, ports and
// characters a strict parser would refuse elsewhere are scored, not rejected.
// It returns a *model.AnalysisError when the authority itself is malformed.
func Normalize(raw string) (Target, error) {
	// A Caser is stateful, so one is created per call.
	normalized := cases.Lower(language.Und).String(strings.TrimSpace(raw))

	withScheme := normalized
	if !strings.Contains(withScheme, "://") {
		withScheme = defaultScheme + withScheme
	}

	authority := authorityOf(withScheme)
	if err := checkAuthority(authority); err != nil {
		return Target{}, model.NewAnalysisError(normalized, err)
	}

	return Target{
		Normalized: normalized,
		Authority:  authority,
	}, nil
}

// authorityOf returns the authority text of s: what follows "scheme://"
// up to the first '/', '?' or '#'. Tabs and line breaks are dropped first.
// Without a valid scheme followed by "//" there is no authority.
func authorityOf(s string) string {
	s = strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(s)

	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || !isScheme(scheme) {
		rest = s
	}

	rest, ok = strings.CutPrefix(rest, "//")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// isScheme reports whether s is a URL scheme: an ASCII letter followed by
// letters, digits, '+', '-' or '.'.
func isScheme(s string) bool {
	if s == "" || !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !('0' <= c && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// checkAuthority rejects authorities no URL parser could split into host
// and port: unbalanced brackets, bracketed hosts that are not IPv6 or
// IPvFuture literals, and non-ASCII text whose NFKC form smuggles in a
// delimiter.
func checkAuthority(authority string) error {
	open := strings.Contains(authority, "[")
	closed := strings.Contains(authority, "]")
	if open != closed {
		return errUnbalancedBrackets
	}
	if open {
		_, after, _ := strings.Cut(authority, "[")
		host, _, _ := strings.Cut(after, "]")
		if err := checkBracketedHost(host); err != nil {
			return err
		}
	}
	return checkNormalizedAuthority(authority)
}

// checkBracketedHost accepts IPv6 addresses (with an optional zone) and
// IPvFuture literals.
func checkBracketedHost(host string) error {
	if strings.HasPrefix(host, "v") {
		if !ipvFuturePattern.MatchString(host) {
			return fmt.Errorf("%w: %q", errBracketedHost, host)
		}
		return nil
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %w", errBracketedHost, err)
	}
	if !addr.Is6() {
		return fmt.Errorf("%w: %q is not an IPv6 address", errBracketedHost, host)
	}
	return nil
}

// checkNormalizedAuthority rejects non-ASCII authorities whose compatibility
// normalization introduces '/', '?', '#', '@' or ':'.
func checkNormalizedAuthority(authority string) error {
	if isASCII(authority) {
		return nil
	}
	stripped := strings.NewReplacer("@", "", ":", "", "#", "", "?", "").Replace(authority)
	folded := norm.NFKC.String(stripped)
	if folded == stripped {
		return nil
	}
	if strings.ContainsAny(folded, "/?#@:") {
		return fmt.Errorf("%w: %q", errNormalizedNetloc, authority)
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
