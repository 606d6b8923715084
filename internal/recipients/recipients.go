// Package recipients parses the comma-separated recipient list of a share request
package recipients

import (
	"regexp"
	"strings"

	"github.com/ethanbaker/minutes/internal/errors"
)

// whitespace is the ECMAScript \s set. RE2's \s only covers ASCII, so the
// class below spells the set out
const whitespace = "\t\n\v\f\r \u00a0\u1680" +
	"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a" +
	"\u2028\u2029\u202f\u205f\u3000\ufeff"

const notSpaceOrAt = `[^\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]`

// addressPattern is a local@domain.tld shape check, not RFC 5322 validation
var addressPattern = regexp.MustCompile(`(?i)^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// Valid reports whether a single trimmed address has the accepted shape
func Valid(address string) bool {
	return addressPattern.MatchString(address)
}

// Parse splits raw on commas and trims each token. It stops at the first
// malformed token and names it in the error. Order and duplicates are kept
func Parse(raw string) ([]string, error) {
	tokens := strings.Split(raw, ",")
	list := make([]string, 0, len(tokens))

	for _, token := range tokens {
		address := strings.Trim(token, whitespace)
		if !Valid(address) {
			return nil, errors.NewInvalidRecipient(address)
		}
		list = append(list, address)
	}

	return list, nil
}
