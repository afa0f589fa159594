package assistant

import (
	"regexp"
	"strings"
)

var (
	searchTerm = regexp.MustCompile(`\[SEARCH:\s*"(.*?)"\]`)
	anyMarker  = regexp.MustCompile(`\[SEARCH:.*?\]`)
)

// ExtractSearch pulls the assistant's search directive out of a reply.
// The term comes from the first [SEARCH: "term"] marker; the returned
// text has every marker stripped and surrounding whitespace trimmed.
// This parsing drives an automatic search side effect, so it has to be
// exact: no marker means no search, not a guessed term.
func ExtractSearch(reply string) (clean, term string, ok bool) {
	clean = strings.TrimSpace(anyMarker.ReplaceAllString(reply, ""))

	m := searchTerm.FindStringSubmatch(reply)
	if m == nil {
		return clean, "", false
	}
	return clean, m[1], true
}
