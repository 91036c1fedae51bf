package normalize

import (
	"regexp"
	"strings"
)

var (
	slugStripRegex      = regexp.MustCompile(`[^a-z0-9` + spaceClass + `-]`)
	slugWhitespaceRegex = regexp.MustCompile(`[` + spaceClass + `]+`)
	slugHyphenRegex     = regexp.MustCompile(`-+`)
)

// ToSlug derives a URL-safe slug from a title: lowercase, characters outside
// [a-z0-9], whitespace and hyphen removed, whitespace runs and hyphen runs
// collapsed to a single hyphen. ToSlug(ToSlug(s)) == ToSlug(s).
func ToSlug(title string) string {
	s := strings.ToLower(title)
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugWhitespaceRegex.ReplaceAllString(s, "-")
	return slugHyphenRegex.ReplaceAllString(s, "-")
}
