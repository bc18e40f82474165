package post

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/techblog/core/internal/pkg/apperr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparatorRun = regexp.MustCompile(`[\s-]+`)
)

// stripMarks decomposes to NFD and removes combining marks, so "Café" → "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSlug turns a title into its base slug form. May return "" when the
// title contains no usable characters.
func normalizeSlug(title string) string {
	s, _, err := transform.String(stripMarks, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(s)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparatorRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugExistsFunc reports whether a slug is already taken.
type SlugExistsFunc func(slug string) (bool, error)

// SlugAllocator derives a unique URL slug from a post title. It has no side
// effects beyond existence probes against the post store.
type SlugAllocator struct {
	exists SlugExistsFunc
}

func NewSlugAllocator(exists SlugExistsFunc) *SlugAllocator {
	return &SlugAllocator{exists: exists}
}

// Allocate normalizes the title and probes "-1", "-2", … suffixes until an
// unused slug is found. A title that normalizes to nothing is rejected.
func (a *SlugAllocator) Allocate(title string) (string, error) {
	base := normalizeSlug(title)
	if base == "" {
		return "", apperr.InvalidArgument("title %q produces an empty slug", title)
	}

	slug := base
	for i := 1; ; i++ {
		taken, err := a.exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
