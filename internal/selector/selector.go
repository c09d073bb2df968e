// Package selector parses the supported selector forms (#id, .class and
// bare tag names) and extracts the text of matching elements from html.
package selector

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/jakopako/sessionscraper/internal/log"
	"github.com/jakopako/sessionscraper/internal/types"
	"golang.org/x/net/html"
)

// Kind tells how a Selector matches elements.
type Kind int

const (
	ByID Kind = iota
	ByClass
	ByTag
)

func (k Kind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByClass:
		return "class"
	case ByTag:
		return "tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var tagRegex = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Selector is a parsed selector. Raw is the string as given by the user
// and is used as key in the extraction result.
type Selector struct {
	Raw  string
	Kind Kind
	Name string
}

// Selector implements cascadia.Matcher
var _ cascadia.Matcher = Selector{}

// Parse turns raw into a Selector. The second return value is false for
// empty strings and for tag names containing anything other than
// letters, digits and hyphens.
func Parse(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, false
	}
	switch raw[0] {
	case '#':
		return Selector{Raw: raw, Kind: ByID, Name: raw[1:]}, true
	case '.':
		return Selector{Raw: raw, Kind: ByClass, Name: raw[1:]}, true
	}
	if !tagRegex.MatchString(raw) {
		return Selector{}, false
	}
	return Selector{Raw: raw, Kind: ByTag, Name: raw}, true
}

// ParseList parses a comma separated list of selectors, silently dropping
// the ones Parse rejects as well as duplicates.
func ParseList(list string) []Selector {
	selectors := []Selector{}
	seen := map[string]bool{}
	for _, raw := range strings.Split(list, ",") {
		s, ok := Parse(raw)
		if !ok || seen[s.Raw] {
			continue
		}
		seen[s.Raw] = true
		selectors = append(selectors, s)
	}
	return selectors
}

// Match reports whether n is an element selected by s.
func (s Selector) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch s.Kind {
	case ByID:
		// a bare "#" selects elements carrying an empty id attribute
		id, found := attr(n, "id")
		return found && id == s.Name
	case ByClass:
		class, found := attr(n, "class")
		if !found || s.Name == "" {
			return false
		}
		for _, c := range strings.FieldsFunc(class, isHTMLSpace) {
			if c == s.Name {
				return true
			}
		}
		return false
	case ByTag:
		// the parser lowercases element names
		return strings.EqualFold(n.Data, s.Name)
	}
	return false
}

func (s Selector) String() string {
	return s.Raw
}

// Extract parses body as html and returns, for every selector, the
// trimmed text content of all matching elements in document order.
// Malformed markup never makes it fail; whatever tree the parser manages
// to build is searched.
func Extract(ctx context.Context, body string, selectors []Selector) *types.Values {
	logger := log.LoggerFromContext(ctx)
	values := types.NewValues()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		logger.Debug("failed to parse html, treating it as empty", slog.String("err", err.Error()))
		for _, s := range selectors {
			values.Set(s.Raw, nil)
		}
		return values
	}

	root := doc.Get(0)
	for _, s := range selectors {
		nodes := cascadia.QueryAll(root, s)
		texts := make([]string, 0, len(nodes))
		for _, n := range nodes {
			texts = append(texts, strings.TrimSpace(goquery.NewDocumentFromNode(n).Text()))
		}
		logger.Debug(fmt.Sprintf("selector %s matched %d elements", s.Raw, len(texts)), slog.String("kind", s.Kind.String()))
		values.Set(s.Raw, texts)
	}
	return values
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
