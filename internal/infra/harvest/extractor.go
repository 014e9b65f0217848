package harvest

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// emailPattern is a heuristic, not a validating parser.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// assetSuffixes are matches like "logo@2x.png" that the pattern picks up from markup.
var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"}

const wordTrimSet = " ,;()[]{}<>\"'"

// ExtractEmails returns the distinct email-like strings in page, in the order
// they first appear. When selector is set only the matching elements are
// scanned. The fixed pattern runs first; when it finds nothing, mailto links
// and free-text words are scanned instead.
func ExtractEmails(page []byte, selector string) []string {
	var doc *goquery.Document
	source := page

	if selector != "" {
		var err error
		doc, err = goquery.NewDocumentFromReader(bytes.NewReader(page))
		if err != nil {
			return nil
		}
		scope := doc.Find(selector)
		if scope.Length() == 0 {
			return nil
		}
		source = []byte(outerHTML(scope))
	}

	found := newOrderedSet()
	for _, m := range emailPattern.FindAll(source, -1) {
		email := string(m)
		if isAssetName(email) {
			continue
		}
		found.add(email)
	}
	if found.len() > 0 {
		return found.items
	}

	if doc == nil {
		var err error
		doc, err = goquery.NewDocumentFromReader(bytes.NewReader(page))
		if err != nil {
			return nil
		}
	}
	scope := doc.Selection
	if selector != "" {
		scope = doc.Find(selector)
	}

	for _, email := range mailtoAddresses(scope) {
		found.add(email)
	}
	for _, word := range strings.Fields(textOf(scope)) {
		if !strings.Contains(word, "@") || !strings.Contains(word, ".") {
			continue
		}
		cleaned := strings.Trim(word, wordTrimSet)
		if strings.Contains(cleaned, "@") {
			found.add(cleaned)
		}
	}

	return found.items
}

func mailtoAddresses(scope *goquery.Selection) []string {
	var out []string
	scope.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
			return
		}
		rest := href[len("mailto:"):]
		if i := strings.IndexByte(rest, '?'); i >= 0 {
			rest = rest[:i]
		}
		if unescaped, err := url.PathUnescape(rest); err == nil {
			rest = unescaped
		}
		for _, addr := range strings.Split(rest, ",") {
			addr = strings.TrimSpace(addr)
			if strings.Contains(addr, "@") {
				out = append(out, addr)
			}
		}
	})
	return out
}

// textOf joins every text node under scope with spaces so words in adjacent
// elements do not run together.
func textOf(scope *goquery.Selection) string {
	var buf strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range scope.Nodes {
		visit(n)
	}
	return buf.String()
}

func outerHTML(scope *goquery.Selection) string {
	var buf strings.Builder
	scope.Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			buf.WriteString(h)
			buf.WriteByte('\n')
		}
	})
	return buf.String()
}

func isAssetName(email string) bool {
	lower := strings.ToLower(email)
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) len() int {
	return len(s.items)
}
