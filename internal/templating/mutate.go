package templating

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultSynonyms covers the words the stock outreach templates use.
var DefaultSynonyms = map[string][]string{
	"noticed":     {"observed", "seen"},
	"interesting": {"noteworthy", "compelling"},
	"work":        {"efforts", "projects"},
	"industry":    {"sector", "domain"},
	"share":       {"provide", "deliver"},
	"resources":   {"materials", "guides"},
	"insights":    {"information", "tips"},
	"secure":      {"protect", "safeguard"},
	"data":        {"information", "records"},
	"scaling":     {"growing", "expanding"},
	"marketing":   {"promotion", "outreach"},
	"customers":   {"clients", "buyers"},
}

var tokenPattern = regexp.MustCompile(`^(\W*)(\w+)(\W*)$`)

// Mutator swaps whole words for synonyms.
type Mutator struct {
	synonyms map[string][]string
	rng      *rand.Rand
}

// NewMutator uses DefaultSynonyms when synonyms is nil and a time-seeded
// source when rng is nil.
func NewMutator(synonyms map[string][]string, rng *rand.Rand) *Mutator {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Mutator{synonyms: synonyms, rng: rng}
}

// MutateTemplate mutates each line of tmpl on its own.
func (m *Mutator) MutateTemplate(tmpl string) string {
	lines := strings.Split(tmpl, "\n")
	for i, line := range lines {
		lines[i] = m.MutatePhrase(line)
	}
	return strings.Join(lines, "\n")
}

// MutatePhrase splits on whitespace and rejoins with single spaces. Tokens
// holding a placeholder are left as they are.
func (m *Mutator) MutatePhrase(phrase string) string {
	words := strings.Fields(phrase)
	for i, word := range words {
		if strings.ContainsAny(word, "{}") {
			continue
		}
		match := tokenPattern.FindStringSubmatch(word)
		if match == nil {
			continue
		}
		prefix, core, suffix := match[1], match[2], match[3]
		options := m.synonyms[strings.ToLower(core)]
		if len(options) == 0 {
			continue
		}
		replacement := options[m.rng.IntN(len(options))]
		if r, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(r) {
			replacement = capitalize(replacement)
		}
		words[i] = prefix + replacement + suffix
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
