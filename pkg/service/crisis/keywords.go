package crisis

import (
	"os"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// defaultKeywords is the built-in crisis lexicon. It mixes English, Roman
// Urdu and Urdu-script terms because patients freely switch between them.
var defaultKeywords = []string{
	"suicide", "mar", "khatam", "die", "end", "hopeless", "worthless",
	"khudkushi", "jaan dena", "marne", "zeher", "phansi", "mout",
	"خودکشی", "مر", "مرنے", "ختم", "جان", "زہر", "پھانسی", "موت", "مار",
}

// KeywordSet holds the compiled crisis lexicon. Matching is
// case-insensitive and requires the keyword to sit on a word-ish boundary
// (whitespace, start/end of text, or one of ,.!?) so that "market" does
// not trip on "mar".
type KeywordSet struct {
	keywords []string
	pattern  *regexp.Regexp
}

type keywordFile struct {
	Keywords []string `toml:"keywords"`
}

// DefaultKeywords returns the built-in lexicon
func DefaultKeywords() *KeywordSet {
	ks, err := NewKeywordSet(defaultKeywords)
	if err != nil {
		// The built-in list is static and always compiles
		panic(err)
	}
	return ks
}

// NewKeywordSet compiles a lexicon from the given keywords
func NewKeywordSet(keywords []string) (*KeywordSet, error) {
	trimmed := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		trimmed = append(trimmed, kw)
	}
	if len(trimmed) == 0 {
		return nil, goerr.New("keyword set must not be empty")
	}

	quoted := make([]string, len(trimmed))
	for i, kw := range trimmed {
		quoted[i] = regexp.QuoteMeta(kw)
	}

	expr := `(?i)(?:^|[\s,.!?])(?:` + strings.Join(quoted, "|") + `)(?:[\s,.!?]|$)`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compile keyword pattern")
	}

	return &KeywordSet{
		keywords: trimmed,
		pattern:  pattern,
	}, nil
}

// LoadKeywordSet reads a TOML lexicon file with a top-level `keywords`
// array of strings
func LoadKeywordSet(path string) (*KeywordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read keyword file", goerr.V("path", path))
	}

	var file keywordFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse keyword file", goerr.V("path", path))
	}

	return NewKeywordSet(file.Keywords)
}

// Match reports whether the message contains any crisis keyword
func (x *KeywordSet) Match(message string) bool {
	return x.pattern.MatchString(message)
}

// Keywords returns the lexicon entries
func (x *KeywordSet) Keywords() []string {
	return append([]string{}, x.keywords...)
}
