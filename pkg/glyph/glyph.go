package glyph

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/picatz/homoglyphr"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// Table maps a character to the ordered list of strings which can be mistaken for it
type Table map[rune][]string

// rows are the built-in confusables. Every substitute is valid under IDNA 2008 and
// UTS #46 non-transitional processing and is not changed by its mapping step.
var rows = map[rune][]string{
	'a': {"à", "á", "â", "ã", "ä", "å", "ɑ", "ạ", "ǎ", "ă", "ȧ", "ą"},
	'b': {"d", "lb", "ʙ", "ɓ", "ḃ", "ḅ", "ḇ", "ƅ"},
	'c': {"e", "ƈ", "ċ", "ć", "ç", "č"},
	'd': {"b", "cl", "dl", "ɗ", "đ", "ď", "ɖ", "ḑ", "ḋ", "ḍ", "ḏ", "ḓ"},
	'e': {"c", "è", "é", "ê", "ë", "ē", "ĕ", "ė", "ę", "ě", "ȩ", "ɇ", "ḛ", "ẹ"},
	'f': {"ƒ", "ḟ"},
	'g': {"q", "ɢ", "ɡ", "ġ", "ğ", "ǵ", "ģ", "ĝ", "ǧ", "ǥ"},
	'h': {"lh", "ĥ", "ȟ", "ħ", "ɦ", "ḧ", "ḩ", "ⱨ", "ḣ", "ḥ", "ḫ", "ẖ"},
	'i': {"1", "l", "í", "ì", "ï", "ı", "ɩ", "ǐ", "ĭ", "ỉ", "ị", "ɨ", "ȋ", "ī"},
	'j': {"ʝ", "ɉ"},
	'k': {"lk", "ik", "lc", "ḳ", "ḵ", "ⱪ", "ķ"},
	'l': {"1", "i", "ł", "ɫ"},
	'm': {"n", "nn", "rn", "rr", "ɱ", "ᴍ", "ḿ", "ṁ", "ṃ"},
	'n': {"m", "r", "ń", "ṅ", "ṇ", "ṉ", "ñ", "ņ", "ǹ", "ň", "ꞑ"},
	'o': {"0", "ȯ", "ọ", "ỏ", "ơ", "ó", "ö"},
	'p': {"ƥ", "ƿ", "ṕ", "ṗ"},
	'q': {"g", "ʠ"},
	'r': {"ʀ", "ɼ", "ɽ", "ŕ", "ŗ", "ř", "ɍ", "ɾ", "ȓ", "ȑ", "ṙ", "ṛ", "ṟ"},
	's': {"ʂ", "ś", "ṣ", "ṡ", "ș", "ŝ", "š"},
	't': {"ţ", "ŧ", "ṫ", "ṭ", "ț", "ƫ"},
	'u': {"ᴜ", "ǔ", "ŭ", "ü", "ʉ", "ù", "ú", "û", "ũ", "ū", "ų", "ư", "ů", "ű", "ȕ", "ȗ", "ụ"},
	'v': {"ṿ", "ⱱ", "ᶌ", "ṽ", "ⱴ"},
	'w': {"vv", "ŵ", "ẁ", "ẃ", "ẅ", "ẇ", "ẉ", "ẘ", "ⱳ"},
	'y': {"ʏ", "ý", "ÿ", "ŷ", "ƴ", "ȳ", "ɏ", "ỿ", "ẏ", "ỹ"},
	'z': {"ʐ", "ż", "ź", "ᴢ", "ƶ", "ẓ", "ẕ", "ⱬ"},
}

var (
	defaultOnce  sync.Once
	defaultTable Table

	reverseOnce sync.Once
	related     map[rune]rune
)

// Default returns the built-in table. It is built on first use and shared afterwards.
func Default() Table {
	defaultOnce.Do(func() {
		t, err := New(rows)
		if err != nil {
			panic(errors.Wrap(err, "built-in glyph table is corrupt"))
		}
		defaultTable = t
	})
	return defaultTable
}

// New validates the rows and returns them as a Table. All violations are reported.
func New(rows map[rune][]string) (Table, error) {
	var merr *multierror.Error
	t := make(Table, len(rows))
	for k, subs := range rows {
		seen := make(map[string]int, len(subs))
		for i, g := range subs {
			switch {
			case g == "":
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d is empty", k, i))
				continue
			case !utf8.ValidString(g):
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d is not valid UTF-8", k, i))
				continue
			case strings.EqualFold(g, string(k)):
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d (%q) is the key", k, i, g))
			case strings.ToLower(g) != g:
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d (%q) is not lower case", k, i, g))
			case !norm.NFC.IsNormalString(g):
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d (%q) is not NFC", k, i, g))
			}
			lower := strings.ToLower(g)
			if j, ok := seen[lower]; ok {
				merr = multierror.Append(merr, errors.Errorf("glyphs for %q: index %d (%q) duplicates index %d", k, i, g, j))
				continue
			}
			seen[lower] = i
		}
		t[k] = append([]string(nil), subs...)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

// Keys returns the characters having substitutes, sorted
func (t Table) Keys() []rune {
	keys := make([]rune, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Skeleton replaces every known non-ASCII look-alike in s by the letter it imitates
func (t Table) Skeleton(s string) string {
	reverse := t.reverse()
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if k, ok := reverse[r]; ok {
			b.WriteRune(k)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// reverse indexes single-rune, non-ASCII substitutes. Entries of t override the
// broader homoglyphr set.
func (t Table) reverse() map[rune]rune {
	reverseOnce.Do(loadRelated)
	reverse := make(map[rune]rune, len(related)+len(t)*8)
	for r, k := range related {
		reverse[r] = k
	}
	for _, k := range t.Keys() {
		for _, g := range t[k] {
			r, size := utf8.DecodeRuneInString(g)
			if size != len(g) || r < utf8.RuneSelf {
				continue
			}
			reverse[r] = k
		}
	}
	return reverse
}

func loadRelated() {
	related = make(map[rune]rune)
	for letter := 'a'; letter <= 'z'; letter++ {
		for c := range homoglyphr.StreamAllRelatedCharacters(string(letter)) {
			r, size := utf8.DecodeRuneInString(c)
			if size != len(c) || r < utf8.RuneSelf {
				continue
			}
			related[r] = letter
		}
	}
}
