package keyboard

import (
	"strings"

	"github.com/pkg/errors"
)

// Layout represents a keyboard layout as a map of keys to their neighbours
type Layout struct {
	Name     string
	adjacent map[rune]string
}

// Adjacent returns the keys surrounding r, in a fixed order
func (l Layout) Adjacent(r rune) (string, bool) {
	s, ok := l.adjacent[r]
	return s, ok
}

var (
	// QWERTY is the US/UK layout
	QWERTY = Layout{
		Name: "qwerty",
		adjacent: map[rune]string{
			'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4",
			'6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
			'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6ygfr5",
			'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
			'a': "qwsz", 's': "edxzaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft",
			'h': "ujnbgy", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
			'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
			'n': "bhjm", 'm': "njk",
		},
	}

	// QWERTZ is the German layout
	QWERTZ = Layout{
		Name: "qwertz",
		adjacent: map[rune]string{
			'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4",
			'6': "7zt5", '7': "8uz6", '8': "9iu7", '9': "0oi8", '0': "po9",
			'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6zgfr5",
			'z': "7uhgt6", 'u': "8ijhz7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
			'a': "qwsy", 's': "edxyaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "zhbvft",
			'h': "ujnbgz", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
			'y': "asx", 'x': "ysdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
			'n': "bhjm", 'm': "njk",
		},
	}

	// AZERTY is the French layout
	AZERTY = Layout{
		Name: "azerty",
		adjacent: map[rune]string{
			'1': "2a", '2': "3za1", '3': "4ez2", '4': "5re3", '5': "6tr4",
			'6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
			'a': "2zq1", 'z': "3esqa2", 'e': "4rdsz3", 'r': "5tfde4", 't': "6ygfr5",
			'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0m",
			'q': "zswa", 's': "edxwqz", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft",
			'h': "ujnbgy", 'j': "iknhu", 'k': "olji", 'l': "kopm", 'm': "lp",
			'w': "sxq", 'x': "wsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
			'n': "bhj",
		},
	}
)

// All returns the built-in layouts, in the order they are applied
func All() []Layout {
	return []Layout{QWERTY, QWERTZ, AZERTY}
}

// ByName returns the built-in layout with the given name
func ByName(name string) (Layout, error) {
	for _, l := range All() {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Layout{}, errors.Errorf("unknown keyboard layout %q", name)
}

// ByNames resolves a list of layout names, preserving their order
func ByNames(names []string) ([]Layout, error) {
	layouts := make([]Layout, 0, len(names))
	for _, n := range names {
		l, err := ByName(n)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}
