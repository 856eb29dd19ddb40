package tld

import (
	_ "embed"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// effective_tld_names.dat is the ICANN section of the Public Suffix List
//
//go:embed effective_tld_names.dat
var effectiveTLDNames string

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// ICANN rules only, kept as written in the list (Unicode labels)
var (
	parserOptions = &publicsuffix.ParserOption{PrivateDomains: false, ASCIIEncoded: false}
	findOptions   = &publicsuffix.FindOptions{IgnorePrivate: true, DefaultRule: nil}
)

// Table is a read-only set of public suffix rules
type Table struct {
	list *publicsuffix.List
}

// Default returns the table parsed from the embedded suffix list
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(strings.NewReader(effectiveTLDNames))
		if err != nil {
			panic(errors.Wrap(err, "embedded suffix list is corrupt"))
		}
		defaultTable = t
	})
	return defaultTable
}

// LoadFile reads a suffix list in the publicsuffix.org format from path
func LoadFile(path string) (*Table, error) {
	list, err := publicsuffix.NewListFromFile(path, parserOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load suffix list %s", path)
	}
	return newTable(list)
}

// Load parses a suffix list in the publicsuffix.org format
func Load(r io.Reader) (*Table, error) {
	list := publicsuffix.NewList()
	if _, err := list.Load(r, parserOptions); err != nil {
		return nil, errors.Wrap(err, "can't read suffix list")
	}
	return newTable(list)
}

func newTable(list *publicsuffix.List) (*Table, error) {
	if list.Size() == 0 {
		return nil, errors.New("suffix list is empty")
	}
	return &Table{list: list}, nil
}

// Len returns the number of rules
func (t *Table) Len() int {
	return t.list.Size()
}

// Contains reports whether suffix is a public suffix on its own
func (t *Table) Contains(suffix string) bool {
	suffix = strings.ToLower(suffix)
	return t.find(suffix) == len(strings.Split(suffix, "."))
}

// find returns the number of suffix labels of name, 0 when no rule matches
func (t *Table) find(name string) int {
	rule := t.list.Find(name, findOptions)
	if rule == nil {
		return 0
	}
	if rule.Type == publicsuffix.ExceptionType {
		return rule.Length - 1
	}
	return rule.Length
}

// Match returns how many labels, counted from the right, form the longest public
// suffix of labels while leaving at least one label in front of it. Without a
// matching rule the last label is the suffix.
func (t *Table) Match(labels []string) int {
	n := len(labels)
	if n < 2 {
		return 1
	}
	k := t.find(strings.ToLower(strings.Join(labels, ".")))
	if k >= n {
		// the whole name is a suffix: retry without its first label, which then
		// stays as the registrable one
		k = t.find(strings.ToLower(strings.Join(labels[1:], ".")))
	}
	if k < 1 {
		return 1
	}
	return k
}
