// Package locale holds the reference set of culture names a deployment
// profile may use as its language setting.
package locale

import (
	"bufio"
	_ "embed"
	"strings"

	"golang.org/x/text/language"
)

// OSDefault is the sentinel accepted in place of a concrete culture name; it
// tells the device to keep the operating system default language.
const OSDefault = "os-default"

//go:embed cultures.txt
var culturesRaw string

// Catalog is an immutable set of known culture names, keyed
// case-insensitively.
type Catalog struct {
	tags map[string]string // lowercased tag -> canonical spelling
}

// NewCatalog builds the catalog from the embedded culture table.
func NewCatalog() *Catalog {
	c := &Catalog{tags: make(map[string]string)}
	scanner := bufio.NewScanner(strings.NewReader(culturesRaw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.tags[strings.ToLower(line)] = line
	}
	return c
}

// Contains reports whether tag names a known culture. Matching is
// case-insensitive and tolerant of BCP 47 casing variants ("en-us", "EN-US").
func (c *Catalog) Contains(tag string) bool {
	_, ok := c.Canonical(tag)
	return ok
}

// Canonical returns the catalog spelling for tag ("en-us" -> "en-US"). The
// second return is false when the tag is not in the catalog.
func (c *Catalog) Canonical(tag string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := c.tags[key]; ok {
		return canonical, true
	}
	// Let the BCP 47 parser repair casing and legacy forms before the
	// second lookup.
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	canonical, ok := c.tags[strings.ToLower(parsed.String())]
	return canonical, ok
}

// Len returns the number of culture names in the catalog.
func (c *Catalog) Len() int {
	return len(c.tags)
}
