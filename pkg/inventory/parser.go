package inventory

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ExpiryLayout is the only date format accepted anywhere in parsing or storage.
const ExpiryLayout = "02.01.2006"

var (
	dateRegex           = regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{4})\b`)
	trailingPunctuation = regexp.MustCompile(`[()\-–—]*\s*$`)
	repeatedWhitespace  = regexp.MustCompile(`\s{2,}`)
	decimalComma        = regexp.MustCompile(`(\d),(\d)`)

	// synonyms maps alternate surface forms to one canonical token so that
	// "tomatoes 2 pcs" and "tomato 1 pcs" merge into the same product name.
	synonyms = map[string]string{
		"tomatoes":  "tomato",
		"tomatos":   "tomato",
		"cucumbers": "cucumber",
		"cukes":     "cucumber",
		"egg":       "eggs",
		"potatoes":  "potato",
		"onions":    "onion",
	}
)

// ParsedItem is one normalized product candidate produced from a free-text
// clause, before it is merged into or inserted as a ProductEntry.
type ParsedItem struct {
	Name       string
	Quantity   float64
	Unit       string
	ExpiryDate *time.Time
}

// NormalizeName lower-cases a product name and resolves it through the
// synonym table.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	return name
}

// ParseEntries splits raw free text on commas and parses each clause
// independently. A comma between two digits is a decimal separator, not a
// clause break, so it is rewritten to a dot before splitting. Clauses that
// cannot be parsed are silently dropped; the caller only observes fewer
// results than clauses submitted.
func ParseEntries(text string) []ParsedItem {
	text = decimalComma.ReplaceAllString(text, "$1.$2")

	var items []ParsedItem
	for _, clause := range strings.Split(text, ",") {
		if item, ok := parseClause(clause); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseClause parses a single "Name Quantity Unit [dd.mm.yyyy]" clause. The
// date token may appear anywhere; the last token is the unit, the
// second-to-last the quantity, everything before them joins into the name.
// That right-to-left assignment is what allows multi-word product names.
func parseClause(raw string) (ParsedItem, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedItem{}, false
	}

	s, expiry := extractExpiry(s)

	parts := strings.Fields(s)
	if len(parts) < 3 {
		return ParsedItem{}, false
	}

	unit := parts[len(parts)-1]
	qtyToken := parts[len(parts)-2]
	name := strings.TrimSpace(strings.Join(parts[:len(parts)-2], " "))
	if name == "" {
		return ParsedItem{}, false
	}

	quantity, err := strconv.ParseFloat(strings.ReplaceAll(qtyToken, ",", "."), 64)
	if err != nil || quantity <= 0 {
		return ParsedItem{}, false
	}

	return ParsedItem{
		Name:       NormalizeName(name),
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiry,
	}, true
}

// extractExpiry scans the clause for an embedded dd.mm.yyyy token. A token
// that does not parse as a valid calendar date is left in place and the
// clause is returned unchanged. On success the token is removed together with
// any dangling separator punctuation, and repeated whitespace is collapsed.
func extractExpiry(s string) (string, *time.Time) {
	loc := dateRegex.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), nil
	}

	expiry, err := time.Parse(ExpiryLayout, s[loc[0]:loc[1]])
	if err != nil {
		return strings.TrimSpace(s), nil
	}

	stripped := strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
	stripped = strings.TrimSpace(trailingPunctuation.ReplaceAllString(stripped, ""))
	stripped = repeatedWhitespace.ReplaceAllString(stripped, " ")
	return stripped, &expiry
}
