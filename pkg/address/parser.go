package address

import (
	"context"
	"regexp"
	"strings"
)

var (
	streetPattern = regexp.MustCompile(`^\d+\s+\S+`)
	// US zip, Canadian, and UK formats; enough for the reference parser.
	postalPattern = regexp.MustCompile(`(?i)^(\d{5}(-\d{4})?|[a-z]\d[a-z] ?\d[a-z]\d|[a-z]{1,2}\d{1,2}[a-z]? ?\d[a-z]{2})$`)
	houseNumber   = regexp.MustCompile(`^\d+[a-zA-Z]?\s+`)
)

// Parser is the reference Adapter: a heuristic comma-field parser with no
// network or device access. DetectCurrent always reports unavailable.
type Parser struct{}

// NewParser creates a new heuristic address parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse splits comma-separated address text into street, city, region, and
// postal code. The first field must look like a street line (leading house
// number) for the input to count as an address at all.
func (p *Parser) Parse(text string) (*Address, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrUnparseable
	}

	fields := strings.Split(trimmed, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	if !streetPattern.MatchString(fields[0]) {
		return nil, ErrUnparseable
	}

	addr := &Address{
		Street: fields[0],
		Raw:    trimmed,
	}

	rest := fields[1:]
	if n := len(rest); n > 0 && postalPattern.MatchString(rest[n-1]) {
		addr.PostalCode = rest[n-1]
		rest = rest[:n-1]
	}

	switch len(rest) {
	case 0:
	case 1:
		addr.City = rest[0]
	default:
		addr.City = rest[0]
		addr.Region = strings.Join(rest[1:], ", ")
	}

	return addr, nil
}

// GenerateHouseName derives a friendly house name from the street line:
// "221b Baker Street" becomes "Baker Street House". Falls back to "My House"
// when nothing street-like is present.
func (p *Parser) GenerateHouseName(addressText string) string {
	street := addressText
	if addr, err := p.Parse(addressText); err == nil {
		street = addr.Street
	}

	street = houseNumber.ReplaceAllString(strings.TrimSpace(street), "")
	street = strings.TrimSpace(street)
	if street == "" {
		return "My House"
	}

	return title(street) + " House"
}

// DetectCurrent is unsupported by the heuristic parser.
func (p *Parser) DetectCurrent(_ context.Context) (*Address, error) {
	return nil, ErrDetectionUnavailable
}

// title uppercases the first letter of each word without pulling in
// x/text casing for ASCII street names.
func title(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
