// Package address defines the contract for address resolution consumed by
// the question flow. Real geocoding and on-device location lookup live in
// platform integrations; the flow only depends on this interface and treats
// every failure here as non-fatal.
package address

import (
	"context"
	"errors"
	"strings"
)

// ErrDetectionUnavailable is returned by adapters that cannot perform
// on-device location detection (no provider, or permission denied).
var ErrDetectionUnavailable = errors.New("location detection unavailable")

// ErrUnparseable is returned when free text cannot be read as an address.
var ErrUnparseable = errors.New("could not parse address")

// Address is a parsed, canonicalized postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`

	// Raw is the original input text, kept for provenance metadata.
	Raw string `json:"raw,omitempty"`
}

// String renders the canonical single-line form used as the persisted answer.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.Region, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return a.Raw
	}
	return strings.Join(parts, ", ")
}

// Adapter resolves addresses for the flow layer.
type Adapter interface {
	// Parse reads free text into a canonical address.
	Parse(text string) (*Address, error)

	// GenerateHouseName suggests a house name from address text, e.g.
	// "Maple Street House". Always returns something usable.
	GenerateHouseName(addressText string) string

	// DetectCurrent resolves the device's current address. May fail with
	// a location or permission error; callers fall back to asking.
	DetectCurrent(ctx context.Context) (*Address, error)
}
