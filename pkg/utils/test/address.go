package testutils

import (
	"context"
	"fmt"

	"github.com/hearthhq/hearth/pkg/address"
)

// MockAddressAdapter is a test adapter with scriptable results.
type MockAddressAdapter struct {
	// ParseResult is returned by Parse when set; otherwise Parse fails.
	ParseResult *address.Address

	// Detected is returned by DetectCurrent when set; otherwise
	// detection reports unavailable.
	Detected *address.Address

	// HouseName is returned by GenerateHouseName.
	HouseName string

	// FailParse forces Parse to fail regardless of ParseResult.
	FailParse bool

	ParseCalls  int
	DetectCalls int
}

func NewMockAddressAdapter() *MockAddressAdapter {
	return &MockAddressAdapter{HouseName: "Test House"}
}

func (m *MockAddressAdapter) Parse(text string) (*address.Address, error) {
	m.ParseCalls++
	if m.FailParse || m.ParseResult == nil {
		return nil, fmt.Errorf("mock parse failure for: %s", text)
	}
	return m.ParseResult, nil
}

func (m *MockAddressAdapter) GenerateHouseName(_ string) string {
	return m.HouseName
}

func (m *MockAddressAdapter) DetectCurrent(_ context.Context) (*address.Address, error) {
	m.DetectCalls++
	if m.Detected == nil {
		return nil, address.ErrDetectionUnavailable
	}
	return m.Detected, nil
}
