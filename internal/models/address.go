package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredAddress is the address shape the backend writes for new accounts.
type StructuredAddress struct {
	StreetAddress1 string `json:"streetAddress1,omitempty"`
	StreetAddress2 string `json:"streetAddress2,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Country        string `json:"country,omitempty"`
}

// Address arrives either as a structured object or, for older accounts, as a
// single free-form string. Exactly one of Structured and Legacy is set.
type Address struct {
	Structured *StructuredAddress
	Legacy     string
}

func LegacyAddress(s string) Address {
	return Address{Legacy: s}
}

func StructuredAddressOf(s StructuredAddress) Address {
	return Address{Structured: &s}
}

func (a Address) IsZero() bool {
	return a.Structured == nil && strings.TrimSpace(a.Legacy) == ""
}

// String renders the address as one display line. Structured parts are joined
// with ", " and empty parts are skipped; state and postal code share a segment.
func (a Address) String() string {
	if a.Structured == nil {
		return strings.TrimSpace(a.Legacy)
	}
	s := a.Structured
	region := strings.TrimSpace(strings.Join(nonEmpty(s.State, s.PostalCode), " "))
	return strings.Join(nonEmpty(s.StreetAddress1, s.StreetAddress2, s.City, region, s.Country), ", ")
}

// Normalize collapses a structured address into its legacy string form.
func (a Address) Normalize() Address {
	return Address{Legacy: a.String()}
}

func (a *Address) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Address{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &a.Legacy)
	case '{':
		var s StructuredAddress
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Structured = &s
		return nil
	default:
		return fmt.Errorf("address: unsupported JSON value %s", data)
	}
}

func (a Address) MarshalJSON() ([]byte, error) {
	if a.Structured != nil {
		return json.Marshal(a.Structured)
	}
	if a.Legacy == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.Legacy)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
