package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// Address is the canonical identifier of a location in the distance graph.
// Parcels and the hub use the same form so that graph lookups match exactly;
// text normalization happens at ingestion.
type Address struct {
	value string
}

// NewAddress trims surrounding whitespace and rejects empty identifiers.
func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	return Address{value: value}, nil
}

// MustAddress is NewAddress for literals in tests and defaults.
func MustAddress(value string) Address {
	a, err := NewAddress(value)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return a.value
}

func (a Address) IsEmpty() bool {
	return a.value == ""
}

func (a Address) IsEqual(other Address) bool {
	return a.value == other.value
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.value), nil
}
