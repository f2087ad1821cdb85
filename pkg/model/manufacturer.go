package model

import "strings"

type Manufacturer string

const (
	Chevrolet           Manufacturer = "Chevrolet"
	Ford                Manufacturer = "Ford"
	Toyota              Manufacturer = "Toyota"
	UnknownManufacturer Manufacturer = "Unknown"
)

// Manufacturers lists the manufacturers standings are computed for, in display order.
var Manufacturers = []Manufacturer{Chevrolet, Ford, Toyota}

// the roster delivers the manufacturer as an image reference (e.g. "chevy.png"),
// so tokens are matched as case-insensitive substrings in this order.
var manufacturerTokens = []struct {
	token string
	mfg   Manufacturer
}{
	{"chevrolet", Chevrolet},
	{"chevy", Chevrolet},
	{"ford", Ford},
	{"toyota", Toyota},
}

func NormalizeManufacturer(raw string) Manufacturer {
	v := strings.ToLower(raw)
	for _, t := range manufacturerTokens {
		if strings.Contains(v, t.token) {
			return t.mfg
		}
	}
	return UnknownManufacturer
}

func (m Manufacturer) Known() bool {
	return m == Chevrolet || m == Ford || m == Toyota
}

// ParseManufacturer resolves a manufacturer name given by a user (case-insensitive).
func ParseManufacturer(value string) (Manufacturer, error) {
	for _, m := range Manufacturers {
		if strings.EqualFold(string(m), strings.TrimSpace(value)) {
			return m, nil
		}
	}
	return UnknownManufacturer, &ConfigurationError{
		Parameter: "manufacturer",
		Value:     value,
		Allowed:   []string{string(Chevrolet), string(Ford), string(Toyota)},
	}
}
