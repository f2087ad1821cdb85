package model

import (
	"errors"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeManufacturer(t *testing.T) {
	tests := []struct {
		raw  string
		want Manufacturer
	}{
		{"https://www.nascar.com/wp-content/uploads/sites/7/2017/01/Chevy.png", Chevrolet},
		{"chevrolet", Chevrolet},
		{"Chevy Camaro", Chevrolet},
		{"ford-mustang.png", Ford},
		{"Ford Mustang", Ford},
		{"Toyota Camry", Toyota},
		{"TOYOTA", Toyota},
		{"Dodge", UnknownManufacturer},
		{"", UnknownManufacturer},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeManufacturer(tt.raw))
		})
	}
}

func TestParseManufacturer(t *testing.T) {
	m, err := ParseManufacturer("ford")
	assert.NoError(t, err)
	assert.Equal(t, Ford, m)

	_, err = ParseManufacturer("Dodge")
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "manufacturer", cfgErr.Parameter)
}

func TestParseSeriesFilter(t *testing.T) {
	tests := []struct {
		value   string
		want    SeriesFilter
		wantErr bool
	}{
		{"all", SeriesFilterAll, false},
		{"", SeriesFilterAll, false},
		{"cup", FilterFor(SeriesCup), false},
		{"Xfinity", FilterFor(SeriesXfinity), false},
		{"3", FilterFor(SeriesTruck), false},
		{"4", SeriesFilterAll, true},
		{"arca", SeriesFilterAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseSeriesFilter(tt.value)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeriesFilterMatches(t *testing.T) {
	cup := FilterFor(SeriesCup)
	assert.True(t, cup.Matches(null.From(SeriesCup)))
	assert.False(t, cup.Matches(null.From(SeriesTruck)))
	assert.False(t, cup.Matches(null.Val[Series]{}))
	assert.True(t, SeriesFilterAll.Matches(null.Val[Series]{}))
	assert.Equal(t, "all", SeriesFilterAll.String())
	assert.Equal(t, "cup", cup.String())
}
