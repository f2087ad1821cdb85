package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aarondl/opt/null"
)

type Series int

const (
	SeriesCup     Series = 1
	SeriesXfinity Series = 2
	SeriesTruck   Series = 3
)

var AllSeries = []Series{SeriesCup, SeriesXfinity, SeriesTruck}

var seriesNames = map[Series]string{
	SeriesCup:     "cup",
	SeriesXfinity: "xfinity",
	SeriesTruck:   "truck",
}

func (s Series) String() string {
	if name, ok := seriesNames[s]; ok {
		return name
	}
	return fmt.Sprintf("series(%d)", int(s))
}

func (s Series) Valid() bool {
	_, ok := seriesNames[s]
	return ok
}

func (s Series) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeries accepts the series name (cup, xfinity, truck) or the numeric id
func ParseSeries(value string) (Series, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if id, err := strconv.Atoi(v); err == nil {
		if s := Series(id); s.Valid() {
			return s, nil
		}
	}
	for s, name := range seriesNames {
		if name == v {
			return s, nil
		}
	}
	return 0, &ConfigurationError{
		Parameter: "series",
		Value:     value,
		Allowed:   []string{"cup", "xfinity", "truck", "1", "2", "3"},
	}
}

// SeriesFilter selects a single series or all of them (the zero value).
type SeriesFilter int

const SeriesFilterAll SeriesFilter = 0

func FilterFor(s Series) SeriesFilter {
	return SeriesFilter(s)
}

func (f SeriesFilter) IsAll() bool {
	return f == SeriesFilterAll
}

// Series returns the selected series, false for the wildcard
func (f SeriesFilter) Series() (Series, bool) {
	if f.IsAll() {
		return 0, false
	}
	return Series(f), true
}

// Matches reports whether a (possibly unknown) series is in scope.
// Rows without a series only match the wildcard.
func (f SeriesFilter) Matches(s null.Val[Series]) bool {
	if f.IsAll() {
		return true
	}
	v, ok := s.Get()
	return ok && v == Series(f)
}

func (f SeriesFilter) String() string {
	if f.IsAll() {
		return "all"
	}
	return Series(f).String()
}

func (f SeriesFilter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func ParseSeriesFilter(value string) (SeriesFilter, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "all" || v == "" {
		return SeriesFilterAll, nil
	}
	s, err := ParseSeries(v)
	if err != nil {
		return SeriesFilterAll, &ConfigurationError{
			Parameter: "series filter",
			Value:     value,
			Allowed:   []string{"all", "cup", "xfinity", "truck", "1", "2", "3"},
		}
	}
	return FilterFor(s), nil
}
