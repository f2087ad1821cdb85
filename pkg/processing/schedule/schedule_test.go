package schedule

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/testsupport/basedata"
)

func TestFilter(t *testing.T) {
	got := Filter(basedata.SampleRaces(), basedata.TestTime())
	assert.Equal(t, []int{500, 502, 600}, lo.Map(got, func(r model.Race, _ int) int { return r.ID }))
}

func TestFilterBoundary(t *testing.T) {
	now := basedata.TestTime()
	races := []model.Race{
		{ID: 1, Date: now, TypeID: model.RaceTypePoints},
		{ID: 2, Date: now.Add(-time.Second), TypeID: model.RaceTypePoints},
	}
	got := Filter(races, now)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestFilterEmpty(t *testing.T) {
	assert.Empty(t, Filter(nil, basedata.TestTime()))
	assert.Empty(t, Filter(basedata.SampleRaces(), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
}
