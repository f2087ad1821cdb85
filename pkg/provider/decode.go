package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

type (
	rawDriver struct {
		ID           int    `json:"Nascar_Driver_ID"`
		FullName     string `json:"Full_Name"`
		Manufacturer string `json:"Manufacturer"`
		Team         string `json:"Team"`
	}
	rawRace struct {
		RaceID     int    `json:"race_id"`
		SeriesID   int    `json:"series_id"`
		RaceSeason int    `json:"race_season"`
		RaceName   string `json:"race_name"`
		TrackName  string `json:"track_name"`
		RaceDate   string `json:"race_date"`
		RaceTypeID int    `json:"race_type_id"`
	}
	rawResult struct {
		DriverID   int    `json:"driver_id"`
		DriverName string `json:"driver_name"`
		Ps         int    `json:"ps"`
		Team       string `json:"Team"`
	}
)

var (
	rosterPath    = jp.MustParseString("$.response")
	loopStatsPath = jp.MustParseString("$[0].drivers")
)

// the feed delivers local timestamps without zone information
var raceDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRaceDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range raceDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unsupported race_date %q", ErrMalformedPayload, value)
}

// extract applies the path to the payload and decodes the first match into target.
func extract(payload []byte, path jp.Expr, target any) error {
	data, err := oj.Parse(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	res := path.Get(data)
	if len(res) == 0 {
		return fmt.Errorf("%w: %s not found", ErrMalformedPayload, path.String())
	}
	if err := json.Unmarshal([]byte(oj.JSON(res[0])), target); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

func decodeRoster(payload []byte) ([]model.Driver, error) {
	var raw []rawDriver
	if err := extract(payload, rosterPath, &raw); err != nil {
		return nil, err
	}
	ret := make([]model.Driver, 0, len(raw))
	for i := range raw {
		ret = append(ret, model.Driver{
			ID:              raw[i].ID,
			Name:            raw[i].FullName,
			Team:            raw[i].Team,
			RawManufacturer: raw[i].Manufacturer,
			Manufacturer:    model.NormalizeManufacturer(raw[i].Manufacturer),
		})
	}
	return ret, nil
}

func decodeSchedule(payload []byte, loc *time.Location) ([]model.Race, error) {
	var raw []rawRace
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	ret := make([]model.Race, 0, len(raw))
	for i := range raw {
		date, err := parseRaceDate(raw[i].RaceDate, loc)
		if err != nil {
			return nil, fmt.Errorf("race %d: %w", raw[i].RaceID, err)
		}
		ret = append(ret, model.Race{
			ID:        raw[i].RaceID,
			Series:    model.Series(raw[i].SeriesID),
			Season:    raw[i].RaceSeason,
			Name:      raw[i].RaceName,
			TrackName: raw[i].TrackName,
			Date:      date,
			TypeID:    raw[i].RaceTypeID,
		})
	}
	return ret, nil
}

func decodeLoopStats(payload []byte, raceID int) ([]model.DriverResult, error) {
	var raw []rawResult
	if err := extract(payload, loopStatsPath, &raw); err != nil {
		return nil, err
	}
	ret := make([]model.DriverResult, 0, len(raw))
	for i := range raw {
		ret = append(ret, model.DriverResult{
			RaceID:     raceID,
			DriverID:   raw[i].DriverID,
			DriverName: raw[i].DriverName,
			Team:       raw[i].Team,
			Ps:         raw[i].Ps,
		})
	}
	return ret, nil
}
