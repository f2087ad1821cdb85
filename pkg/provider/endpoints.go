package provider

import (
	"fmt"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

const DefaultBaseURL = "https://cf.nascar.com"

// /cacher/drivers.json
func (c *Client) rosterURL() string {
	return c.baseURL + "/cacher/drivers.json"
}

// /cacher/{year}/{series}/race_list_basic.json
func (c *Client) scheduleURL(year int, series model.Series) string {
	return fmt.Sprintf("%s/cacher/%d/%d/race_list_basic.json", c.baseURL, year, int(series))
}

// /loopstats/prod/{year}/{series}/{race}.json
func (c *Client) loopStatsURL(year int, series model.Series, raceID int) string {
	return fmt.Sprintf("%s/loopstats/prod/%d/%d/%d.json", c.baseURL, year, int(series), raceID)
}
