// Package timezones holds the curated list of zones the app accepts for
// "today" on the attendance form.
package timezones

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zones must resolve on hosts without zoneinfo
)

//go:embed timezonedata/timezones.json
var FS embed.FS

// Default is used when no zone is configured.
const Default = "Asia/Jakarta"

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

var (
	loadOnce sync.Once
	zones    []Zone
	byID     map[string]Zone
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}

		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}

		zones = list
		byID = make(map[string]Zone, len(list))
		for _, z := range list {
			byID[z.ID] = z
		}
	})
}

// Load returns any error encountered loading the embedded JSON.
func Load() error {
	load()
	return loadErr
}

// All returns the curated zones in file order.
func All() ([]Zone, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	return zones, nil
}

// Label returns the human-friendly label for an ID, or the ID itself if not found.
func Label(id string) string {
	load()
	if loadErr != nil {
		return id
	}
	if z, ok := byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether the given ID exists in the curated list.
func Valid(id string) bool {
	load()
	if loadErr != nil {
		return false
	}
	_, ok := byID[id]
	return ok
}

// Location resolves a curated zone. Blank means Default.
func Location(id string) (*time.Location, error) {
	if id == "" {
		id = Default
	}
	if !Valid(id) {
		return nil, fmt.Errorf("timezone %q is not supported", id)
	}
	return time.LoadLocation(id)
}

// Clock returns a now func reporting wall time in loc.
func Clock(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}
