// Package ranking resolves the current doubles rank-match snapshot from the
// competition listing and fetches its usage ranking and detail shards.
package ranking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/albapepper/pokedata/internal/provider/home"
)

// RuleDoubles is the rule tag of the double-battle slot within a season.
const RuleDoubles = 1

// ErrNotFound means the listing has no season, or the latest season has no
// doubles slot.
var ErrNotFound = errors.New("ranking: doubles competition not found")

// Slot is one rule slot within a season.
type Slot struct {
	Doubles    bool
	Descriptor home.Descriptor
}

// Season groups the rule slots of one season in listing order.
type Season struct {
	Number int
	Slots  []Slot
}

// Listing is the parsed competition listing.
type Listing struct {
	Seasons []Season
	// Skipped holds season keys that are not integers.
	Skipped []string
}

// ParseListing parses the listing response body. Slot order is kept as it
// appears in the document. An absent or non-object "list" yields an empty
// Listing.
func ParseListing(body []byte) (Listing, error) {
	if !gjson.ValidBytes(body) {
		return Listing{}, fmt.Errorf("parse listing: invalid JSON")
	}

	var l Listing
	list := gjson.GetBytes(body, "list")
	if !list.IsObject() {
		return l, nil
	}

	list.ForEach(func(key, value gjson.Result) bool {
		n, err := strconv.Atoi(strings.TrimSpace(key.String()))
		if err != nil {
			l.Skipped = append(l.Skipped, key.String())
			return true
		}
		l.Seasons = append(l.Seasons, Season{Number: n, Slots: parseSlots(value)})
		return true
	})
	return l, nil
}

func parseSlots(season gjson.Result) []Slot {
	var slots []Slot
	if !season.IsObject() {
		return slots
	}
	season.ForEach(func(_, value gjson.Result) bool {
		rule := value.Get("rule")
		slots = append(slots, Slot{
			Doubles: rule.Type == gjson.Number && rule.Num == RuleDoubles,
			Descriptor: home.Descriptor{
				CompetitionID: value.Get("cId").String(),
				ResultSetID:   value.Get("rst").String(),
				Timestamp:     value.Get("ts2").String(),
			},
		})
		return true
	})
	return slots
}

// Latest returns the season with the numerically largest key. Ties keep
// the first occurrence.
func (l Listing) Latest() (Season, bool) {
	if len(l.Seasons) == 0 {
		return Season{}, false
	}
	latest := l.Seasons[0]
	for _, s := range l.Seasons[1:] {
		if s.Number > latest.Number {
			latest = s
		}
	}
	return latest, true
}

// ResolveDoubles returns the descriptor of the first doubles slot in the
// latest season.
func (l Listing) ResolveDoubles() (home.Descriptor, error) {
	season, ok := l.Latest()
	if !ok {
		return home.Descriptor{}, ErrNotFound
	}
	for _, slot := range season.Slots {
		if slot.Doubles {
			return slot.Descriptor, nil
		}
	}
	return home.Descriptor{}, fmt.Errorf("season %d: %w", season.Number, ErrNotFound)
}
