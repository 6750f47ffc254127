// Package dataset turns scraped pages and API results into flat records and keeps them in JSON files,
// one file per anime, merging new records into what is already on disk.
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/malbuddy/malbuddy/mal"
)

// Sentinel is the rating cell text of a user who watched without scoring.
const Sentinel = "-"

// RatingRecord is one user's score for an anime.
type RatingRecord struct {
	User   string `json:"user" jsonschema:"minLength=1"`
	Rating int    `json:"rating" jsonschema:"minimum=1,maximum=10"`
}

// UserRecord is one user seen on an anime's statistics pages.
type UserRecord struct {
	User string `json:"user" jsonschema:"minLength=1"`
}

// ItemRatingRecord is one user's score for one anime in a dataset spanning many anime.
type ItemRatingRecord struct {
	User    string `json:"user" jsonschema:"minLength=1"`
	AnimeID int    `json:"anime_id"`
	Rating  int    `json:"rating" jsonschema:"minimum=1,maximum=10"`
}

// StampRatings attaches itemID to per-anime ratings for the cross-anime dataset.
func StampRatings(itemID int, ratings []RatingRecord) []ItemRatingRecord {
	out := make([]ItemRatingRecord, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, ItemRatingRecord{User: r.User, AnimeID: itemID, Rating: r.Rating})
	}
	return out
}

// FromList converts the scored entries of user's anime list. Unscored entries are dropped.
func FromList(user string, records []mal.ListRecord) []ItemRatingRecord {
	out := make([]ItemRatingRecord, 0, len(records))
	for _, record := range records {
		score, ok := toInt(record["score"])
		if !ok || score <= 0 {
			continue
		}

		id, ok := toInt(record["id"])
		if !ok {
			continue
		}

		out = append(out, ItemRatingRecord{User: user, AnimeID: id, Rating: score})
	}
	return out
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), n == float64(int(n))
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}

// listKey identifies a list record by its anime id.
func listKey(record mal.ListRecord) string {
	return fmt.Sprint(record["id"])
}
