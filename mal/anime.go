// Package mal talks to the MyAnimeList REST API: OAuth tokens, anime details, lists and search.
package mal

import (
	"encoding/json"
)

// Picture holds the cover image addresses of an anime.
type Picture struct {
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Anime is the compact entry returned by search.
type Anime struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	MainPicture Picture `json:"main_picture"`
}

// AnimeDetail is the metadata kept for a single anime.
type AnimeDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	MainPicture Picture `json:"main_picture"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	Genres      Genres  `json:"genres"`
}

// Genres is a flat list of genre names.
// It decodes both the API shape [{"id":1,"name":"Action"}] and a plain ["Action"].
// Anything else decodes to an empty list.
type Genres []string

func (g *Genres) UnmarshalJSON(data []byte) error {
	var named []struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &named); err == nil {
		names := make(Genres, 0, len(named))
		for _, n := range named {
			if n.Name == nil {
				*g = Genres{}
				return nil
			}
			names = append(names, *n.Name)
		}
		*g = names
		return nil
	}

	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil && flat != nil {
		*g = flat
		return nil
	}

	*g = Genres{}
	return nil
}

func (g Genres) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(g))
}

// ListRecord is one anime-list entry flattened into a single record.
type ListRecord = map[string]any

// User is the profile returned by /users/@me.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	JoinedAt string `json:"joined_at,omitempty"`
}
