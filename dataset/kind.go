package dataset

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/malbuddy/malbuddy/mal"
	"github.com/samber/lo"
)

// Kind names a record type and the key that identifies a record within a dataset.
type Kind[T any] struct {
	Name string
	Key  func(T) string
}

var (
	Ratings = Kind[RatingRecord]{
		Name: "ratings",
		Key:  func(r RatingRecord) string { return r.User },
	}

	Users = Kind[UserRecord]{
		Name: "users",
		Key:  func(r UserRecord) string { return r.User },
	}

	ItemRatings = Kind[ItemRatingRecord]{
		Name: "item_ratings",
		Key:  func(r ItemRatingRecord) string { return fmt.Sprintf("%s\x00%d", r.User, r.AnimeID) },
	}

	Lists = Kind[mal.ListRecord]{
		Name: "lists",
		Key:  listKey,
	}

	Details = Kind[mal.AnimeDetail]{
		Name: "details",
		Key:  func(d mal.AnimeDetail) string { return fmt.Sprint(d.ID) },
	}
)

// KindNames lists the names of every kind.
func KindNames() []string {
	return []string{Ratings.Name, Users.Name, ItemRatings.Name, Lists.Name, Details.Name}
}

// Merge concatenates fresh before existing and keeps the first record of every key.
func (k Kind[T]) Merge(fresh, existing []T) []T {
	all := make([]T, 0, len(fresh)+len(existing))
	all = append(all, fresh...)
	all = append(all, existing...)
	return lo.UniqBy(all, k.Key)
}

// Schema describes a dataset of this kind as a JSON array of records.
func (k Kind[T]) Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true

	schema := reflector.Reflect([]T{})
	schema.Title = k.Name
	return schema
}
