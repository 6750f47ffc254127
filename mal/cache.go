package mal

import (
	"time"

	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// detailsLifetime bounds how long fetched details are served from disk.
const detailsLifetime = time.Hour * 24 * 2

type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a keyed view over a single gache file.
type cacher[K comparable, T any] struct {
	internal   *gache.Cache[*cacheData[K, T]]
	keyWrapper func(K) K
}

func newCacher[K comparable, T any](path string, lifetime time.Duration, keyWrapper func(K) K) *cacher[K, T] {
	if keyWrapper == nil {
		keyWrapper = func(k K) K { return k }
	}

	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
		keyWrapper: keyWrapper,
	}
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[c.keyWrapper(key)]; ok {
		return mo.Some(value)
	}
	return mo.None[T]()
}

func (c *cacher[K, T]) Set(key K, t T) error {
	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[c.keyWrapper(key)] = t
	return c.internal.Set(data)
}

func (c *cacher[K, T]) Delete(key K) error {
	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return err
	}

	delete(data.Entries, c.keyWrapper(key))
	return c.internal.Set(data)
}
