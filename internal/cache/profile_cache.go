package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

const profileTTL = time.Hour

// New returns a client for the redis server at addr.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

type ProfileCache struct{ R *redis.Client }

func key(userID string) string { return "profile:" + userID }

// entry keeps the image triple, which the public JSON form flattens.
type entry struct {
	Profile model.Profile      `json:"p"`
	Image   *model.StoredImage `json:"i"`
}

// Get returns redis.Nil on a miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*model.Profile, error) {
	b, err := c.R.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return nil, err
	}
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	e.Profile.Image = e.Image
	return &e.Profile, nil
}

func (c *ProfileCache) Set(ctx context.Context, p *model.Profile) error {
	b, err := json.Marshal(entry{Profile: *p, Image: p.Image})
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key(p.UserID), b, profileTTL).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, userID string) error {
	return c.R.Del(ctx, key(userID)).Err()
}

// Pinger adapts the client for readiness checks.
type Pinger struct{ R *redis.Client }

func (p Pinger) PingContext(ctx context.Context) error { return p.R.Ping(ctx).Err() }
