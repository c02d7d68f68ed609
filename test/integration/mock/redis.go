package mock

import (
	"fmt"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server shared by every scenario tagged @redis.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var (
	redisOnce   sync.Once
	sharedRedis *Redis
	redisErr    error
)

// SharedRedis starts the server on first use and returns the same instance
// afterwards.
func SharedRedis() (*Redis, error) {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			redisErr = fmt.Errorf("failed to start miniredis: %w", err)
			return
		}
		sharedRedis = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return sharedRedis, redisErr
}

// Reset drops every key so a scenario starts from an empty store.
func (r *Redis) Reset() {
	r.Server.FlushAll()
}
