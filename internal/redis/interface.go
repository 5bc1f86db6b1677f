package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories and publishers depend on
// an interface that miniredis-backed clients also satisfy
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of missing keys
var Nil = redis.Nil
