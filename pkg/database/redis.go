package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

var RDB *redis.Client

// InitRedis connects the Redis client used for chat histories and
// ingestion retry counters.
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Info("Redis client connected successfully")
}
