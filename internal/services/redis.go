package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// Pub/sub channels for the presentation layer. Subscribers (polling
// endpoints, UI gateways) refresh their lists when an event arrives; the
// core never depends on anyone listening.
const (
	TripEventsChannel = "trip:events"
	BidEventsChannel  = "bid:events"
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// PublishTripEvent publishes a trip lifecycle event (created, cancelled,
// booked, completed) to the trip events channel.
func PublishTripEvent(ctx context.Context, tripID uint, event string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"tripId":    tripID,
		"event":     event,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, TripEventsChannel, jsonData).Err()
}

// PublishBidEvent publishes a bid lifecycle event (submitted, accepted,
// rejected) to the bid events channel.
func PublishBidEvent(ctx context.Context, bidID, tripID uint, event string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"bidId":     bidID,
		"tripId":    tripID,
		"event":     event,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, BidEventsChannel, jsonData).Err()
}
