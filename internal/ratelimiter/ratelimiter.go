package ratelimiter

import "time"

// Limiter decides whether the client behind key may make another request.
// When it refuses, it returns how long the client should wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
