// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import "time"

// Default names for the liked-events stream.
const (
	DefaultStreamName   = "MOVIE_CLICKS"
	DefaultSubject      = "movie_clicks"
	DefaultConsumerName = "recommender"
)

// ServerConfig holds embedded NATS server configuration.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// DefaultServerConfig returns production defaults for embedded NATS server.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              4222,
		StoreDir:          "/data/nats/jetstream",
		JetStreamMaxMem:   256 << 20, // 256MB
		JetStreamMaxStore: 1 << 30,   // 1GB
	}
}

// StreamConfig defines the liked-events stream settings.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// DefaultStreamConfig returns the liked-events stream configuration.
// Work-queue retention removes a click once the recommender acks it.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name:            DefaultStreamName,
		Subjects:        []string{DefaultSubject},
		MaxAge:          30 * 24 * time.Hour,
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// PublisherConfig holds publisher configuration.
type PublisherConfig struct {
	URL              string
	Subject          string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool // nolint:revive // ID is correct per Go conventions
}

// DefaultPublisherConfig returns production defaults for publisher.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:              url,
		Subject:          DefaultSubject,
		MaxReconnects:    -1, // Unlimited
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024, // 8MB
		EnableTrackMsgID: true,
	}
}

// SourceConfig configures the pull consumer the resolver drains.
type SourceConfig struct {
	URL            string
	StreamName     string
	Subject        string
	ConsumerName   string
	AckWait        time.Duration
	ConnectTimeout time.Duration
}

// DefaultSourceConfig returns production defaults for the liked-events source.
func DefaultSourceConfig(url string) SourceConfig {
	return SourceConfig{
		URL:            url,
		StreamName:     DefaultStreamName,
		Subject:        DefaultSubject,
		ConsumerName:   DefaultConsumerName,
		AckWait:        30 * time.Second,
		ConnectTimeout: 5 * time.Second,
	}
}
