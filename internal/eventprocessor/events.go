// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ClickEvent is the wire payload of a "movie liked" message.
type ClickEvent struct {
	MovieID string `json:"movieId"`
	Clicks  int    `json:"clicks"`
}

// Validate checks required fields.
func (e *ClickEvent) Validate() error {
	if e.MovieID == "" {
		return fmt.Errorf("%w: movieId is required", ErrInvalidEvent)
	}
	return nil
}

// SerializeClick encodes a click event.
func SerializeClick(event *ClickEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(event)
}

// DeserializeClick decodes a click event payload.
func DeserializeClick(data []byte) (*ClickEvent, error) {
	var event ClickEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode click event: %w", err)
	}
	if event.MovieID == "" {
		return nil, fmt.Errorf("decode click event: %w: missing movieId", ErrInvalidEvent)
	}
	return &event, nil
}
