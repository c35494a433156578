// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"net/url"
)

// validateHTTPURL checks a base URL: http or https scheme, a host, and no
// path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := validateEndpointURLParsed(rawURL, fieldName)
	if err != nil {
		return err
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

// validateEndpointURL checks a full http(s) URL. Paths and queries are allowed.
func validateEndpointURL(rawURL, fieldName string) error {
	_, err := validateEndpointURLParsed(rawURL, fieldName)
	return err
}

func validateEndpointURLParsed(rawURL, fieldName string) (*url.URL, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("%s host is required", fieldName)
	}
	return parsedURL, nil
}

// validateNATSURL accepts nats://, tls://, ws:// and wss:// URLs with a host.
func validateNATSURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	validSchemes := map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222)")
	}
	return nil
}

// validateMongoURI accepts mongodb:// and mongodb+srv:// connection strings.
func validateMongoURI(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URI: %w", err)
	}
	if parsedURL.Scheme != "mongodb" && parsedURL.Scheme != "mongodb+srv" {
		return fmt.Errorf("scheme must be mongodb or mongodb+srv, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
