// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package validation wraps go-playground/validator v10 with a shared,
// lazily built validator and error messages in the API's VALIDATION_ERROR
// format.
//
// Field names in messages follow the json tag (request bodies) or koanf tag
// (configuration), and nested fields are reported by path, e.g.
// "recommend.max_k". A custom "notblank" tag rejects whitespace-only strings.
//
// Usage in a handler:
//
//	var req ClickRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
