// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how limit/offset navigation is requested via query parameters
// and how the resulting page is delivered as {count, next, previous, results}.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/yamdb/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100

	// LimitParam and OffsetParam are the query parameter names.
	LimitParam  = "limit"
	OffsetParam = "offset"
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	Limit  int
	Offset int
}

// Page is the JSON envelope for every collection response.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or non-positive limits fall back to [DefaultLimit]; limits above
// [MaxLimit] are clamped to it. Negative or malformed offsets become 0.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	limit := convert.ToIntD(query.Get(LimitParam), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := convert.ToIntD(query.Get(OffsetParam), 0)
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// NewPage builds the envelope for results fetched with params out of count
// total rows. Links are absolute and preserve every other query parameter.
func NewPage[T any](r *http.Request, params Params, results []T, count int) Page[T] {
	if results == nil {
		results = []T{}
	}

	page := Page[T]{Count: count, Results: results}

	if params.Offset+params.Limit < count {
		next := pageURL(r, params.Limit, params.Offset+params.Limit)
		page.Next = &next
	}

	if params.Offset > 0 {
		previousOffset := params.Offset - params.Limit
		if previousOffset < 0 {
			previousOffset = 0
		}
		previous := pageURL(r, params.Limit, previousOffset)
		page.Previous = &previous
	}

	return page
}

// pageURL rewrites the limit/offset pair on the current request URL.
func pageURL(r *http.Request, limit, offset int) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	query := r.URL.Query()
	query.Set(LimitParam, strconv.Itoa(limit))
	if offset > 0 {
		query.Set(OffsetParam, strconv.Itoa(offset))
	} else {
		query.Del(OffsetParam)
	}

	link := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	return link.String()
}
