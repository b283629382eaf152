package service

import "errors"

var (
	ErrSourceNotAllowed = errors.New("image source is not allowed")

	ErrUpstreamFetch  = errors.New("error fetching image from upstream")
	ErrUpstreamStatus = errors.New("upstream returned non-success status")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
