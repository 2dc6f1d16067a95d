package performance

import "errors"

var (
	ErrInvalidSort = errors.New("invalid goal sort key")
	ErrNoConnector = errors.New("no store connector configured")
)
