package domain

import "errors"

var (
	// ErrInvalidInterval возвращается при попытке построить интервал с start >= end
	ErrInvalidInterval = errors.New("invalid interval: start must be before end")
)
