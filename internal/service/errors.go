package service

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoVocabulary     = errors.New("no vocabulary extracted")
	ErrUserNotDelivered = errors.New("message not delivered")
)
