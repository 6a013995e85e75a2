package domain

import "errors"

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidItemData = errors.New("invalid item data")
	ErrDuplicateID     = errors.New("duplicate item id")
)
