package domain

import "errors"

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrInvalidPriceRange = errors.New("invalid price range")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrRelayRejected     = errors.New("form relay rejected submission")
)
