package services

import (
	"errors"

	"assetserver/src/repositories"
)

var (
	ErrMissingCategory    = errors.New("asset category is required")
	ErrAllocationConflict = errors.New("could not allocate a unique asset id")
	ErrDuplicateAssetID   = errors.New("asset id already in use")
	ErrDuplicateSerial    = errors.New("serial number already registered")
	ErrUnknownKind        = errors.New("unknown asset kind")
	ErrUnknownAction      = errors.New("unknown bulk action")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrUnreadableSource   = errors.New("unreadable source")
	ErrNotFound           = repositories.ErrNotFound
)
