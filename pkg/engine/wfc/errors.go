package wfc

import "errors"

// Construction errors are returned wrapped with context; test them with errors.Is.
var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrEmptyCatalog      = errors.New("empty tile catalog")
	ErrMalformedTileData = errors.New("malformed tile data")

	// ErrIncomplete is returned by PrependEmptyRow while cells are still pending.
	ErrIncomplete = errors.New("grid generation is not complete")

	ErrCollapsed       = errors.New("cell already collapsed")
	ErrTileNotInDomain = errors.New("tile not in cell domain")
	ErrUnknownTile     = errors.New("tile not in catalog")
)
