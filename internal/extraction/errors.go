package extraction

import "errors"

var (
	// ErrUnknownLayout means no keyword set matched the receipt text
	ErrUnknownLayout = errors.New("unknown receipt layout")
	// ErrMissingDescription means the extractor ran but found no description
	ErrMissingDescription = errors.New("description not found")
	// ErrMissingDate means the extractor ran but found no valid date
	ErrMissingDate = errors.New("date not found")
)
