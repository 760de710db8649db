package naming

import "errors"

var (
	// ErrNilRequest indicates a nil request was passed to the builder.
	ErrNilRequest = errors.New("request is nil")

	// ErrNoComponents indicates every enabled component was blank.
	ErrNoComponents = errors.New("no file name components")

	// ErrExtensionTooLong indicates the extension alone exceeds the name limit.
	ErrExtensionTooLong = errors.New("extension too long")

	// ErrPathTooLong indicates the output directory leaves no room for a name.
	ErrPathTooLong = errors.New("path too long")

	// ErrNameOrTitleRequired indicates both abbreviation and title are blank.
	ErrNameOrTitleRequired = errors.New("abbreviation or title is required")

	// ErrExtensionRequired indicates the extension is blank.
	ErrExtensionRequired = errors.New("extension is required")

	// ErrOutputPathRequired indicates the output path is blank.
	ErrOutputPathRequired = errors.New("output path is required")
)
