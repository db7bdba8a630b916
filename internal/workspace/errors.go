package workspace

import "errors"

var (
	// ErrNotFound is returned when a referenced panel or tab is absent.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned when a reorder index falls outside the panel.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidPanel is returned when a move targets its own source or an
	// unknown panel.
	ErrInvalidPanel = errors.New("invalid panel")
	// ErrDuplicateTab is returned when a tab id is already placed.
	ErrDuplicateTab = errors.New("duplicate tab")
	// ErrInvalidLayout is returned when a workspace fails validation.
	ErrInvalidLayout = errors.New("invalid layout")
)
