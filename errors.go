package vlist

import "errors"

var (
	// ErrNoRenderer is returned when a row must be materialized but no row
	// renderer is installed.
	ErrNoRenderer = errors.New("vlist: no row renderer")
	// ErrNilNode is returned when a row renderer returns neither a node nor an
	// error.
	ErrNilNode = errors.New("vlist: renderer returned nil node")
	// ErrInvalidRowHeight is returned for row heights below one unit.
	ErrInvalidRowHeight = errors.New("vlist: row height must be at least 1")
)
