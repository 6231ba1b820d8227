package entity

import "errors"

var (
	// ErrSideNotFound is returned when no side exists for an edge.
	ErrSideNotFound = errors.New("side not found")
	// ErrPanelNotFound is returned when a panel id or name does not resolve.
	ErrPanelNotFound = errors.New("panel not found")
	// ErrSoloOccupied is returned when a solo container already holds its content.
	ErrSoloOccupied = errors.New("solo panel cannot hold more than one content")
	// ErrNilContent is returned when a nil content handle is bound.
	ErrNilContent = errors.New("content must not be nil")
	// ErrDegenerateLayout is returned when a side has no extent to lay out.
	ErrDegenerateLayout = errors.New("degenerate layout")
	// ErrUnknownEdge is returned when an edge name does not parse.
	ErrUnknownEdge = errors.New("unknown edge")
	// ErrInvalidPanelID is returned when a decor id is malformed.
	ErrInvalidPanelID = errors.New("invalid panel id")
)
