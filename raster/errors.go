package raster

import "errors"

var (
	ErrInvalidDataType = errors.New("libraster: invalid data type")
	ErrInvalidLayout   = errors.New("libraster: invalid sample layout")
	ErrLayoutMismatch  = errors.New("libraster: tile layout does not match image")
)
