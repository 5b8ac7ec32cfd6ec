package main

import "errors"

var (
	// ErrNotEnoughSpace occurs when storing a file would drop the write
	// directory's filesystem below its configured free space.
	ErrNotEnoughSpace = errors.New("not enough free space in write directory")

	// ErrNotRegular occurs when a local source is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
)
