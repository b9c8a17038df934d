// Package ioutils provides file system and image helpers.
//
// # File Operations
//
//	// Write a file atomically, creating parent directories
//	err := ioutils.WriteFile(ctx, "/path/to/session.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Cover Thumbnails
//
// The ImageService turns cover art into a block of terminal cells, two
// pixels per cell using the upper half block:
//
//	svc := ioutils.NewImageService()
//	thumb, err := svc.Thumbnail(ctx, coverBytes, 16)
package ioutils
