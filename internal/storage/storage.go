// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded company images. Listings reference
// images by the URL returned on save: a local path under /uploads when
// backed by disk, or an object URL when backed by S3-compatible storage.
package storage

import (
	"context"
	"io"
)

// ImageStore saves and removes uploaded company images.
type ImageStore interface {
	// Save stores an image and returns the URL to record on the listing.
	// ext is the original file extension including the dot.
	Save(ctx context.Context, ext, contentType string, body io.Reader, size int64) (string, error)
	// Remove deletes a previously saved image by its recorded URL.
	// Unrecognized URLs are ignored.
	Remove(ctx context.Context, url string) error
}
