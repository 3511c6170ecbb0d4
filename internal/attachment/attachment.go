// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/vincent-petithory/dataurl"

	"github.com/jeranaias/doctalk/internal/util"
)

// MaxImageSize is the largest image accepted for inline upload.
// The provider rejects inline payloads above 20 MiB.
const MaxImageSize = 20 * 1024 * 1024

var (
	// ErrInvalidDataURI indicates the string is not a base64 data URI.
	ErrInvalidDataURI = errors.New("invalid data URI")

	// ErrNotImage indicates the file content is not an image.
	ErrNotImage = errors.New("not an image")

	// ErrTooLarge indicates the image exceeds MaxImageSize.
	ErrTooLarge = errors.New("image too large")
)

// Image is a decoded attachment.
type Image struct {
	MediaType string
	Data      []byte
}

// Parse splits a base64 data URI into its media type and payload.
// Only base64-encoded URIs with a non-empty payload are accepted, which is
// the only form FromFile and browser file readers produce.
func Parse(uri string) (Image, error) {
	if !strings.HasPrefix(uri, "data:") {
		return Image{}, ErrInvalidDataURI
	}
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if du.Encoding != dataurl.EncodingBase64 {
		return Image{}, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURI)
	}
	if len(du.Data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}
	return Image{
		MediaType: du.ContentType(),
		Data:      du.Data,
	}, nil
}

// Encode builds a base64 data URI from raw bytes.
func Encode(mediaType string, data []byte) string {
	return dataurl.New(data, mediaType).String()
}

// FromBytes validates that data is an image and returns it as a data URI.
// The media type is sniffed from the content, not taken from a file name.
func FromBytes(data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: %s (limit %s)", ErrTooLarge,
			util.HumanSize(len(data)), util.HumanSize(MaxImageSize))
	}
	mt := mimetype.Detect(data)
	mediaType := baseType(mt.String())
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mediaType)
	}
	return Encode(mediaType, data), nil
}

// FromFile reads an image file and returns it as a data URI.
func FromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotImage, path)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("%w: %s (limit %s)", ErrTooLarge,
			util.HumanSize(int(info.Size())), util.HumanSize(MaxImageSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return FromBytes(data)
}

// Describe returns a short label such as "image/jpeg, 12 KB".
// Unparseable URIs are labelled "image" so the UI never fails on them.
func Describe(uri string) string {
	img, err := Parse(uri)
	if err != nil {
		return "image"
	}
	return img.MediaType + ", " + util.HumanSize(len(img.Data))
}

// baseType strips parameters from a media type ("text/plain; charset=utf-8").
func baseType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(mediaType)
}
