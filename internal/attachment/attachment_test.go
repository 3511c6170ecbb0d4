// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jpegHeader is enough of a JPEG for content sniffing.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		wantType  string
		wantBytes string
		wantErr   bool
	}{
		{
			name:      "jpeg",
			uri:       "data:image/jpeg;base64,aGVsbG8=",
			wantType:  "image/jpeg",
			wantBytes: "hello",
		},
		{
			name:      "png",
			uri:       "data:image/png;base64,d29ybGQ=",
			wantType:  "image/png",
			wantBytes: "world",
		},
		{name: "not a data uri", uri: "https://example.com/a.jpg", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
		{name: "not base64", uri: "data:text/plain,hello", wantErr: true},
		{name: "empty payload", uri: "data:image/png;base64,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Parse(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDataURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, img.MediaType)
			assert.Equal(t, tt.wantBytes, string(img.Data))
		})
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	uri := Encode("image/jpeg", jpegHeader)
	assert.Contains(t, uri, "data:image/jpeg")
	assert.Contains(t, uri, ";base64,")

	img, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType)
	assert.Equal(t, jpegHeader, img.Data)
}

func TestFromBytes(t *testing.T) {
	uri, err := FromBytes(pngHeader)
	require.NoError(t, err)
	img, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)

	_, err = FromBytes([]byte("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "photo.bin")
	require.NoError(t, os.WriteFile(path, jpegHeader, 0600))

	uri, err := FromFile(path)
	require.NoError(t, err)
	img, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType, "type comes from content, not extension")

	_, err = FromFile(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)

	_, err = FromFile(dir)
	assert.ErrorIs(t, err, ErrNotImage)

	txt := filepath.Join(dir, "notes.jpg")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0600))
	_, err = FromFile(txt)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "image/jpeg, 5 B", Describe("data:image/jpeg;base64,aGVsbG8="))
	assert.Equal(t, "image", Describe("garbage"))
}
