// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attachment handles image attachments carried as data URIs.
//
// Images travel through doctalk the same way the web client carried them:
// as self-describing "data:<media-type>;base64,<payload>" strings. This
// package turns files into such strings, parses them back into a media type
// and raw bytes for the provider, and produces short labels for the UI.
//
// # Usage
//
//	uri, err := attachment.FromFile("rash.jpg")
//	img, err := attachment.Parse(uri)
//	fmt.Println(img.MediaType, len(img.Data)) // image/jpeg 48213
package attachment
