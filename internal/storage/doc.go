// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the chat transcript for doctalk.
//
// Messages are kept in a SQLite database (pure Go driver, no cgo) so the
// chat screen can restore the previous session and `doctalk history` can
// list it.
//
// # Usage
//
//	store, err := storage.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Append(msg)
//	recent, err := store.List(50)
//
// # Storage Location
//
// The default database is ~/.doctalk/history.db.
package storage
