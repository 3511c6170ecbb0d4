// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keystore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/doctalk/internal/util"
)

var (
	// ErrNoKey indicates no credential has been stored.
	ErrNoKey = errors.New("no API key stored")

	// ErrEmptyKey indicates an attempt to store a blank credential.
	ErrEmptyKey = errors.New("API key is empty")
)

// =============================================================================
// KEYSTORE INTERFACE
// =============================================================================

// KeyStore stores a single credential string.
type KeyStore interface {
	// Load returns the stored key, or ErrNoKey.
	Load() (string, error)
	// Save stores key after trimming whitespace. Blank keys are rejected.
	Save(key string) error
	// Reset removes the stored key. Resetting an empty store is not an error.
	Reset() error
	// Exists reports whether a key is stored.
	Exists() bool
}

// Normalize trims the key and rejects blank input.
func Normalize(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}

// Fingerprint returns a short, non-reversible identifier for a key that is
// safe to log. Returns "none" for an empty key.
func Fingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return "key_sha256_" + hex.EncodeToString(h[:4])
}

// =============================================================================
// FILE-BASED KEYSTORE
// =============================================================================

// FileKeyStore keeps the key in a file readable only by its owner.
type FileKeyStore struct {
	path string
}

// NewFileKeyStore creates a file-based key store at path.
func NewFileKeyStore(path string) *FileKeyStore {
	return &FileKeyStore{path: path}
}

// DefaultPath returns ~/.doctalk/credential.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".doctalk", "credential"), nil
}

// Path returns the file backing the store.
func (f *FileKeyStore) Path() string {
	return f.path
}

// Load reads the key from the file.
func (f *FileKeyStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoKey
		}
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrNoKey
	}
	return key, nil
}

// Save writes the key atomically with 0600 permissions.
func (f *FileKeyStore) Save(key string) error {
	key, err := Normalize(key)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(f.path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// Reset removes the key file.
func (f *FileKeyStore) Reset() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key file: %w", err)
	}
	return nil
}

// Exists checks whether a non-empty key file exists.
func (f *FileKeyStore) Exists() bool {
	_, err := f.Load()
	return err == nil
}

// =============================================================================
// IN-MEMORY KEYSTORE
// =============================================================================

// MemoryKeyStore keeps the key for the life of the process only.
type MemoryKeyStore struct {
	mu  sync.RWMutex
	key string
}

// NewMemoryKeyStore creates an in-memory store, optionally pre-seeded.
// A blank seed leaves the store empty.
func NewMemoryKeyStore(seed string) *MemoryKeyStore {
	return &MemoryKeyStore{key: strings.TrimSpace(seed)}
}

// Load returns the key, or ErrNoKey.
func (m *MemoryKeyStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.key == "" {
		return "", ErrNoKey
	}
	return m.key, nil
}

// Save stores the key.
func (m *MemoryKeyStore) Save(key string) error {
	key, err := Normalize(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

// Reset forgets the key.
func (m *MemoryKeyStore) Reset() error {
	m.mu.Lock()
	m.key = ""
	m.mu.Unlock()
	return nil
}

// Exists reports whether a key is held.
func (m *MemoryKeyStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key != ""
}
