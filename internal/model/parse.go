// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes snapshots from JSON and computes their content hash.

package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrParse is the sentinel for snapshots that are not valid JSON documents.
var ErrParse = errors.New("snapshot parse error")

// ParseError reports a snapshot document that could not be decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse snapshot: %v", e.Err)
	}
	return fmt.Sprintf("parse snapshot %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// Parse decodes a snapshot document. Numbers are kept as json.Number so that
// literal values keep their original spelling.
func Parse(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, &ParseError{Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Err: errors.New("unexpected data after snapshot document")}
	}
	return &snap, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) (*Snapshot, error) {
	return Parse(bytes.NewReader(b))
}

// LoadFile reads and decodes the snapshot stored at path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return nil, err
	}
	return snap, nil
}

// Hash returns a hex sha256 over the canonical JSON encoding of the snapshot.
// Slice order is part of the hash because it drives emission order.
func Hash(snap *Snapshot) (string, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("hash snapshot: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
