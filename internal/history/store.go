// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jeranaias/rigsh/internal/util"
)

// Entry is one submitted line.
type Entry struct {
	Index int // 1-based, in submission order
	Text  string
	Time  time.Time
}

// Store is the append-only history of one session.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append records text verbatim and returns the new entry.
func (s *Store) Append(text string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{Index: len(s.entries) + 1, Text: text, Time: s.now()}
	s.entries = append(s.entries, e)
	return e
}

// Get returns the text of the entry at the 1-based index.
func (s *Store) Get(index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 1 || index > len(s.entries) {
		return "", false
	}
	return s.entries[index-1].Text, true
}

// Count returns the number of entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of every entry in order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ExportTo writes each entry as one newline-terminated line, in order.
func (s *Store) ExportTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range s.Entries() {
		if _, err := bw.WriteString(e.Text + "\n"); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Export writes the history to the file at path, replacing it.
func (s *Store) Export(path string) error {
	var buf bytes.Buffer
	if err := s.ExportTo(&buf); err != nil {
		return err
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o644)
}
