// Package models defines journal entry types and the wire shapes used by
// the encrypted cloud sync protocol.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tone is the writing register the user picked when creating an entry.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePersonal Tone = "personal"
	ToneClinical Tone = "clinical"
)

// EntryID identifies one logical entry within a user's collection. Older
// collections used numeric creation timestamps as ids; those are accepted on
// input and canonicalized to their decimal string form.
type EntryID string

func (id *EntryID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = EntryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entry id must be a string or a number, got %s", data)
	}
	*id = EntryID(n.String())
	return nil
}

// ThemeRef is one theme detected in an entry. The ingestion boundary accepts
// both a bare theme name and the full {theme, description} object form;
// both normalize to this struct.
type ThemeRef struct {
	Theme       string `json:"theme"`
	Description string `json:"description,omitempty"`
}

func (t *ThemeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ThemeRef{Theme: s}
		return nil
	}
	type described ThemeRef
	var d described
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("theme must be a string or a {theme, description} object: %w", err)
	}
	*t = ThemeRef(d)
	return nil
}

// Entry is one journal record. Timestamp is authoritative for conflict
// resolution; Date is a redundant display string kept for grouping only.
// A true Deleted flag marks the entry as a tombstone: logically removed,
// but retained so the deletion propagates to other devices.
type Entry struct {
	ID         EntryID    `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Date       string     `json:"date,omitempty"`
	RawInput   string     `json:"rawInput,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Themes     []ThemeRef `json:"themes,omitempty"`
	ShareReady string     `json:"shareReady,omitempty"`
	Tone       Tone       `json:"tone,omitempty"`
	Deleted    bool       `json:"deleted,omitempty"`
}

// NewEntry creates an entry from raw user text, stamped with the current
// instant and a fresh unique id.
func NewEntry(rawInput string, tone Tone) Entry {
	now := time.Now().UTC()
	return Entry{
		ID:        EntryID(uuid.NewString()),
		Timestamp: now,
		Date:      now.Format("2006-01-02"),
		RawInput:  rawInput,
		Tone:      tone,
	}
}

// Tombstone returns a copy of e marked deleted, with a fresh timestamp so
// the deletion wins last-write-wins conflict resolution against stale copies.
func (e Entry) Tombstone() Entry {
	e.Deleted = true
	e.Timestamp = time.Now().UTC()
	return e
}
