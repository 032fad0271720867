// Package diagnostics writes one-shot, write-only operator snapshots.
// Nothing here is ever read back by the server; it exists purely so an
// operator can inspect what the server loaded at startup. Adapted from
// the teacher's JSON file-export helper, trimmed to the write path only
// since the server never reloads its own state (spec.md's persistence
// non-goal is about server state surviving restart, which this does not
// touch).
package diagnostics

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	"ticketserver/catalog"
)

type eventSnapshot struct {
	EventID          uint32 `json:"event_id"`
	Description      string `json:"description"`
	AvailableTickets uint16 `json:"available_tickets"`
	InitialTickets   uint16 `json:"initial_tickets"`
}

// DumpCatalog writes the catalog's current state to path as JSON.
func DumpCatalog(path string, c *catalog.Catalog) error {
	events := c.Enumerate()
	snapshot := make([]eventSnapshot, len(events))
	for i, ev := range events {
		snapshot[i] = eventSnapshot{
			EventID:          ev.ID,
			Description:      string(ev.Description),
			AvailableTickets: ev.AvailableTickets,
			InitialTickets:   ev.InitialTickets,
		}
	}

	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Errorf("marshal catalog snapshot: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Errorf("write catalog snapshot %q: %w", path, err)
	}
	return nil
}
