package calendar

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/sirupsen/logrus"
)

// Export returns the full state stamped with the current time.
func (s *Store) Export() models.Snapshot {
	snap := s.snapshot()
	now := s.clock.Now().UTC()
	snap.ExportedAt = &now
	return snap
}

// Import decodes data and replaces the whole state with it.
func (s *Store) Import(data []byte) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	return s.ImportSnapshot(snap)
}

// ImportSnapshot replaces every routine and workout with snap's. Nothing is
// merged. On a validation error the current state is kept.
func (s *Store) ImportSnapshot(snap models.Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}
	s.replace(canonical(snap))

	s.log.WithFields(logrus.Fields{
		"routines": len(s.categories),
		"workouts": len(s.assignments),
	}).Info("data imported")
	return s.persist("import")
}

func (s *Store) snapshot() models.Snapshot {
	snap := models.Snapshot{
		Categories:  s.Categories(),
		Assignments: make(map[string]string, len(s.assignments)),
	}
	if snap.Categories == nil {
		snap.Categories = []models.Category{}
	}
	for d, id := range s.assignments {
		snap.Assignments[d.String()] = id
	}
	return snap
}

// replace expects an already validated snapshot.
func (s *Store) replace(snap models.Snapshot) {
	s.categories = append([]models.Category(nil), snap.Categories...)
	s.assignments = make(map[models.Date]string, len(snap.Assignments))
	for key, id := range snap.Assignments {
		d, _ := models.ParseDate(key)
		s.assignments[d] = id
	}
}

type rawCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DecodeSnapshot parses a persisted or exported blob. Any structural
// problem is reported as ErrInvalidFormat. Assignment values may be a
// routine id or a one-element array holding one.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return models.Snapshot{}, invalidFormat("not a JSON object")
	}

	rawCats, ok := top["categories"]
	if !ok || isNull(rawCats) {
		return models.Snapshot{}, invalidFormat("missing categories")
	}
	rawAssign, ok := top["assignments"]
	if !ok || isNull(rawAssign) {
		return models.Snapshot{}, invalidFormat("missing assignments")
	}

	var cats []json.RawMessage
	if err := json.Unmarshal(rawCats, &cats); err != nil {
		return models.Snapshot{}, invalidFormat("categories must be a list")
	}

	snap := models.Snapshot{
		Categories:  make([]models.Category, 0, len(cats)),
		Assignments: make(map[string]string),
	}
	for i, raw := range cats {
		var c rawCategory
		if err := json.Unmarshal(raw, &c); err != nil || isNull(raw) {
			return models.Snapshot{}, invalidFormat("category %d is not an object with string id, name and color", i)
		}
		snap.Categories = append(snap.Categories, models.Category{ID: c.ID, Name: c.Name, Color: c.Color})
	}

	var assign map[string]json.RawMessage
	if err := json.Unmarshal(rawAssign, &assign); err != nil {
		return models.Snapshot{}, invalidFormat("assignments must be an object")
	}
	for key, raw := range assign {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && !isNull(raw) {
			snap.Assignments[key] = id
			continue
		}
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil || len(ids) != 1 {
			return models.Snapshot{}, invalidFormat("assignment %q must be a single routine id", key)
		}
		snap.Assignments[key] = ids[0]
	}

	if rawAt, ok := top["exportedAt"]; ok && !isNull(rawAt) {
		if err := json.Unmarshal(rawAt, &snap.ExportedAt); err != nil {
			return models.Snapshot{}, invalidFormat("exportedAt is not an RFC 3339 timestamp")
		}
	}

	if err := ValidateSnapshot(snap); err != nil {
		return models.Snapshot{}, err
	}
	return canonical(snap), nil
}

// ValidateSnapshot checks that snap could be the state of a Store.
func ValidateSnapshot(snap models.Snapshot) error {
	if snap.Categories == nil {
		return invalidFormat("missing categories")
	}
	if snap.Assignments == nil {
		return invalidFormat("missing assignments")
	}

	ids := make(map[string]bool, len(snap.Categories))
	names := make(map[string]bool, len(snap.Categories))
	for i, c := range snap.Categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		switch {
		case c.ID == "":
			return invalidFormat("category %d has no id", i)
		case name == "":
			return invalidFormat("category %q has no name", c.ID)
		case strings.TrimSpace(c.Color) == "":
			return invalidFormat("category %q has no color", c.ID)
		case ids[c.ID]:
			return invalidFormat("duplicate category id %q", c.ID)
		case names[name]:
			return invalidFormat("duplicate category name %q", c.Name)
		}
		ids[c.ID] = true
		names[name] = true
	}

	seen := make(map[models.Date]string, len(snap.Assignments))
	for key, id := range snap.Assignments {
		d, err := models.ParseDate(key)
		if err != nil {
			return invalidFormat("%v", err)
		}
		if other, dup := seen[d]; dup {
			return invalidFormat("dates %q and %q are the same day", other, key)
		}
		seen[d] = key
		if !ids[id] {
			return invalidFormat("assignment %q references unknown category %q", key, id)
		}
	}
	return nil
}

// canonical trims names and colors and rewrites every date key in
// YYYY-MM-DD form.
func canonical(snap models.Snapshot) models.Snapshot {
	out := models.Snapshot{
		Categories:  make([]models.Category, len(snap.Categories)),
		Assignments: make(map[string]string, len(snap.Assignments)),
		ExportedAt:  snap.ExportedAt,
	}
	for i, c := range snap.Categories {
		out.Categories[i] = models.Category{ID: c.ID, Name: strings.TrimSpace(c.Name), Color: strings.TrimSpace(c.Color)}
	}
	for key, id := range snap.Assignments {
		d, _ := models.ParseDate(key)
		out.Assignments[d.String()] = id
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
