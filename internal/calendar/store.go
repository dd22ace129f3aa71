// Package calendar holds the routines a user defined and the routine
// logged on each day, and keeps the two consistent.
package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/misterclayt0n/fitcal/internal/storage"
	"github.com/sirupsen/logrus"
)

// DataKey is the blob store key the whole state is saved under.
const DataKey = "fitcal-data"

// Store owns the routine list and the date -> routine id map. Each day has
// at most one routine. Every mutation is written through to the blob store.
type Store struct {
	blobs storage.BlobStore
	clock Clock
	newID func() string
	log   *logrus.Entry

	categories  []models.Category
	assignments map[models.Date]string
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Store) { s.log = l }
}

// New loads the state saved in blobs. An empty blob store yields an empty
// calendar; a blob that fails validation is an ErrInvalidFormat error and
// is left untouched.
func New(blobs storage.BlobStore, opts ...Option) (*Store, error) {
	s := &Store{
		blobs:       blobs,
		clock:       systemClock{},
		newID:       uuid.NewString,
		log:         logrus.NewEntry(logrus.StandardLogger()),
		assignments: make(map[models.Date]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "calendar")

	data, err := blobs.Get(DataKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		s.log.Debug("no saved data, starting empty")
		return s, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", DataKey, err)
	}
	s.replace(snap)

	s.log.WithFields(logrus.Fields{
		"routines": len(s.categories),
		"workouts": len(s.assignments),
	}).Debug("data loaded")
	return s, nil
}

// Today is the current local date, read from the clock on every call.
func (s *Store) Today() models.Date {
	return models.DateOf(s.clock.Now())
}

// IsFuture reports whether d is strictly after today.
func (s *Store) IsFuture(d models.Date) bool {
	return d.After(s.Today())
}

// Categories returns the routines in display order.
func (s *Store) Categories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) Category(id string) (models.Category, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.categories[i], true
	}
	return models.Category{}, false
}

// CategoryByName matches case-insensitively, ignoring surrounding space.
func (s *Store) CategoryByName(name string) (models.Category, bool) {
	if i := s.indexOfName(name, ""); i >= 0 {
		return s.categories[i], true
	}
	return models.Category{}, false
}

func (s *Store) AddCategory(name, color string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrEmptyName
	}
	if s.indexOfName(name, "") >= 0 {
		return models.Category{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	color = strings.TrimSpace(color)
	if color == "" {
		color = models.DefaultColor
	}

	c := models.Category{ID: s.newID(), Name: name, Color: color}
	s.categories = append(s.categories, c)
	s.log.WithFields(logrus.Fields{"id": c.ID, "name": c.Name}).Debug("routine added")

	return c, s.persist("add routine")
}

// UpdateCategory renames and/or recolors a routine. An empty name or color
// keeps the current value. Assignments reference ids, so nothing else moves.
func (s *Store) UpdateCategory(id, name, color string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if name != "" && s.indexOfName(name, id) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	if name != "" {
		s.categories[i].Name = name
	}
	if color != "" {
		s.categories[i].Color = color
	}
	s.log.WithFields(logrus.Fields{"id": id, "name": s.categories[i].Name}).Debug("routine updated")

	return s.persist("update routine")
}

// DeleteCategory removes a routine and every day it was logged on.
func (s *Store) DeleteCategory(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.categories = append(s.categories[:i:i], s.categories[i+1:]...)

	removed := 0
	for d, ref := range s.assignments {
		if ref == id {
			delete(s.assignments, d)
			removed++
		}
	}
	s.log.WithFields(logrus.Fields{"id": id, "workouts_removed": removed}).Debug("routine deleted")

	return s.persist("delete routine")
}

// SetAssignment logs categoryID on date. An empty categoryID clears the day.
func (s *Store) SetAssignment(date models.Date, categoryID string) error {
	if categoryID == "" {
		return s.ClearAssignment(date)
	}
	if s.indexOf(categoryID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	if s.IsFuture(date) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}

	s.assignments[date] = categoryID
	s.log.WithFields(logrus.Fields{"date": date.String(), "id": categoryID}).Debug("workout logged")

	return s.persist("log workout")
}

// ClearAssignment is a no-op for a day with nothing logged.
func (s *Store) ClearAssignment(date models.Date) error {
	if _, ok := s.assignments[date]; !ok {
		return nil
	}

	delete(s.assignments, date)
	s.log.WithField("date", date.String()).Debug("workout cleared")

	return s.persist("clear workout")
}

// Assignment returns the routine id logged on date.
func (s *Store) Assignment(date models.Date) (string, bool) {
	id, ok := s.assignments[date]
	return id, ok
}

// Assignments returns a copy of every logged day.
func (s *Store) Assignments() map[models.Date]string {
	out := make(map[models.Date]string, len(s.assignments))
	for d, id := range s.assignments {
		out[d] = id
	}
	return out
}

// MonthAssignments returns the logged days of one month in date order.
func (s *Store) MonthAssignments(year int, month time.Month) []models.Date {
	var days []models.Date
	for d := range s.assignments {
		if d.Year == year && d.Month == month {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// SeedExamples adds the example routines to a store that has none and
// returns how many were added.
func (s *Store) SeedExamples() (int, error) {
	if len(s.categories) > 0 {
		return 0, nil
	}
	for _, ex := range models.ExampleCategories {
		s.categories = append(s.categories, models.Category{ID: s.newID(), Name: ex.Name, Color: ex.Color})
	}
	return len(models.ExampleCategories), s.persist("seed routines")
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// indexOfName finds a routine named name, skipping the one with id exceptID.
func (s *Store) indexOfName(name, exceptID string) int {
	name = strings.TrimSpace(name)
	for i, c := range s.categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// persist writes the state. A failure leaves memory as it is.
func (s *Store) persist(op string) error {
	data, err := json.Marshal(s.snapshot())
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.blobs.Put(DataKey, data); err != nil {
		s.log.WithError(err).WithField("op", op).Warn("failed to save data, keeping in-memory state")
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
