package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for players, results and scheduled matches.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// Sequence returns fixed ids in order, then falls back to uuids. Used by tests
// and seed data that need stable identifiers.
type Sequence struct {
	ids  []string
	next int
}

func NewSequence(ids ...string) *Sequence {
	return &Sequence{ids: ids}
}

func (s *Sequence) NewID() (string, error) {
	if s.next < len(s.ids) {
		v := s.ids[s.next]
		s.next++
		return v, nil
	}
	return NewUUIDGenerator().NewID()
}
