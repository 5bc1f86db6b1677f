// Package idgen mints run identifiers of the form <prefix>_<suffix>
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen Generator

// Generator returns a fresh identifier on every call
type Generator interface {
	Generate() string
}

// UUID mints random v4 identifiers
type UUID struct {
	prefix string
}

func NewUUID(prefix string) *UUID {
	return &UUID{prefix: prefix}
}

func (u *UUID) Generate() string {
	return withPrefix(u.prefix, uuid.NewString())
}

// Sequential counts up from 1. Safe for concurrent use; ids are only
// unique within one process so it is meant for tests and local tooling.
type Sequential struct {
	prefix string
	next   atomic.Uint64
}

func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (s *Sequential) Generate() string {
	return withPrefix(s.prefix, strconv.FormatUint(s.next.Add(1), 10))
}

func withPrefix(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "_" + suffix
}
