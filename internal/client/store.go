package client

import (
	"context"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/pkg/logger"
)

// Source tells where the store's data actually came from.
type Source int

const (
	// SourceRemote means the data is fresh from the API.
	SourceRemote Source = iota
	// SourceCache means the API was unreachable and the last cached
	// snapshot was used.
	SourceCache
	// SourceSeed means neither the API nor the cache was available and
	// the built-in defaults were used.
	SourceSeed
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceCache:
		return "cache"
	case SourceSeed:
		return "seed"
	}
	return "unknown"
}

const (
	cacheKeyAssignments = "assignments"
	cacheKeyMembers     = "team-members"
)

// Store reads the board through the API and degrades gracefully: a remote
// failure falls back to the cached snapshot, a cache miss to the built-in
// seed data. Successful remote reads refresh the cache.
type Store struct {
	client *Client
	cache  *Cache
}

// NewStore creates a store over the given client and cache. The cache may
// be nil, which disables the cached fallback.
func NewStore(client *Client, cache *Cache) *Store {
	return &Store{client: client, cache: cache}
}

// Assignments returns the assignment board and where it came from.
func (s *Store) Assignments(ctx context.Context) ([]models.Assignment, Source) {
	items, err := s.client.ListAllAssignments(ctx, dto.AssignmentListQuery{})
	if err == nil {
		s.saveCache(cacheKeyAssignments, items)
		return items, SourceRemote
	}
	logger.Warn().Err(err).Msg("API unreachable, falling back")

	var cached []models.Assignment
	if s.cache != nil {
		if cacheErr := s.cache.Load(cacheKeyAssignments, &cached); cacheErr == nil {
			return cached, SourceCache
		}
	}

	return seedAssignments(), SourceSeed
}

// Members returns the team roster and where it came from.
func (s *Store) Members(ctx context.Context) ([]models.TeamMember, Source) {
	items, err := s.client.ListAllMembers(ctx, dto.TeamMemberListQuery{IsActive: "all"})
	if err == nil {
		s.saveCache(cacheKeyMembers, items)
		return items, SourceRemote
	}
	logger.Warn().Err(err).Msg("API unreachable, falling back")

	var cached []models.TeamMember
	if s.cache != nil {
		if cacheErr := s.cache.Load(cacheKeyMembers, &cached); cacheErr == nil {
			return cached, SourceCache
		}
	}

	return seedMembers(), SourceSeed
}

func (s *Store) saveCache(key string, v interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(key, v); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to refresh cache")
	}
}
