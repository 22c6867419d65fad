// Package study tracks per-device course bookmarks and watch progress.
//
// The store is a non-critical cache: storage failures are logged and
// degrade to safe defaults instead of propagating to callers.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Store persists bookmarks and progress in Redis, keyed by device ID.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore constructs a Store instance.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

func bookmarksKey(device string) string {
	return fmt.Sprintf("study:%s:bookmarks", device)
}

func progressKey(device string) string {
	return fmt.Sprintf("study:%s:progress", device)
}

// Bookmarks returns the current bookmark snapshot, sorted for stable output.
// Returns an empty set when the underlying storage is missing or failing.
func (s *Store) Bookmarks(ctx context.Context, device string) []string {
	ids, err := s.client.SMembers(ctx, bookmarksKey(device)).Result()
	if err != nil {
		s.logger.Warn("study: read bookmarks", slog.String("device", device), slog.Any("error", err))
		return []string{}
	}
	sort.Strings(ids)
	return ids
}

// AddBookmark records a bookmark. Adding an already-present id is a no-op.
func (s *Store) AddBookmark(ctx context.Context, device, courseID string) {
	if err := s.client.SAdd(ctx, bookmarksKey(device), courseID).Err(); err != nil {
		s.logger.Warn("study: add bookmark", slog.String("device", device), slog.Any("error", err))
	}
}

// RemoveBookmark drops a bookmark. Removing an absent id is a no-op.
func (s *Store) RemoveBookmark(ctx context.Context, device, courseID string) {
	if err := s.client.SRem(ctx, bookmarksKey(device), courseID).Err(); err != nil {
		s.logger.Warn("study: remove bookmark", slog.String("device", device), slog.Any("error", err))
	}
}

// SetProgress stores the watch percentage for a course, clamped to [0,100]
// and rounded to the nearest integer.
func (s *Store) SetProgress(ctx context.Context, device, courseID string, percent float64) {
	value := int(math.Round(percent))
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	if err := s.client.HSet(ctx, progressKey(device), courseID, value).Err(); err != nil {
		s.logger.Warn("study: set progress", slog.String("device", device), slog.Any("error", err))
	}
}

// Progress returns the stored percentage for a course, zero when absent
// or unreadable.
func (s *Store) Progress(ctx context.Context, device, courseID string) int {
	raw, err := s.client.HGet(ctx, progressKey(device), courseID).Result()
	if err == redis.Nil {
		return 0
	}
	if err != nil {
		s.logger.Warn("study: read progress", slog.String("device", device), slog.Any("error", err))
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Warn("study: corrupt progress value", slog.String("device", device), slog.String("course", courseID))
		return 0
	}
	return value
}

// ProgressSnapshot returns every stored course percentage for the device.
// Corrupt entries are skipped.
func (s *Store) ProgressSnapshot(ctx context.Context, device string) map[string]int {
	snapshot := make(map[string]int)
	raw, err := s.client.HGetAll(ctx, progressKey(device)).Result()
	if err != nil {
		s.logger.Warn("study: read progress snapshot", slog.String("device", device), slog.Any("error", err))
		return snapshot
	}
	for courseID, v := range raw {
		value, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		snapshot[courseID] = value
	}
	return snapshot
}
