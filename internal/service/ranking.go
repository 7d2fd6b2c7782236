// Package service contains business logic implementations for the application.
package service

import (
	"math"
	"sort"
	"time"

	"launchpad/internal/models"
)

// SortStrategy selects the feed ordering.
type SortStrategy string

const (
	SortNewest   SortStrategy = "newest"
	SortTopVoted SortStrategy = "top_voted"
	SortTrending SortStrategy = "trending"
)

const (
	trendingAgeOffset = 2.0
	trendingExponent  = 1.5
)

// ParseSortStrategy maps a query value onto a known strategy; anything
// unrecognized (including empty) falls back to newest.
func ParseSortStrategy(s string) SortStrategy {
	switch SortStrategy(s) {
	case SortTopVoted:
		return SortTopVoted
	case SortTrending:
		return SortTrending
	default:
		return SortNewest
	}
}

// TrendingScore computes likes / (ageHours + 2)^1.5 for a project.
// Clock skew can make a submission appear newer than now; negative ages
// clamp to zero so the score stays finite and ordering stays total.
func TrendingScore(likeCount int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(likeCount) / math.Pow(ageHours+trendingAgeOffset, trendingExponent)
}

// Rank orders projects in place according to the strategy. The sort is
// stable, so equal keys preserve their input order. Newest relies on the
// repository returning reverse chronological order and leaves the slice
// untouched.
func Rank(projects []*models.Project, strategy SortStrategy, now time.Time) {
	switch strategy {
	case SortTopVoted:
		sort.SliceStable(projects, func(i, j int) bool {
			if projects[i].LikeCount != projects[j].LikeCount {
				return projects[i].LikeCount > projects[j].LikeCount
			}
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
	case SortTrending:
		scores := make(map[uint]float64, len(projects))
		for _, p := range projects {
			scores[p.ID] = TrendingScore(p.LikeCount, p.CreatedAt, now)
		}
		sort.SliceStable(projects, func(i, j int) bool {
			si, sj := scores[projects[i].ID], scores[projects[j].ID]
			if si != sj {
				return si > sj
			}
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		})
	}
}
