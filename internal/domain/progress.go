package domain

import (
	"fmt"
	"sort"
)

// FallbackEpisodeCount is used when the catalog has no usable episode count.
const FallbackEpisodeCount = 1000

type Position struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

func (p Position) String() string {
	return fmt.Sprintf("S%d E%d", p.Season, p.Episode)
}

func (m EpisodeMark) Validate() error {
	if m.Season < 1 {
		return fmt.Errorf("%w: season must be >= 1", ErrInvalidInput)
	}
	if m.Episode < 1 {
		return fmt.Errorf("%w: episode must be >= 1", ErrInvalidInput)
	}
	return nil
}

// MergeMark overwrites the watched flag of an existing (season, episode) mark
// or appends a new one. The input slice is not modified.
func MergeMark(progress []EpisodeMark, mark EpisodeMark) []EpisodeMark {
	merged := make([]EpisodeMark, len(progress), len(progress)+1)
	copy(merged, progress)

	for i := range merged {
		if merged[i].Season == mark.Season && merged[i].Episode == mark.Episode {
			merged[i].Watched = mark.Watched
			return merged
		}
	}
	return append(merged, mark)
}

// CurrentEpisode is the episode after the furthest watched one, or S1 E1.
func CurrentEpisode(progress []EpisodeMark) Position {
	var latest *EpisodeMark
	for i := range progress {
		m := &progress[i]
		if !m.Watched {
			continue
		}
		if latest == nil || m.Season > latest.Season ||
			(m.Season == latest.Season && m.Episode > latest.Episode) {
			latest = m
		}
	}
	if latest == nil {
		return Position{Season: 1, Episode: 1}
	}
	return Position{Season: latest.Season, Episode: latest.Episode + 1}
}

func WatchedCount(progress []EpisodeMark) int {
	n := 0
	for _, m := range progress {
		if m.Watched {
			n++
		}
	}
	return n
}

// CompletionFraction is watched marks over total episodes. It is not clamped:
// progress recorded beyond the total yields values above 1.
func CompletionFraction(progress []EpisodeMark, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(WatchedCount(progress)) / float64(total)
}

// TotalEpisodes sums per-season counts when present, otherwise uses the
// catalog episode count, otherwise fallback.
func TotalEpisodes(item CatalogItem, fallback int) int {
	if fallback <= 0 {
		fallback = FallbackEpisodeCount
	}
	if len(item.Seasons) > 0 {
		total := 0
		for _, n := range item.Seasons {
			total += n
		}
		return total
	}
	if item.Episodes != nil && *item.Episodes > 0 {
		return *item.Episodes
	}
	return fallback
}

// Seasons returns the per-season episode counts of item. Without per-season
// data the whole run is treated as season 1.
func Seasons(item CatalogItem, total int) map[int]int {
	if len(item.Seasons) == 0 {
		return map[int]int{1: total}
	}
	out := make(map[int]int, len(item.Seasons))
	for s, n := range item.Seasons {
		out[s] = n
	}
	return out
}

func SortedSeasonNumbers(seasons map[int]int) []int {
	nums := make([]int, 0, len(seasons))
	for s := range seasons {
		nums = append(nums, s)
	}
	sort.Ints(nums)
	return nums
}
