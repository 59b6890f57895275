package trash

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
	"github.com/suteru-cli/suteru/internal/config"
	"github.com/suteru-cli/suteru/internal/fs"
)

// Filterable defines the interface that trashed entries must implement to be filtered
type Filterable interface {
	// GetName returns the original name of the entry
	GetName() string
	// GetPath returns the current path in the holding area
	GetPath() string
	// GetDeletedAt returns when the entry was trashed
	GetDeletedAt() time.Time
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
}

// Filter applies filtering rules to a slice of items
func Filter[T Filterable](items []T, opts FilterOptions) []T {
	// Filter by filename exclusions
	items = rejectByNames(items, opts.Exclude.Files)

	// Filter by patterns
	items = rejectByPatterns(items, opts.Exclude.Patterns)

	// Filter by globs
	items = rejectByGlobs(items, opts.Exclude.Globs)

	// Filter by size
	items = rejectBySize(items, opts.Exclude.Size, fs.DirSize)

	// Filter by time period
	items = filterByPeriod(items, opts.Include.Period)

	return items
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}

	return lo.Reject(items, func(item T, index int) bool {
		return lo.Contains(excludeFiles, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	return lo.Reject(items, func(item T, index int) bool {
		for _, pattern := range patterns {
			if matched, err := regexp.MatchString(pattern, item.GetName()); err == nil && matched {
				return true
			}
		}
		return false
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}

	return lo.Reject(items, func(item T, index int) bool {
		for _, g := range globs {
			if glob.MustCompile(g).Match(item.GetName()) {
				return true
			}
		}
		return false
	})
}

func rejectBySize[T Filterable](items []T, size config.SizeConfig, dirSize func(string) (int64, error)) []T {
	if size.Min == "" && size.Max == "" {
		return items
	}

	return lo.Reject(items, func(item T, index int) bool {
		itemSize, err := dirSize(item.GetPath())
		if err != nil {
			return false // keep item if size can't be determined
		}

		if size.Min != "" {
			if min, err := units.FromHumanSize(size.Min); err == nil {
				if itemSize <= min {
					return true
				}
			}
		}
		if size.Max != "" {
			if max, err := units.FromHumanSize(size.Max); err == nil {
				if max <= itemSize {
					return true
				}
			}
		}
		return false
	})
}

func filterByPeriod[T Filterable](items []T, period int) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}

	return lo.Filter(items, func(item T, index int) bool {
		return time.Since(item.GetDeletedAt()) < d
	})
}
