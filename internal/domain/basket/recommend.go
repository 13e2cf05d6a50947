// internal/domain/basket/recommend.go
package basket

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// featuredLimit caps the home page selection.
const featuredLimit = 4

// RecommendationStrategy picks featured baskets from the catalog. Strategies
// run in order; the first one returning a non-empty pick wins.
type RecommendationStrategy interface {
	Name() string
	Featured(baskets []Basket, now time.Time) []Summary
}

var defaultStrategies = []RecommendationStrategy{
	SeasonalStrategy{},
	NewestStrategy{},
}

// Featured returns the storefront's featured selection: seasonal picks when
// the date suggests a theme, the newest baskets otherwise. An empty catalog
// yields an empty list, never an error.
func (s *Service) Featured(now time.Time) ([]Summary, error) {
	var baskets []Basket
	if err := s.db.Find(&baskets).Error; err != nil {
		return nil, fmt.Errorf("failed to load baskets: %w", err)
	}

	for _, strategy := range defaultStrategies {
		if picks := strategy.Featured(baskets, now); len(picks) > 0 {
			return picks, nil
		}
	}
	return []Summary{}, nil
}

// SeasonalStrategy matches baskets against keyword lists for the theme of
// the current month. Months with no theme produce no picks so the chain
// falls through to the newest strategy.
type SeasonalStrategy struct{}

func (SeasonalStrategy) Name() string { return "seasonal" }

var seasonalKeywords = map[string][]string{
	"christmas":  {"craciun", "christmas", "winter", "holiday", "sarbatori"},
	"valentines": {"valentine", "dragoste", "love", "romantic", "hearts"},
	"easter":     {"paste", "easter", "martisor", "spring", "primavara", "bunny"},
	"summer":     {"summer", "vara", "fructe", "fresh", "tropical"},
}

func (SeasonalStrategy) Featured(baskets []Basket, now time.Time) []Summary {
	keywords := seasonalKeywords[seasonalTheme(now.Month())]
	if len(keywords) == 0 {
		return nil
	}

	picks := make([]Summary, 0, featuredLimit)
	for i := range sortedByNewest(baskets) {
		b := &baskets[i]
		if !matchesTheme(b, keywords) {
			continue
		}
		picks = append(picks, b.toSummary())
		if len(picks) == featuredLimit {
			break
		}
	}
	return picks
}

func seasonalTheme(month time.Month) string {
	switch month {
	case time.November, time.December:
		return "christmas"
	case time.January, time.February:
		return "valentines"
	case time.March, time.April:
		return "easter"
	case time.June, time.July, time.August:
		return "summer"
	}
	return ""
}

func matchesTheme(b *Basket, keywords []string) bool {
	haystack := normalizeText(strings.Join([]string{
		b.Title, b.Prompt, b.Category, b.TagsCSV,
	}, " "))
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// NewestStrategy is the fallback: the most recently added baskets.
type NewestStrategy struct{}

func (NewestStrategy) Name() string { return "newest" }

func (NewestStrategy) Featured(baskets []Basket, _ time.Time) []Summary {
	picks := make([]Summary, 0, featuredLimit)
	for i := range sortedByNewest(baskets) {
		picks = append(picks, baskets[i].toSummary())
		if len(picks) == featuredLimit {
			break
		}
	}
	return picks
}

func sortedByNewest(baskets []Basket) []Basket {
	sort.SliceStable(baskets, func(i, j int) bool {
		return baskets[i].CreatedAt.After(baskets[j].CreatedAt)
	})
	return baskets
}
