package application

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// impactKey is the Redis hash holding the marketplace-wide counters.
const impactKey = "impact:summary"

var (
	premiumKeywords = regexp.MustCompile(`(?i)iphone|macbook`)
	brandKeywords   = regexp.MustCompile(`(?i)samsung`)
)

// Impact is the sustainability counter pair shown on the dashboard.
type Impact struct {
	ItemsSold int64 `json:"items_sold"`
	KgSaved   int64 `json:"kg_saved"`
}

// PriceRange bounds a heuristic price suggestion.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// PriceSuggestion is the heuristic listing-price estimate.
type PriceSuggestion struct {
	SuggestedPrice int64      `json:"suggested_price"`
	Range          PriceRange `json:"range"`
}

// InsightService hosts the heuristic marketplace helpers: price
// suggestions and the sustainability impact counters. The counters live in
// a Redis hash so they survive restarts and are shared across instances
// instead of sitting in process-global state.
type InsightService struct {
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewInsightService(rdb *redis.Client, logger *logrus.Logger) *InsightService {
	return &InsightService{Redis: rdb, Logger: logger}
}

// SuggestPrice estimates a second-hand price from category and title
// keywords. Pure heuristic, no data store involved.
func (s *InsightService) SuggestPrice(category, title string) PriceSuggestion {
	base := 1000.0
	if strings.EqualFold(category, "electronics") {
		base = 5000.0
	}
	price := base * 0.7
	if premiumKeywords.MatchString(title) {
		price *= 1.2
	}
	if brandKeywords.MatchString(title) {
		price *= 1.1
	}
	return PriceSuggestion{
		SuggestedPrice: int64(math.Round(price)),
		Range: PriceRange{
			Min: int64(math.Round(price * 0.8)),
			Max: int64(math.Round(price * 1.3)),
		},
	}
}

// RecordSale bumps the impact counters for sold items. Electronics are
// weighted heavier in the CO2 estimate.
func (s *InsightService) RecordSale(ctx context.Context, category string, quantity int64) (Impact, error) {
	if quantity < 1 {
		quantity = 1
	}
	kg := int64(1)
	if strings.EqualFold(category, "electronics") {
		kg = 4
	}
	if s.Redis == nil {
		return Impact{}, nil
	}
	pipe := s.Redis.Pipeline()
	sold := pipe.HIncrBy(ctx, impactKey, "items_sold", quantity)
	saved := pipe.HIncrBy(ctx, impactKey, "kg_saved", kg*quantity)
	if _, err := pipe.Exec(ctx); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("impact update failed")
		}
		return Impact{}, err
	}
	return Impact{ItemsSold: sold.Val(), KgSaved: saved.Val()}, nil
}

// Summary reads the current counters; a missing hash reads as zeros.
func (s *InsightService) Summary(ctx context.Context) (Impact, error) {
	if s.Redis == nil {
		return Impact{}, nil
	}
	var out Impact
	vals, err := s.Redis.HMGet(ctx, impactKey, "items_sold", "kg_saved").Result()
	if err != nil {
		return Impact{}, err
	}
	out.ItemsSold = toInt64(vals[0])
	out.KgSaved = toInt64(vals[1])
	return out, nil
}

func toInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
