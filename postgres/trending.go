package postgres

import (
	"context"
	"fmt"
	"time"

	"cinefind/trending"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrendingModel struct {
	SearchTerm string `gorm:"column:search_term;primaryKey"`
	Count      int64  `gorm:"not null;default:1"`
	MovieID    int    `gorm:"column:movie_id;not null"`
	PosterURL  string `gorm:"column:poster_url;not null;default:''"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TrendingModel) TableName() string {
	return "trending_searches"
}

// TrendingRepository implements trending.Repository on a single table keyed
// by search term.
type TrendingRepository struct {
	db *gorm.DB
}

func NewTrendingRepository(db *gorm.DB) *TrendingRepository {
	return &TrendingRepository{db: db}
}

// Increment inserts the entry or, on a conflicting term, bumps its count and
// leaves the stored movie untouched.
func (r *TrendingRepository) Increment(ctx context.Context, e trending.Entry) error {
	model := TrendingModel{
		SearchTerm: e.SearchTerm,
		Count:      1,
		MovieID:    e.MovieID,
		PosterURL:  e.PosterURL,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "search_term"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("trending_searches.count + 1"),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("postgres: increment trending: %w", err)
	}
	return nil
}

func (r *TrendingRepository) Top(ctx context.Context, limit int) ([]trending.Entry, error) {
	if limit <= 0 {
		return []trending.Entry{}, nil
	}

	var models []TrendingModel
	err := r.db.WithContext(ctx).
		Order("count DESC").
		Order("updated_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: top trending: %w", err)
	}

	entries := make([]trending.Entry, len(models))
	for i, m := range models {
		entries[i] = trending.Entry{
			SearchTerm: m.SearchTerm,
			Count:      m.Count,
			MovieID:    m.MovieID,
			PosterURL:  m.PosterURL,
		}
	}
	return entries, nil
}
