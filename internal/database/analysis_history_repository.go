package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/seoforge/content-analyzer/internal/domain"
)

// ErrHistoryNotFound is returned when no analysis exists for a content ID.
var ErrHistoryNotFound = errors.New("analysis history not found")

// AnalysisHistoryRepository handles database operations for the analysis
// audit trail.
type AnalysisHistoryRepository struct {
	db *sqlx.DB
}

// NewAnalysisHistoryRepository creates a new analysis history repository.
func NewAnalysisHistoryRepository(db *sqlx.DB) *AnalysisHistoryRepository {
	return &AnalysisHistoryRepository{db: db}
}

// Create inserts a new analysis history record.
func (r *AnalysisHistoryRepository) Create(ctx context.Context, history *domain.AnalysisHistory) error {
	query := `
		INSERT INTO analysis_history (
			content_id, content_url, project_id, keyword,
			phrase_score, phrase_match_count, phrase_categories,
			hallucination_score, flag_count, eeat_score, readability_score,
			overall_score, risk_level, confidence, analyzer_version,
			processing_time_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, analyzed_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		history.ContentID,
		history.ContentURL,
		history.ProjectID,
		history.Keyword,
		history.PhraseScore,
		history.PhraseMatchCount,
		pq.Array(history.PhraseCategories),
		history.HallucinationScore,
		history.FlagCount,
		history.EeatScore,
		history.ReadabilityScore,
		history.OverallScore,
		history.RiskLevel,
		history.Confidence,
		history.AnalyzerVersion,
		history.ProcessingTimeMs,
	).Scan(&history.ID, &history.AnalyzedAt)

	if err != nil {
		return fmt.Errorf("failed to create analysis history: %w", err)
	}

	return nil
}

// GetByContentID retrieves the most recent analysis for a content ID.
func (r *AnalysisHistoryRepository) GetByContentID(ctx context.Context, contentID string) (*domain.AnalysisHistory, error) {
	var history domain.AnalysisHistory
	query := `
		SELECT id, content_id, content_url, project_id, keyword,
		       phrase_score, phrase_match_count, phrase_categories,
		       hallucination_score, flag_count, eeat_score, readability_score,
		       overall_score, risk_level, confidence, analyzer_version,
		       processing_time_ms, analyzed_at
		FROM analysis_history
		WHERE content_id = $1
		ORDER BY analyzed_at DESC
		LIMIT 1
	`

	err := r.db.QueryRowContext(ctx, query, contentID).Scan(
		&history.ID,
		&history.ContentID,
		&history.ContentURL,
		&history.ProjectID,
		&history.Keyword,
		&history.PhraseScore,
		&history.PhraseMatchCount,
		pq.Array(&history.PhraseCategories),
		&history.HallucinationScore,
		&history.FlagCount,
		&history.EeatScore,
		&history.ReadabilityScore,
		&history.OverallScore,
		&history.RiskLevel,
		&history.Confidence,
		&history.AnalyzerVersion,
		&history.ProcessingTimeMs,
		&history.AnalyzedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrHistoryNotFound, contentID)
		}
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}

	return &history, nil
}

// ListByContentID retrieves all analyses for a content ID, newest first.
func (r *AnalysisHistoryRepository) ListByContentID(ctx context.Context, contentID string, limit int) ([]*domain.AnalysisHistory, error) {
	query := `
		SELECT id, content_id, content_url, project_id, keyword,
		       phrase_score, phrase_match_count, phrase_categories,
		       hallucination_score, flag_count, eeat_score, readability_score,
		       overall_score, risk_level, confidence, analyzer_version,
		       processing_time_ms, analyzed_at
		FROM analysis_history
		WHERE content_id = $1
		ORDER BY analyzed_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, contentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*domain.AnalysisHistory
	for rows.Next() {
		var h domain.AnalysisHistory
		if err = rows.Scan(
			&h.ID,
			&h.ContentID,
			&h.ContentURL,
			&h.ProjectID,
			&h.Keyword,
			&h.PhraseScore,
			&h.PhraseMatchCount,
			pq.Array(&h.PhraseCategories),
			&h.HallucinationScore,
			&h.FlagCount,
			&h.EeatScore,
			&h.ReadabilityScore,
			&h.OverallScore,
			&h.RiskLevel,
			&h.Confidence,
			&h.AnalyzerVersion,
			&h.ProcessingTimeMs,
			&h.AnalyzedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis history: %w", err)
		}
		records = append(records, &h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis history: %w", err)
	}

	return records, nil
}

// GetStats retrieves overall analysis statistics.
func (r *AnalysisHistoryRepository) GetStats(ctx context.Context) (*domain.AnalysisStats, error) {
	var stats domain.AnalysisStats

	query := `
		SELECT
			COUNT(*) as total_analyzed,
			COALESCE(AVG(overall_score), 0) as avg_overall_score,
			COALESCE(AVG(eeat_score), 0) as avg_eeat_score,
			COALESCE(AVG(phrase_score), 0) as avg_phrase_score,
			SUM(CASE WHEN risk_level IN ('high', 'critical') THEN 1 ELSE 0 END) as high_risk_count,
			COALESCE(AVG(processing_time_ms), 0) as avg_processing_time_ms
		FROM analysis_history
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalAnalyzed,
		&stats.AvgOverallScore,
		&stats.AvgEeatScore,
		&stats.AvgPhraseScore,
		&stats.HighRiskCount,
		&stats.AvgProcessingTimeMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis stats: %w", err)
	}

	return &stats, nil
}

// GetRiskStats retrieves the risk-level distribution.
func (r *AnalysisHistoryRepository) GetRiskStats(ctx context.Context) ([]*domain.RiskBucketStat, error) {
	var stats []*domain.RiskBucketStat

	query := `
		SELECT risk_level, COUNT(*) as count
		FROM analysis_history
		GROUP BY risk_level
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get risk stats: %w", err)
	}

	return stats, nil
}

// GetCategoryStats retrieves the phrase-category hit distribution.
func (r *AnalysisHistoryRepository) GetCategoryStats(ctx context.Context) ([]*domain.CategoryStat, error) {
	var stats []*domain.CategoryStat

	query := `
		SELECT
			unnest(phrase_categories) as category,
			COUNT(*) as count
		FROM analysis_history
		WHERE phrase_categories IS NOT NULL AND array_length(phrase_categories, 1) > 0
		GROUP BY category
		ORDER BY count DESC
		LIMIT 20
	`

	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}

	return stats, nil
}
