package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/seoforge/content-analyzer/internal/domain"
)

// ErrRuleNotFound is returned when a phrase rule does not exist.
var ErrRuleNotFound = errors.New("phrase rule not found")

// PhraseRulesRepository handles database operations for custom phrase rules.
type PhraseRulesRepository struct {
	db *sqlx.DB
}

// NewPhraseRulesRepository creates a new phrase rules repository.
func NewPhraseRulesRepository(db *sqlx.DB) *PhraseRulesRepository {
	return &PhraseRulesRepository{db: db}
}

// Create inserts a new phrase rule.
func (r *PhraseRulesRepository) Create(ctx context.Context, rule *domain.PhraseRule) error {
	query := `
		INSERT INTO phrase_rules (phrase, is_regex, category, severity, replacements, enabled, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rule.Phrase,
		rule.IsRegex,
		rule.Category,
		rule.Severity,
		pq.Array(rule.Replacements),
		rule.Enabled,
		rule.Priority,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create phrase rule: %w", err)
	}

	return nil
}

// GetByID retrieves a phrase rule by its ID.
func (r *PhraseRulesRepository) GetByID(ctx context.Context, id int) (*domain.PhraseRule, error) {
	var rule domain.PhraseRule
	query := `
		SELECT id, phrase, is_regex, category, severity, replacements, enabled, priority,
		       created_at, updated_at
		FROM phrase_rules
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rule.ID,
		&rule.Phrase,
		&rule.IsRegex,
		&rule.Category,
		&rule.Severity,
		pq.Array(&rule.Replacements),
		&rule.Enabled,
		&rule.Priority,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrRuleNotFound, id)
		}
		return nil, fmt.Errorf("failed to get phrase rule: %w", err)
	}

	return &rule, nil
}

// List retrieves phrase rules with optional filtering.
func (r *PhraseRulesRepository) List(ctx context.Context, category string, enabled *bool) ([]*domain.PhraseRule, error) {
	query := `
		SELECT id, phrase, is_regex, category, severity, replacements, enabled, priority,
		       created_at, updated_at
		FROM phrase_rules
	`

	var whereClauses []string
	var args []any
	argIndex := 1

	if category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, category)
		argIndex++
	}

	if enabled != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("enabled = $%d", argIndex))
		args = append(args, *enabled)
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY priority DESC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list phrase rules: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var rules []*domain.PhraseRule
	for rows.Next() {
		var rule domain.PhraseRule
		if err = rows.Scan(
			&rule.ID,
			&rule.Phrase,
			&rule.IsRegex,
			&rule.Category,
			&rule.Severity,
			pq.Array(&rule.Replacements),
			&rule.Enabled,
			&rule.Priority,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan phrase rule: %w", err)
		}
		rules = append(rules, &rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phrase rules: %w", err)
	}

	return rules, nil
}

// ListEnabled returns all enabled rules, the set the detector loads.
func (r *PhraseRulesRepository) ListEnabled(ctx context.Context) ([]domain.PhraseRule, error) {
	enabled := true
	ptrs, err := r.List(ctx, "", &enabled)
	if err != nil {
		return nil, err
	}
	rules := make([]domain.PhraseRule, len(ptrs))
	for i, p := range ptrs {
		rules[i] = *p
	}
	return rules, nil
}

// Update updates an existing phrase rule.
func (r *PhraseRulesRepository) Update(ctx context.Context, rule *domain.PhraseRule) error {
	query := `
		UPDATE phrase_rules
		SET phrase = $1, is_regex = $2, category = $3, severity = $4,
		    replacements = $5, enabled = $6, priority = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rule.Phrase,
		rule.IsRegex,
		rule.Category,
		rule.Severity,
		pq.Array(rule.Replacements),
		rule.Enabled,
		rule.Priority,
		rule.ID,
	).Scan(&rule.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrRuleNotFound, rule.ID)
		}
		return fmt.Errorf("failed to update phrase rule: %w", err)
	}

	return nil
}

// Delete removes a phrase rule.
func (r *PhraseRulesRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM phrase_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete phrase rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrRuleNotFound, id)
	}

	return nil
}

// Count returns the total number of phrase rules.
func (r *PhraseRulesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM phrase_rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count phrase rules: %w", err)
	}
	return count, nil
}
