package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/seoforge/content-analyzer/internal/database"
	"github.com/seoforge/content-analyzer/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		_ = mockDB.Close()
	})

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestPhraseRulesRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO phrase_rules").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(7, now, now))

	rule := &domain.PhraseRule{
		Phrase:       "quantum listicle",
		Category:     domain.CategorySpam,
		Severity:     domain.SeverityMajor,
		Replacements: []string{"structured guide"},
		Enabled:      true,
		Priority:     10,
	}

	if err := repo.Create(context.Background(), rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule.ID != 7 {
		t.Errorf("expected assigned ID 7, got %d", rule.ID)
	}
	if rule.CreatedAt.IsZero() || rule.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be populated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPhraseRulesRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	now := time.Now()
	columns := []string{
		"id", "phrase", "is_regex", "category", "severity", "replacements",
		"enabled", "priority", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM phrase_rules").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, "synergy", false, "filler", 2, "{collaboration}", true, 0, now, now))

	rule, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule.Phrase != "synergy" {
		t.Errorf("expected phrase %q, got %q", "synergy", rule.Phrase)
	}
	if len(rule.Replacements) != 1 || rule.Replacements[0] != "collaboration" {
		t.Errorf("unexpected replacements: %v", rule.Replacements)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPhraseRulesRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM phrase_rules").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, database.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestPhraseRulesRepository_ListEnabled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	now := time.Now()
	columns := []string{
		"id", "phrase", "is_regex", "category", "severity", "replacements",
		"enabled", "priority", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM phrase_rules WHERE enabled").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "delve into", false, "ai_cliche", 1, nil, true, 0, now, now).
			AddRow(2, "game-changer", false, "ai_cliche", 2, "{improvement}", true, 5, now, now))

	rules, err := repo.ListEnabled(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Phrase != "delve into" || rules[1].Phrase != "game-changer" {
		t.Errorf("unexpected rules: %+v", rules)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPhraseRulesRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	mock.ExpectQuery("UPDATE phrase_rules").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	rule := &domain.PhraseRule{
		ID:       4,
		Phrase:   "leverage",
		Category: domain.CategoryFiller,
		Severity: domain.SeverityMinor,
		Enabled:  true,
	}
	if err := repo.Update(context.Background(), rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPhraseRulesRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	mock.ExpectExec("DELETE FROM phrase_rules").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPhraseRulesRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	mock.ExpectExec("DELETE FROM phrase_rules").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, database.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestPhraseRulesRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewPhraseRulesRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
}
