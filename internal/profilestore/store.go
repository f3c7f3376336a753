// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profilestore persists aggregated profiles: one JSON document per
// analysis run plus a SQLite index for listing and full-text lookup.
// Persistence is the only stage whose failure surfaces to the caller;
// every upstream collaborator degrades silently instead.
//
//	docs/ARCHITECTURE § Profile Store.
package profilestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/profile-engine/pkg/types"
)

const (
	runsDir  = "runs"
	indexDir = "index"
	dbFile   = "profiles.db"
)

// Store manages the profile index SQLite database and the run files.
type Store struct {
	db          *sql.DB
	profilesDir string
	maxResults  int
}

// NewStore opens or creates the profile index at
// profilesDir/index/profiles.db and ensures the runs directory exists.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	profilesDir := cfg.ProfilesDir
	if profilesDir == "" {
		profilesDir = "profiles"
	}

	for _, dir := range []string{filepath.Join(profilesDir, runsDir), filepath.Join(profilesDir, indexDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	dbPath := filepath.Join(profilesDir, indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, profilesDir: profilesDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			country TEXT,
			affiliation TEXT,
			claim_to_fame TEXT,
			profile_json TEXT NOT NULL,
			run_file TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			run_file TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_key ON runs(key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='profiles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE profiles_fts USING fts5(name, claim_to_fame, profile_json, content=profiles, content_rowid=rowid)`,
			`CREATE TRIGGER profiles_ai AFTER INSERT ON profiles BEGIN
				INSERT INTO profiles_fts(rowid, name, claim_to_fame, profile_json)
				VALUES (new.rowid, new.name, new.claim_to_fame, new.profile_json);
			END`,
			`CREATE TRIGGER profiles_ad AFTER DELETE ON profiles BEGIN
				INSERT INTO profiles_fts(profiles_fts, rowid, name, claim_to_fame, profile_json)
				VALUES('delete', old.rowid, old.name, old.claim_to_fame, old.profile_json);
			END`,
			`CREATE TRIGGER profiles_au AFTER UPDATE ON profiles BEGIN
				INSERT INTO profiles_fts(profiles_fts, rowid, name, claim_to_fame, profile_json)
				VALUES('delete', old.rowid, old.name, old.claim_to_fame, old.profile_json);
				INSERT INTO profiles_fts(rowid, name, claim_to_fame, profile_json)
				VALUES (new.rowid, new.name, new.claim_to_fame, new.profile_json);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveRun writes the profile as one JSON run file and upserts the index
// row. The run filename derives from the normalized subject name plus a
// timestamp, so repeated runs for the same person keep their history.
func (s *Store) SaveRun(ctx context.Context, profile types.AggregatedProfile) (string, error) {
	key := NormalizeName(profile.Name)
	if key == "" {
		return "", fmt.Errorf("profile has no usable name")
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}

	now := time.Now().UTC()
	runFile := filepath.Join(s.profilesDir, runsDir,
		fmt.Sprintf("%s_analysis_%s.json", key, now.Format("20060102_150405")))
	if err := os.WriteFile(runFile, data, 0o644); err != nil {
		return "", fmt.Errorf("writing run file: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	updatedAt := now.Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (key, name, country, affiliation, claim_to_fame, profile_json, run_file, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			name=excluded.name, country=excluded.country, affiliation=excluded.affiliation,
			claim_to_fame=excluded.claim_to_fame, profile_json=excluded.profile_json,
			run_file=excluded.run_file, updated_at=excluded.updated_at`,
		key, profile.Name, profile.Country, profile.Affiliation,
		profile.ClaimToFame, string(data), runFile, updatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("upserting profile: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (key, run_file, created_at) VALUES (?, ?, ?)`,
		key, runFile, updatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return runFile, nil
}

// Summary is one index row, used for listing and search output.
type Summary struct {
	Name        string `json:"name" yaml:"name"`
	Country     string `json:"country" yaml:"country"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`
	ClaimToFame string `json:"claim_to_fame" yaml:"claim_to_fame"`
	RunFile     string `json:"run_file" yaml:"run_file"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
}

// List returns the indexed profiles, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, country, affiliation, claim_to_fame, run_file, updated_at
		 FROM profiles ORDER BY updated_at DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Get loads the latest stored profile for a subject name.
func (s *Store) Get(ctx context.Context, name string) (*types.AggregatedProfile, error) {
	key := NormalizeName(name)
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_json FROM profiles WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no stored profile for %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var profile types.AggregatedProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decoding stored profile: %w", err)
	}
	return &profile, nil
}

// Search runs a full-text query over indexed profiles.
func (s *Store) Search(ctx context.Context, query string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.name, p.country, p.affiliation, p.claim_to_fame, p.run_file, p.updated_at
		 FROM profiles_fts f JOIN profiles p ON p.rowid = f.rowid
		 WHERE profiles_fts MATCH ? ORDER BY rank LIMIT ?`,
		query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// Runs lists the run files recorded for a subject, newest first.
func (s *Store) Runs(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_file FROM runs WHERE key = ? ORDER BY created_at DESC`, NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func scanSummaries(rows *sql.Rows) ([]Summary, error) {
	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Name, &sum.Country, &sum.Affiliation,
			&sum.ClaimToFame, &sum.RunFile, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// NormalizeName lower-cases a subject name and collapses everything that
// is not a letter or digit into single underscores.
func NormalizeName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
