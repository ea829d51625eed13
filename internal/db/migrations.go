package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate aplica el DDL idempotente del esquema. Se llama una vez al arrancar.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("migrations: pool is nil")
	}
	for _, stmt := range SplitStatements(schema) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrations: failed at %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS users (
  id                TEXT PRIMARY KEY,
  email             TEXT NOT NULL UNIQUE,
  first_name        TEXT NOT NULL,
  last_name         TEXT NOT NULL,
  password_hash     TEXT NOT NULL DEFAULT '',
  reset_code_hash   TEXT NOT NULL DEFAULT '',
  reset_expires_at  TIMESTAMPTZ,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS majors (
  id                 TEXT PRIMARY KEY,
  name               TEXT NOT NULL,
  description        TEXT NOT NULL DEFAULT '',
  careers            TEXT[] NOT NULL DEFAULT '{}',
  skills             TEXT[] NOT NULL DEFAULT '{}',
  analytical_weight  DOUBLE PRECISION NOT NULL CHECK (analytical_weight BETWEEN 0 AND 1),
  creative_weight    DOUBLE PRECISION NOT NULL CHECK (creative_weight BETWEEN 0 AND 1),
  social_weight      DOUBLE PRECISION NOT NULL CHECK (social_weight BETWEEN 0 AND 1),
  technical_weight   DOUBLE PRECISION NOT NULL CHECK (technical_weight BETWEEN 0 AND 1),
  profile            vector(4) NOT NULL,
  position           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS personality_types (
  id           TEXT PRIMARY KEY,
  code         TEXT NOT NULL UNIQUE,
  name         TEXT NOT NULL,
  description  TEXT NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS major_personality_matches (
  major_id             TEXT NOT NULL REFERENCES majors(id) ON DELETE CASCADE,
  personality_type_id  TEXT NOT NULL REFERENCES personality_types(id) ON DELETE CASCADE,
  match_strength       DOUBLE PRECISION NOT NULL CHECK (match_strength BETWEEN 0 AND 1),
  PRIMARY KEY (major_id, personality_type_id)
);

CREATE TABLE IF NOT EXISTS questionnaire_responses (
  id                   TEXT PRIMARY KEY,
  user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  analytical_score     DOUBLE PRECISION NOT NULL,
  creative_score       DOUBLE PRECISION NOT NULL,
  social_score         DOUBLE PRECISION NOT NULL,
  technical_score      DOUBLE PRECISION NOT NULL,
  personality_type_id  TEXT NOT NULL REFERENCES personality_types(id),
  raw_responses        JSONB NOT NULL DEFAULT '{}',
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_questionnaire_responses_user ON questionnaire_responses(user_id);

CREATE TABLE IF NOT EXISTS major_recommendations (
  response_id        TEXT NOT NULL REFERENCES questionnaire_responses(id) ON DELETE CASCADE,
  major_id           TEXT NOT NULL REFERENCES majors(id) ON DELETE CASCADE,
  rank               INTEGER NOT NULL,
  match_score        DOUBLE PRECISION NOT NULL,
  analytical_match   DOUBLE PRECISION NOT NULL,
  creative_match     DOUBLE PRECISION NOT NULL,
  social_match       DOUBLE PRECISION NOT NULL,
  technical_match    DOUBLE PRECISION NOT NULL,
  personality_match  DOUBLE PRECISION NOT NULL,
  PRIMARY KEY (response_id, major_id)
);
`

// SplitStatements separa un script DDL simple por ';' descartando vacios.
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stmts = append(stmts, trimmed)
		}
	}
	return stmts
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
