package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores a resume document and returns the new record
func (db *DB) CreateResume(ctx context.Context, firstName, lastName string, content json.RawMessage) (*Resume, error) {
	r := Resume{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Content:   content,
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, first_name, last_name, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		r.ID, r.FirstName, r.LastName, []byte(content),
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// UpdateResume replaces the content of an existing resume
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, firstName, lastName string, content json.RawMessage) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET first_name = $2, last_name = $3, content = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, firstName, lastName, []byte(content),
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, content, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.FirstName, &r.LastName, &content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	r.Content = content
	return &r, nil
}

// ListResumes returns resume metadata, newest first. Content is not loaded.
func (db *DB) ListResumes(ctx context.Context, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return out, nil
}

// DeleteResume removes a resume and its export records
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResumeNotFound
	}
	return nil
}

// RecordExport stores metadata about a generated artifact
func (db *DB) RecordExport(ctx context.Context, e *Export) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_exports (id, resume_id, format, engine, filename, size_bytes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		e.ID, e.ResumeID, e.Format, e.Engine, e.Filename, e.SizeBytes,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// ListExports returns the export records of a resume, newest first
func (db *DB) ListExports(ctx context.Context, resumeID uuid.UUID) ([]Export, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, format, engine, filename, size_bytes, created_at
		 FROM resume_exports WHERE resume_id = $1 ORDER BY created_at DESC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.ResumeID, &e.Format, &e.Engine, &e.Filename, &e.SizeBytes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return out, nil
}
