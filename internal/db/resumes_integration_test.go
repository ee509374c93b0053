//go:build integration

package db

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestIntegration_Resume_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	content := json.RawMessage(`{"firstName":"Ada","lastName":"Lovelace","skills":{"B":["x"],"A":["y"]}}`)
	created, err := db.CreateResume(ctx, "Ada", "Lovelace", content)
	require.NoError(t, err)
	defer func() { _ = db.DeleteResume(ctx, created.ID) }()

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("get", func(t *testing.T) {
		got, err := db.GetResume(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.FirstName)
		assert.JSONEq(t, string(content), string(got.Content))
	})

	t.Run("update", func(t *testing.T) {
		err := db.UpdateResume(ctx, created.ID, "Ada", "King", json.RawMessage(`{"firstName":"Ada","lastName":"King"}`))
		require.NoError(t, err)

		got, err := db.GetResume(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "King", got.LastName)
	})

	t.Run("list", func(t *testing.T) {
		list, err := db.ListResumes(ctx, 100)
		require.NoError(t, err)

		var found bool
		for _, r := range list {
			if r.ID == created.ID {
				found = true
				assert.Nil(t, r.Content)
			}
		}
		assert.True(t, found)
	})

	t.Run("exports", func(t *testing.T) {
		e := &Export{ResumeID: created.ID, Format: "pdf", Engine: "gofpdf", Filename: "Ada_King_Resume.pdf", SizeBytes: 1234}
		require.NoError(t, db.RecordExport(ctx, e))
		assert.NotEqual(t, uuid.Nil, e.ID)

		exports, err := db.ListExports(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, exports, 1)
		assert.Equal(t, "Ada_King_Resume.pdf", exports[0].Filename)
	})
}

func TestIntegration_Resume_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.GetResume(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrResumeNotFound))

	err = db.UpdateResume(ctx, uuid.New(), "", "", json.RawMessage(`{}`))
	assert.True(t, errors.Is(err, ErrResumeNotFound))

	err = db.DeleteResume(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrResumeNotFound))
}
