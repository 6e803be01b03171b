package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

func makeRecord(repoFullName string, number int, headSHA string) model.PRRecord {
	return model.PRRecord{
		RepoFullName:  repoFullName,
		Number:        number,
		HeadSHA:       headSHA,
		ReviewedAt:    time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC),
		TouchesTarget: true,
		Success:       true,
	}
}

func TestStateRepo_Lookup_Absent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)

	rec, err := repo.Lookup(context.Background(), "octocat/hello-world", 1)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStateRepo_RecordReviewed_Insert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("octocat/hello-world", 1, "abc123")))

	got, err := repo.Lookup(ctx, "octocat/hello-world", 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "octocat/hello-world", got.RepoFullName)
	assert.Equal(t, 1, got.Number)
	assert.Equal(t, "abc123", got.HeadSHA)
	assert.Equal(t, time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC), got.ReviewedAt)
	assert.True(t, got.TouchesTarget)
	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
}

func TestStateRepo_RecordReviewed_UpsertReplacesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("octocat/hello-world", 1, "abc123")))

	// Second record for the same PR replaces the first row.
	updated := makeRecord("octocat/hello-world", 1, "def456")
	updated.ReviewedAt = time.Date(2026, 1, 21, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.RecordReviewed(ctx, updated))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "def456", records[0].HeadSHA)
	assert.Equal(t, time.Date(2026, 1, 21, 9, 30, 0, 0, time.UTC), records[0].ReviewedAt)
}

func TestStateRepo_ListAll_Ordered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("zeta/repo", 1, "sha1")))
	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("alpha/repo", 7, "sha2")))
	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("alpha/repo", 2, "sha3")))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "alpha/repo", records[0].RepoFullName)
	assert.Equal(t, 2, records[0].Number)
	assert.Equal(t, "alpha/repo", records[1].RepoFullName)
	assert.Equal(t, 7, records[1].Number)
	assert.Equal(t, "zeta/repo", records[2].RepoFullName)
}

func TestStateRepo_Clear_SingleRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("alpha/repo", 1, "sha1")))
	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("beta/repo", 1, "sha2")))

	require.NoError(t, repo.Clear(ctx, "alpha/repo"))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "beta/repo", records[0].RepoFullName)
}

func TestStateRepo_Clear_All(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("alpha/repo", 1, "sha1")))
	require.NoError(t, repo.RecordReviewed(ctx, makeRecord("beta/repo", 1, "sha2")))

	require.NoError(t, repo.Clear(ctx, ""))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStateRepo_RecordReviewed_FailureDiagnostics(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStateRepo(db)
	ctx := context.Background()

	rec := makeRecord("octocat/hello-world", 3, "abc123")
	rec.Success = false
	rec.Error = "publishing summary: 502 Bad Gateway"
	require.NoError(t, repo.RecordReviewed(ctx, rec))

	got, err := repo.Lookup(ctx, "octocat/hello-world", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Success)
	assert.Equal(t, "publishing summary: 502 Bad Gateway", got.Error)
}
