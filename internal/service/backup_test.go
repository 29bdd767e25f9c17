package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/internal/storage"
	"github.com/emsclinic/ems-backend/pkg/model"
)

func newBackupFixture(t *testing.T) (*BackupService, *repository.Clinic, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	repo := repository.New(store, zap.NewNop())
	return NewBackupService(repo, zap.NewNop()), repo, store
}

func TestExport(t *testing.T) {
	backup, repo, _ := newBackupFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	result, err := backup.Export(ctx)
	require.NoError(t, err)

	assert.Regexp(t, `^ems_backup_\d{4}-\d{2}-\d{2}\.json$`, result.Filename)
	assert.Equal(t, len(result.Data), result.Size)
	assert.Equal(t, 2, result.Records.Patients)
	assert.Equal(t, 3, result.Records.Services)

	var db model.Database
	require.NoError(t, json.Unmarshal(result.Data, &db))
	assert.Equal(t, model.SchemaVersion, db.Version)
}

func TestImport_RoundTrip(t *testing.T) {
	backup, repo, _ := newBackupFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))
	exported, err := backup.Export(ctx)
	require.NoError(t, err)

	// Wipe the live document, then restore from the export.
	wiped := model.NewDatabase(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Replace(ctx, wiped))

	result, err := backup.Import(ctx, exported.Data)
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, exported.Records, result.Records)

	patients, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, exported.Records.Patients)

	db, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, db.LastBackup)
}

func TestImport_InvalidJSON(t *testing.T) {
	backup, repo, _ := newBackupFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	result, err := backup.Import(ctx, []byte(`{not json`))
	require.NoError(t, err, "a bad payload is a structured failure, not an error")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Detail)

	// The live document is untouched.
	patients, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
}

func TestImport_MissingPatientsCollection(t *testing.T) {
	backup, repo, _ := newBackupFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	tests := []struct {
		name    string
		payload string
	}{
		{name: "no patients field", payload: `{"services":[]}`},
		{name: "patients not a list", payload: `{"patients":{"p1":{}}}`},
		{name: "patients is a string", payload: `{"patients":"oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := backup.Import(ctx, []byte(tt.payload))
			require.NoError(t, err)
			assert.False(t, result.Success)

			patients, err := repo.GetAllPatients(ctx)
			require.NoError(t, err)
			assert.Len(t, patients, 2, "a rejected import must not modify the document")
		})
	}
}

func TestImport_WritesBackupSlot(t *testing.T) {
	backup, repo, store := newBackupFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	result, err := backup.Import(ctx, []byte(`{"patients":[]}`))
	require.NoError(t, err)
	require.True(t, result.Success)

	backupRaw, _, err := store.Load(ctx, storage.BackupKey)
	require.NoError(t, err)

	var previous model.Database
	require.NoError(t, json.Unmarshal(backupRaw, &previous))
	assert.Len(t, previous.Patients, 2, "the backup slot holds the pre-import document")

	patients, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
}
