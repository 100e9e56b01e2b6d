package storage

import (
	"context"
	"path/filepath"
	"testing"

	"minisocial/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// exerciseBackend runs the contract every Backend must satisfy.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Load(ctx, testKey)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Save(ctx, testKey, []byte(`[1]`)))
	require.NoError(t, b.Save(ctx, testKey, []byte(`[1,2]`)))
	got, err := b.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	_, err = b.Load(ctx, "other_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestFileBackend_MemFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewFileBackendFs(fsys, "/data")
	exerciseBackend(t, b)

	exists, err := afero.Exists(fsys, "/data/mini_social_posts.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileBackend_OsFs(t *testing.T) {
	exerciseBackend(t, NewFileBackend(t.TempDir()))
}

func TestFileBackend_KeyIsSanitized(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewFileBackendFs(fsys, "/data")
	require.NoError(t, b.Save(context.Background(), "../escape/key", []byte(`[]`)))

	exists, err := afero.Exists(fsys, "/data/.._escape_key.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewRedisBackend(rdb)
	defer func() { _ = b.Close() }()

	exerciseBackend(t, b)
	assert.Zero(t, mr.TTL(testKey), "snapshot never expires")
}

func TestGormBackend_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "feed.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FeedSnapshot{}))

	b := NewGormBackend(db)
	assert.Equal(t, "sqlite", b.Name())
	exerciseBackend(t, b)

	var count int64
	require.NoError(t, db.Model(&models.FeedSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert keeps a single row per key")
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormBackend_PostgresUpsert(t *testing.T) {
	db, mock := setupMockDB(t)
	b := NewGormBackend(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "feed_snapshots" .* ON CONFLICT \("snapshot_key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, b.Save(context.Background(), testKey, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackend_PostgresLoad(t *testing.T) {
	db, mock := setupMockDB(t)
	b := NewGormBackend(db)

	mock.ExpectQuery(`SELECT \* FROM "feed_snapshots" WHERE snapshot_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot_key", "data"}).AddRow(testKey, `[{"id":1}]`))

	got, err := b.Load(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	mock.ExpectQuery(`SELECT \* FROM "feed_snapshots" WHERE snapshot_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot_key", "data"}))
	_, err = b.Load(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
