package profile

import (
	"context"
	"os"
	"testing"
	"time"

	"adventure_backend/internal/common"
	"adventure_backend/internal/config"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newEmulatorRepository connects to the Firestore emulator, skipping when it is not running.
func newEmulatorRepository(t *testing.T) Repository {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set; skipping Firestore repository tests")
	}
	client, err := firestore.NewClient(context.Background(), "adventure-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{UsersCollection: "users_test_" + uuid.NewString()[:8]}
	return NewFirestoreRepository(client, cfg, zap.NewNop())
}

func TestFirestoreRepository_CreateAndFind(t *testing.T) {
	repo := newEmulatorRepository(t)
	ctx := context.Background()

	p := &Profile{
		UID:       "uid-" + uuid.NewString(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Birthday:  "12/10/1815",
		PhotoURL:  "https://img.example/ada.png",
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.JoinedAt.IsZero())

	got, err := repo.FindByUID(ctx, p.UID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, int64(0), got.Points)
	assert.WithinDuration(t, time.Now(), got.JoinedAt, time.Minute)

	require.NoError(t, repo.UpdateBio(ctx, p.UID, "Analyst"))
	got, err = repo.FindByUID(ctx, p.UID)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", got.Bio)
}

func TestFirestoreRepository_NotFound(t *testing.T) {
	repo := newEmulatorRepository(t)
	ctx := context.Background()

	_, err := repo.FindByUID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = repo.UpdateBio(ctx, "missing", "bio")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFirestoreRepository_ListPage(t *testing.T) {
	repo := newEmulatorRepository(t)
	ctx := context.Background()

	for _, uid := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &Profile{UID: uid, Name: uid}))
	}

	page, cursor, err := repo.ListPage(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", cursor)

	page, cursor, err = repo.ListPage(ctx, cursor, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].UID)
	assert.Empty(t, cursor)
}
