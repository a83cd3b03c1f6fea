package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

func sampleIdentity() *session.Identity {
	return &session.Identity{
		Token: "jwt",
		User: session.User{
			UserID: 17,
			Role:   session.RoleDoctor,
			Phone:  "9990001111",
			Name:   "Dr. Rao",
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "identity.json")
	store := NewFileStore(path)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, session.ErrNoIdentity)

	require.NoError(t, store.Save(ctx, sampleIdentity()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleIdentity(), loaded)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	// повторная очистка не ошибка
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFileStore_ReadsLegacyIDField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	raw := `{"token":"t","user":{"id":5,"role":"PATIENT","phone":"9998887777"}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	loaded, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), loaded.User.EffectiveID())
}
