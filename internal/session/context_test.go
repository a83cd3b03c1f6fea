package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/pkg/logger"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (*Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, identity *Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func patientIdentity() Identity {
	return Identity{
		Token: "jwt-token",
		User:  User{UserID: 12, Role: RolePatient, Phone: "9998887777", Name: "Asha"},
	}
}

func TestContext_LoginLogout(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Save", ctx, mock.AnythingOfType("*session.Identity")).Return(nil)
	store.On("Clear", ctx).Return(nil)

	sc := NewContext(store, logger.NewNop())

	var changes []*Identity
	sc.OnChange(func(i *Identity) { changes = append(changes, i) })

	_, err := sc.Require()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, sc.Login(ctx, patientIdentity()))
	current, err := sc.Require()
	require.NoError(t, err)
	assert.Equal(t, int64(12), current.User.EffectiveID())
	assert.Equal(t, "jwt-token", sc.Token())

	require.NoError(t, sc.Logout(ctx))
	_, ok := sc.Current()
	assert.False(t, ok)
	assert.Empty(t, sc.Token())

	require.Len(t, changes, 2)
	assert.NotNil(t, changes[0])
	assert.Nil(t, changes[1])
	store.AssertExpectations(t)
}

func TestContext_LoginRejectsInvalidIdentity(t *testing.T) {
	store := new(MockStore)
	sc := NewContext(store, logger.NewNop())

	err := sc.Login(context.Background(), Identity{Token: "x"})
	assert.ErrorIs(t, err, ErrInvalidIdentity)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContext_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("stored identity", func(t *testing.T) {
		identity := patientIdentity()
		store := new(MockStore)
		store.On("Load", ctx).Return(&identity, nil)

		sc := NewContext(store, logger.NewNop())
		require.NoError(t, sc.Restore(ctx))

		current, ok := sc.Current()
		require.True(t, ok)
		assert.Equal(t, "9998887777", current.User.Phone)
	})

	t.Run("nothing stored", func(t *testing.T) {
		store := new(MockStore)
		store.On("Load", ctx).Return(nil, ErrNoIdentity)

		sc := NewContext(store, logger.NewNop())
		require.NoError(t, sc.Restore(ctx))
		_, ok := sc.Current()
		assert.False(t, ok)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := new(MockStore)
		store.On("Load", ctx).Return(nil, errors.New("disk gone"))

		sc := NewContext(store, logger.NewNop())
		assert.ErrorIs(t, sc.Restore(ctx), ErrStorage)
	})
}

func TestContext_LogoutClearsEvenOnStoreError(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Save", ctx, mock.Anything).Return(nil)
	store.On("Clear", ctx).Return(errors.New("redis down"))

	sc := NewContext(store, logger.NewNop())
	require.NoError(t, sc.Login(ctx, patientIdentity()))

	assert.ErrorIs(t, sc.Logout(ctx), ErrStorage)
	_, ok := sc.Current()
	assert.False(t, ok)
}

func TestUser_EffectiveIDAndDisplayName(t *testing.T) {
	assert.Equal(t, int64(7), User{ID: 7}.EffectiveID())
	assert.Equal(t, int64(9), User{ID: 7, UserID: 9}.EffectiveID())
	assert.Equal(t, "dr_rao", User{Username: "dr_rao"}.DisplayName())
	assert.True(t, User{Role: "doctor"}.IsDoctor())
}
