package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
)

func TestProfileService_Profile(t *testing.T) {
	store := newMemStore()
	s := NewProfileService(store, logger.Nop())
	ctx := context.Background()

	empty, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Name)

	_, err = s.UpdateProfile(ctx, dto.ProfileRequest{Bio: "no name"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	saved, err := s.UpdateProfile(ctx, dto.ProfileRequest{Name: "Ana", Bio: "Two cats"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","bio":"Two cats"}`, store.data[constant.KeyUserProfile])

	got, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestProfileService_StorageFailure(t *testing.T) {
	store := newMemStore()
	store.getErr = errBoom
	s := NewProfileService(store, logger.Nop())

	_, err := s.GetProfile(context.Background())

	assert.ErrorIs(t, err, appErrors.ErrStorage)
}

func TestProfileService_Friends(t *testing.T) {
	s := NewProfileService(newMemStore(), logger.Nop())
	ctx := context.Background()

	_, err := s.AddFriend(ctx, dto.FriendRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	first, err := s.AddFriend(ctx, dto.FriendRequest{Name: "Bruno"})
	require.NoError(t, err)
	second, err := s.AddFriend(ctx, dto.FriendRequest{Name: "Carla"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	friends, err := s.ListFriends(ctx)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "Bruno", friends[0].Name)
	assert.Equal(t, "Carla", friends[1].Name)
}
