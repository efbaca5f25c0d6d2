package service

import (
	"context"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/entity"
)

// ProfileService defines the interface for the user profile and the friends
// list.
type ProfileService interface {
	// GetProfile returns an empty profile when none has been saved.
	GetProfile(ctx context.Context) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, req dto.ProfileRequest) (*entity.UserProfile, error)
	ListFriends(ctx context.Context) ([]*entity.Friend, error)
	AddFriend(ctx context.Context, req dto.FriendRequest) (*entity.Friend, error)
}
