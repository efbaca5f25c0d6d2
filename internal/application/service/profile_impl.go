package service

import (
	"context"
	"encoding/json"
	"fmt"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type profileService struct {
	store repository.CollectionStore
	log   logger.Logger
	mu    sync.Mutex
}

// NewProfileService creates a new instance of ProfileService implementation.
func NewProfileService(store repository.CollectionStore, log logger.Logger) ProfileService {
	return &profileService{store: store, log: log}
}

func (s *profileService) GetProfile(ctx context.Context) (*entity.UserProfile, error) {
	raw, found, err := s.store.Get(ctx, constant.KeyUserProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	profile := &entity.UserProfile{}
	if !found || raw == "" {
		return profile, nil
	}
	if err := json.Unmarshal([]byte(raw), profile); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", appErrors.ErrStorage, constant.KeyUserProfile, err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req dto.ProfileRequest) (*entity.UserProfile, error) {
	profile := &entity.UserProfile{
		Name:      strings.TrimSpace(req.Name),
		Bio:       strings.TrimSpace(req.Bio),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	}
	if profile.Name == "" {
		return nil, fmt.Errorf("%w: name is required", appErrors.ErrValidation)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", appErrors.ErrStorage, constant.KeyUserProfile, err)
	}
	if err := s.store.Set(ctx, constant.KeyUserProfile, string(raw)); err != nil {
		s.log.Error("Failed to save user profile", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	s.log.Info("Updated user profile")
	return profile, nil
}

func (s *profileService) ListFriends(ctx context.Context) ([]*entity.Friend, error) {
	friends, err := loadCollection[entity.Friend](ctx, s.store, constant.KeyFriends)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Friend, len(friends))
	for i := range friends {
		out[i] = &friends[i]
	}
	return out, nil
}

func (s *profileService) AddFriend(ctx context.Context, req dto.FriendRequest) (*entity.Friend, error) {
	friend := &entity.Friend{
		Name:      strings.TrimSpace(req.Name),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	}
	if friend.Name == "" {
		return nil, fmt.Errorf("%w: name is required", appErrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friends, err := loadCollection[entity.Friend](ctx, s.store, constant.KeyFriends)
	if err != nil {
		return nil, err
	}
	friend.ID = uuid.NewString()
	friends = append(friends, *friend)
	if err := saveCollection(ctx, s.store, constant.KeyFriends, friends); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save friend %s", friend.ID), err)
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Added friend %s (%s)", friend.ID, friend.Name))
	return friend, nil
}
