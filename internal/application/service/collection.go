package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"
	appErrors "petagenda/internal/pkg/errors"
)

const unknownPetName = "your pet"

// loadCollection reads the JSON array stored under key. A missing key is an
// empty collection.
func loadCollection[T any](ctx context.Context, store repository.CollectionStore, key string) ([]T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	if !found || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", appErrors.ErrStorage, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection writes the whole collection back under key.
func saveCollection[T any](ctx context.Context, store repository.CollectionStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", appErrors.ErrStorage, key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrStorage, err)
	}
	return nil
}

// petNames maps pet IDs to the display names used in notification payloads.
// A failed read yields an empty map; it never blocks the caller.
type petNames map[string]string

func loadPetNames(ctx context.Context, store repository.CollectionStore) petNames {
	pets, err := loadCollection[entity.Pet](ctx, store, constant.KeyPets)
	if err != nil {
		return petNames{}
	}
	names := make(petNames, len(pets))
	for _, p := range pets {
		if p.Name != "" {
			names[p.ID] = p.Name
		}
	}
	return names
}

func (n petNames) of(petID string) string {
	if name, ok := n[petID]; ok {
		return name
	}
	return unknownPetName
}

// newTimeOrderedID returns a UUIDv7, which sorts by creation time and is
// distinct for every call within the process.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
