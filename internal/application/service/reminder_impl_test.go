package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	appErrors "petagenda/internal/pkg/errors"
)

func strPtr(s string) *string { return &s }

func storedReminders(t *testing.T, store *memStore) []entity.Reminder {
	t.Helper()
	items, err := loadCollection[entity.Reminder](context.Background(), store, constant.KeyReminders)
	require.NoError(t, err)
	return items
}

func TestCreateReminder_SchedulesDayBeforeAndDayOf(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	store.data[constant.KeyPets] = `[{"id":"p1","name":"Rex","species":"Dog","breed":"","dob":""}]`
	s := newTestReminderService(t, store, port, newYear)

	r, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{
		PetID: "p1", Category: "Health", Description: "Deworming", Date: "10/01/2024",
	})

	require.NoError(t, err)
	require.Len(t, port.scheduled, 2)
	assert.Equal(t, time.Date(2024, time.January, 9, 9, 0, 0, 0, time.UTC), port.scheduled[0].At)
	assert.Equal(t, time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC), port.scheduled[1].At)
	assert.Equal(t, "🔔 Reminder tomorrow: Rex", port.scheduled[0].Title)
	assert.Equal(t, "Health: Deworming", port.scheduled[1].Body)
	assert.Equal(t, "r1", port.scheduled[0].Metadata.EntityID)
	assert.Equal(t, []string{"h1", "h2"}, r.NotificationIDs)

	stored := storedReminders(t, store)
	require.Len(t, stored, 1)
	assert.Equal(t, *r, stored[0])
	assert.Contains(t, store.data[constant.KeyReminders], `"date":"10/01/2024"`)
}

func TestCreateReminder_UnknownPetFallsBackToGenericName(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)

	_, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{
		PetID: "ghost", Description: "Bath", Date: "10/01/2024",
	})

	require.NoError(t, err)
	require.NotEmpty(t, port.scheduled)
	assert.Equal(t, "⏰ Today: your pet", port.scheduled[len(port.scheduled)-1].Title)
}

func TestCreateReminder_DefaultsCategoryToHealth(t *testing.T) {
	s := newTestReminderService(t, newMemStore(), &fakePort{}, newYear)

	r, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})

	require.NoError(t, err)
	assert.Equal(t, constant.CategoryHealth, r.Category)
}

func TestCreateReminder_Validation(t *testing.T) {
	cases := map[string]dto.CreateReminderRequest{
		"missing description": {Date: "10/01/2024"},
		"missing date":        {Description: "Vet"},
		"malformed date":      {Description: "Vet", Date: "2024-01-10"},
		"impossible date":     {Description: "Vet", Date: "31/02/2024"},
		"unknown category":    {Description: "Vet", Date: "10/01/2024", Category: "Grooming"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			store, port := newMemStore(), &fakePort{}
			s := newTestReminderService(t, store, port, newYear)

			_, err := s.CreateReminder(context.Background(), req)

			assert.ErrorIs(t, err, appErrors.ErrValidation)
			assert.Zero(t, store.sets)
			assert.Zero(t, port.calls)
		})
	}
}

func TestCreateReminder_PastDateIsSavedUnscheduled(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)

	r, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Old", Date: "15/12/2023"})

	require.NoError(t, err)
	assert.Empty(t, r.NotificationIDs)
	assert.Zero(t, port.permissionCalls, "no triggers means no permission request")
	assert.Len(t, storedReminders(t, store), 1)
}

func TestCreateReminder_PermissionDenied(t *testing.T) {
	store, port := newMemStore(), &fakePort{denied: true}
	s := newTestReminderService(t, store, port, newYear)

	r, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})

	require.NoError(t, err)
	assert.Empty(t, r.NotificationIDs)
	assert.Zero(t, port.calls)
	assert.Len(t, storedReminders(t, store), 1)
}

func TestCreateReminder_PartialSchedulingFailure(t *testing.T) {
	port := &fakePort{failAt: map[int]bool{1: true}}
	s := newTestReminderService(t, newMemStore(), port, newYear)

	r, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})

	require.NoError(t, err)
	assert.Equal(t, []string{"h2"}, r.NotificationIDs)
}

func TestCreateReminder_LoadFailure(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	store.getErr = errBoom
	s := newTestReminderService(t, store, port, newYear)

	_, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})

	assert.ErrorIs(t, err, appErrors.ErrStorage)
	assert.Zero(t, port.calls)
}

func TestCreateReminder_SaveFailureReleasesNewHandles(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	store.setErr = errBoom
	s := newTestReminderService(t, store, port, newYear)

	_, err := s.CreateReminder(context.Background(), dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})

	assert.ErrorIs(t, err, appErrors.ErrStorage)
	assert.Equal(t, []string{"h1", "h2"}, port.cancelled)
}

func TestUpdateReminder_ToPastDateCancelsAndClearsHandles(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	r, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Category: "Health", Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)

	updated, err := s.UpdateReminder(ctx, r.ID, dto.UpdateReminderRequest{Date: strPtr("20/12/2023")})

	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, port.cancelled)
	assert.Equal(t, 2, port.calls, "no new scheduling calls")
	assert.Empty(t, updated.NotificationIDs)
	stored := storedReminders(t, store)
	require.Len(t, stored, 1)
	assert.Empty(t, stored[0].NotificationIDs)
	assert.Equal(t, "20/12/2023", stored[0].Date.String())
}

func TestUpdateReminder_IsIdempotentOnHandleCount(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	r, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)

	patch := dto.UpdateReminderRequest{Date: strPtr("20/01/2024")}
	first, err := s.UpdateReminder(ctx, r.ID, patch)
	require.NoError(t, err)
	second, err := s.UpdateReminder(ctx, r.ID, patch)
	require.NoError(t, err)

	assert.Len(t, first.NotificationIDs, 2)
	assert.Len(t, second.NotificationIDs, 2)
	assert.Equal(t, []string{"h1", "h2", "h3", "h4"}, port.cancelled)
	assert.Equal(t, []string{"h5", "h6"}, storedReminders(t, store)[0].NotificationIDs)
}

func TestUpdateReminder_CancelFailureDoesNotBlockEdit(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	r, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)
	port.failCancel = true

	updated, err := s.UpdateReminder(ctx, r.ID, dto.UpdateReminderRequest{Description: strPtr("Vet visit")})

	require.NoError(t, err)
	assert.Equal(t, "Vet visit", updated.Description)
	assert.Equal(t, []string{"h3", "h4"}, updated.NotificationIDs)
}

func TestUpdateReminder_Errors(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	r, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)

	_, err = s.UpdateReminder(ctx, "missing", dto.UpdateReminderRequest{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = s.UpdateReminder(ctx, r.ID, dto.UpdateReminderRequest{Description: strPtr("  ")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	assert.Empty(t, port.cancelled, "failed edits leave the handles alone")
}

func TestDeleteReminder_CancelsEveryHandleOnce(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	keep, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Bath", Date: "12/01/2024"})
	require.NoError(t, err)
	gone, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteReminder(ctx, gone.ID))

	assert.Equal(t, gone.NotificationIDs, port.cancelled)
	stored := storedReminders(t, store)
	require.Len(t, stored, 1)
	assert.Equal(t, keep.ID, stored[0].ID)
	_, err = s.GetReminder(ctx, gone.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteReminder(ctx, gone.ID), appErrors.ErrNotFound)
}

func TestDeleteReminder_SaveFailure(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	r, err := s.CreateReminder(ctx, dto.CreateReminderRequest{Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)
	store.setErr = errBoom

	assert.ErrorIs(t, s.DeleteReminder(ctx, r.ID), appErrors.ErrStorage)
}

func TestListReminders_FiltersSearchesAndSorts(t *testing.T) {
	store := newMemStore()
	store.data[constant.KeyReminders] = `[
		{"id":"a","petId":"p1","category":"Health","description":"Rabies shot","date":"15/03/2024"},
		{"id":"b","petId":"p2","category":"Hygiene","description":"Bath","date":"01/02/2024"},
		{"id":"c","petId":"p1","category":"Saúde","description":"Checkup","date":"10/01/2024"}
	]`
	s := newTestReminderService(t, store, &fakePort{}, newYear)
	ctx := context.Background()

	ids := func(rs []*entity.Reminder) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	all, err := s.ListReminders(ctx, dto.ReminderQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))

	desc, err := s.ListReminders(ctx, dto.ReminderQuery{Sort: dto.SortDateDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(desc))

	health, err := s.ListReminders(ctx, dto.ReminderQuery{Category: "health"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(health))

	pet, err := s.ListReminders(ctx, dto.ReminderQuery{PetID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(pet))

	search, err := s.ListReminders(ctx, dto.ReminderQuery{Search: "RABIES"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(search))

	_, err = s.ListReminders(ctx, dto.ReminderQuery{Category: "Grooming"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestListReminders_CorruptCollection(t *testing.T) {
	store := newMemStore()
	store.data[constant.KeyReminders] = `{not json`
	s := newTestReminderService(t, store, &fakePort{}, newYear)

	_, err := s.ListReminders(context.Background(), dto.ReminderQuery{})

	assert.ErrorIs(t, err, appErrors.ErrStorage)
}

func TestDeleteRemindersByPet(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	s := newTestReminderService(t, store, port, newYear)
	ctx := context.Background()
	_, err := s.CreateReminder(ctx, dto.CreateReminderRequest{PetID: "p1", Description: "Vet", Date: "10/01/2024"})
	require.NoError(t, err)
	other, err := s.CreateReminder(ctx, dto.CreateReminderRequest{PetID: "p2", Description: "Bath", Date: "10/01/2024"})
	require.NoError(t, err)

	n, err := s.DeleteRemindersByPet(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"h1", "h2"}, port.cancelled)
	stored := storedReminders(t, store)
	require.Len(t, stored, 1)
	assert.Equal(t, other.ID, stored[0].ID)

	n, err = s.DeleteRemindersByPet(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRescheduleAll_ReplacesStaleHandles(t *testing.T) {
	store, port := newMemStore(), &fakePort{}
	store.data[constant.KeyReminders] = `[
		{"id":"a","category":"Health","description":"Vet","date":"10/01/2024","notificationIds":["old1","old2"]},
		{"id":"b","category":"Hygiene","description":"Bath","date":"01/12/2023","notificationIds":["old3"]}
	]`
	s := newTestReminderService(t, store, port, newYear)

	n, err := s.RescheduleAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"old1", "old2", "old3"}, port.cancelled)
	stored := storedReminders(t, store)
	require.Len(t, stored, 2)
	assert.Equal(t, []string{"h1", "h2"}, stored[0].NotificationIDs)
	assert.Empty(t, stored[1].NotificationIDs)
}
