package service

import (
	"context"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"
	"petagenda/internal/pkg/caldate"
	"sort"
)

const (
	upcomingWindowDays = 30
	timelineLimit      = 10
	otherSpecies       = "Other"
	unknownTimelinePet = "Unknown pet"
)

type statisticsService struct {
	store repository.CollectionStore
	now   Clock
}

// NewStatisticsService creates a new instance of StatisticsService implementation.
func NewStatisticsService(store repository.CollectionStore, now Clock) StatisticsService {
	return &statisticsService{store: store, now: now}
}

func (s *statisticsService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		return nil, err
	}
	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		return nil, err
	}
	vaccines, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		return nil, err
	}

	today := caldate.Today(s.now())
	resp := &dto.StatisticsResponse{
		TotalPets:           len(pets),
		TotalReminders:      len(reminders),
		TotalVaccines:       len(vaccines),
		UpcomingReminders:   countUpcoming(reminders, today),
		RemindersByCategory: countByCategory(reminders),
		PetsBySpecies:       countBySpecies(pets),
		VaccineTimeline:     vaccineTimeline(vaccines, pets, today),
	}
	for i := range vaccines {
		if vaccines[i].HasBooster() {
			resp.VaccinesWithBooster++
		}
	}
	return resp, nil
}

// countUpcoming counts reminders dated from today through today+30.
func countUpcoming(reminders []entity.Reminder, today caldate.Date) int {
	last := today.AddDays(upcomingWindowDays)
	n := 0
	for _, r := range reminders {
		if !r.Date.Before(today) && !r.Date.After(last) {
			n++
		}
	}
	return n
}

func countByCategory(reminders []entity.Reminder) []dto.CountItem {
	counts := make(map[constant.Category]int, len(constant.Categories))
	for _, r := range reminders {
		counts[r.Category]++
	}
	items := make([]dto.CountItem, 0, len(constant.Categories))
	for _, c := range constant.Categories {
		items = append(items, dto.CountItem{Name: c.String(), Count: counts[c]})
	}
	return items
}

// countBySpecies keeps first-seen order.
func countBySpecies(pets []entity.Pet) []dto.CountItem {
	items := []dto.CountItem{}
	index := map[string]int{}
	for _, p := range pets {
		species := p.Species
		if species == "" {
			species = otherSpecies
		}
		if i, ok := index[species]; ok {
			items[i].Count++
			continue
		}
		index[species] = len(items)
		items = append(items, dto.CountItem{Name: species, Count: 1})
	}
	return items
}

func vaccineTimeline(vaccines []entity.VaccineRecord, pets []entity.Pet, today caldate.Date) []dto.TimelineEvent {
	names := make(map[string]string, len(pets))
	for _, p := range pets {
		names[p.ID] = p.Name
	}

	type dated struct {
		date  caldate.Date
		event dto.TimelineEvent
	}
	all := make([]dated, 0, len(vaccines))
	for i := range vaccines {
		v := &vaccines[i]
		date, kind := v.DateAdministered, "past"
		if v.HasBooster() {
			date = *v.NextDueDate
			if !date.Before(today) {
				kind = "upcoming"
			}
		}
		petName := names[v.PetID]
		if petName == "" {
			petName = unknownTimelinePet
		}
		all = append(all, dated{date: date, event: dto.TimelineEvent{
			ID:      v.ID,
			Date:    date.String(),
			Title:   v.VaccineName,
			Type:    kind,
			PetName: petName,
		}})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].date.Before(all[j].date) })
	if len(all) > timelineLimit {
		all = all[:timelineLimit]
	}

	events := make([]dto.TimelineEvent, len(all))
	for i := range all {
		events[i] = all[i].event
	}
	return events
}
