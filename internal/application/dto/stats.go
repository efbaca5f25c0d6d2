package dto

// CountItem is one bar of a chart.
type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimelineEvent is one vaccine shown on the timeline.
type TimelineEvent struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Type    string `json:"type"` // "upcoming" or "past"
	PetName string `json:"petName"`
}

// StatisticsResponse summarises the stored collections.
type StatisticsResponse struct {
	TotalPets           int             `json:"totalPets"`
	TotalReminders      int             `json:"totalReminders"`
	TotalVaccines       int             `json:"totalVaccines"`
	UpcomingReminders   int             `json:"upcomingReminders"`
	VaccinesWithBooster int             `json:"vaccinesWithBooster"`
	RemindersByCategory []CountItem     `json:"remindersByCategory"`
	PetsBySpecies       []CountItem     `json:"petsBySpecies"`
	VaccineTimeline     []TimelineEvent `json:"vaccineTimeline"`
}
