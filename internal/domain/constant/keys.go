package constant

// Collection keys in the persisted store.
const (
	KeyPets         = "pets"
	KeyReminders    = "reminders"
	KeyVaccinations = "vaccinations"
	KeyUserProfile  = "userProfile"
	KeyFriends      = "friends"
)

// TriggerKind tags notification metadata with the entity type that owns it.
type TriggerKind string

const (
	KindReminder TriggerKind = "reminder"
	KindVaccine  TriggerKind = "vaccine"
)
