package constant

import (
	"encoding/json"
	"strings"
)

// Category classifies a reminder.
type Category string

const (
	CategoryHealth      Category = "Health"
	CategoryHygiene     Category = "Hygiene"
	CategoryAppointment Category = "Appointment"
	CategoryOther       Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryHealth, CategoryHygiene, CategoryAppointment, CategoryOther}

// categoryAliases maps the labels older builds stored to the current values.
var categoryAliases = map[string]Category{
	"saúde":    CategoryHealth,
	"saude":    CategoryHealth,
	"higiene":  CategoryHygiene,
	"consulta": CategoryAppointment,
	"outro":    CategoryOther,
}

// ParseCategory resolves a category name case-insensitively, including the
// legacy Portuguese labels. ok is false for unknown names.
func ParseCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == key {
			return c, true
		}
	}
	c, ok := categoryAliases[key]
	return c, ok
}

func (c Category) String() string {
	return string(c)
}

// UnmarshalJSON normalises legacy labels to the current values. Unknown
// names are kept as stored.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, ok := ParseCategory(s); ok {
		*c = parsed
		return nil
	}
	*c = Category(s)
	return nil
}
