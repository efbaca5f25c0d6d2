package entity

// Pet is referenced by reminders and vaccine records through its ID.
type Pet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	DOB      string `json:"dob"`
	PhotoURI string `json:"photoUri,omitempty"`
}
