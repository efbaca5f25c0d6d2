package dto

// PetRequest is the DTO for creating or replacing a pet.
type PetRequest struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	DOB      string `json:"dob"`
	PhotoURI string `json:"photoUri,omitempty"`
}

// ProfileRequest is the DTO for updating the user profile.
type ProfileRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FriendRequest is the DTO for adding a friend.
type FriendRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
