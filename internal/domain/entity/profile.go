package entity

// UserProfile is the single profile stored under the userProfile key.
type UserProfile struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Friend is an entry of the community list.
type Friend struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
