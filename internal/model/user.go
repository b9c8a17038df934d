package model

// RoleArtist is the role that may publish albums, upload tracks and
// edit lyrics.
const RoleArtist = "artist"

// User is the signed-in account persisted in the client session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Role  string `json:"role"`
}

// IsArtist reports whether the user holds the artist role.
func (u *User) IsArtist() bool {
	return u != nil && u.Role == RoleArtist
}
