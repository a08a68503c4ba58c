package domain

// User is the authenticated account.
type User struct {
	ID       string
	Email    string
	Username string
}

// DisplayName returns the name shown on locally authored content.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return "You"
}
