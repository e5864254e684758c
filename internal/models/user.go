package models

// User represents a registered account in the user directory.
// The password is kept exactly as it was supplied at registration unless
// password hashing is enabled, in which case it holds a bcrypt hash.
type User struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

// Session is the currently signed-in user of a visitor. It never carries the password.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
}

// Session returns the password-free view of the user.
func (u User) Session() Session {
	return Session{Name: u.Name, Email: u.Email, Phone: u.Phone}
}
