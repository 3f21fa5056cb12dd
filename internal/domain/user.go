package domain

type User struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Hash      string `db:"password_hash"`
	Role      string `db:"role"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// UserProfile exists for every user; it is created together with the user.
type UserProfile struct {
	UserID    string `db:"user_id"`
	Address   string `db:"address"`
	Phone     string `db:"phone"`
	UpdatedAt string `db:"updated_at"`
}
