package repos

import (
	"jeetech/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, username, email, first_name, last_name, password_hash, role`

// Create inserts the user and its profile in one transaction: every user
// has exactly one profile from the moment it exists.
func (r *UserRepo) Create(u domain.User) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO users(id, username, email, first_name, last_name, password_hash, role)
	  VALUES(?,?,?,?,?,?,?)
	`, u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Hash, u.Role); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO user_profiles(user_id) VALUES(?)`, u.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE username=?`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateNames(id, firstName, lastName, email string) error {
	_, err := r.DB.Exec(`UPDATE users SET first_name=?, last_name=?, email=? WHERE id=?`, firstName, lastName, email, id)
	return err
}

// Profile returns the user's profile, creating the row lazily if an old
// database predates the created-together invariant.
func (r *UserRepo) Profile(userID string) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.DB.Get(&p, `
	  SELECT user_id, address, phone, COALESCE(updated_at,'') AS updated_at
	  FROM user_profiles WHERE user_id=?
	`, userID)
	if err == nil {
		return p, nil
	}
	if _, ierr := r.DB.Exec(`INSERT INTO user_profiles(user_id) VALUES(?) ON CONFLICT(user_id) DO NOTHING`, userID); ierr != nil {
		return p, ierr
	}
	err = r.DB.Get(&p, `
	  SELECT user_id, address, phone, COALESCE(updated_at,'') AS updated_at
	  FROM user_profiles WHERE user_id=?
	`, userID)
	return p, err
}

func (r *UserRepo) SaveProfile(p domain.UserProfile) error {
	_, err := r.DB.Exec(`
	  UPDATE user_profiles SET address=?, phone=?, updated_at=CURRENT_TIMESTAMP WHERE user_id=?
	`, p.Address, p.Phone, p.UserID)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id,user_id,last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id, last_seen=CURRENT_TIMESTAMP
	`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.role
	  FROM sessions s
	  JOIN users u ON u.id = s.user_id
	  WHERE s.id=?
	`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL, last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func (r *UserRepo) CountCustomers() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE role != 'ADMIN'`)
	return n, err
}

type CustomerRow struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	CreatedAt string `db:"created_at"`
}

func (r *UserRepo) RecentCustomers(limit int) ([]CustomerRow, error) {
	rows := []CustomerRow{}
	err := r.DB.Select(&rows, `
	  SELECT id, username, email, created_at
	  FROM users WHERE role != 'ADMIN'
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return rows, err
}
