package services

import (
	"database/sql"
	"errors"

	"jeetech/internal/domain"
	"jeetech/internal/repos"
	"jeetech/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *token.Issuer
}

func NewAuthService(users *repos.UserRepo, tokens *token.Issuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

type SignupInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Password  string `json:"password" validate:"required,min=8,max=64"`
}

// Signup creates the user together with its profile; the profile invariant
// is enforced here, at the creation boundary, not by an event hook.
func (s *AuthService) Signup(in SignupInput) (*domain.User, error) {
	if _, err := s.Users.ByUsername(in.Username); err == nil {
		return nil, &ValidationError{Field: "username", Reason: "already taken"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, err := s.Users.ByEmail(in.Email); err == nil {
		return nil, &ValidationError{Field: "email", Reason: "already registered"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Hash:      string(hash),
		Role:      "USER",
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and binds the session to the user.
func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// IssueTokens authenticates by username (or email) and returns a JWT pair
// for the JSON API.
func (s *AuthService) IssueTokens(login, password string) (token.Pair, error) {
	u, err := s.Users.ByUsername(login)
	if err != nil {
		u, err = s.Users.ByEmail(login)
	}
	if err != nil {
		return token.Pair{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return token.Pair{}, ErrBadCreds
	}
	return s.Tokens.Issue(u.ID, u.Username, u.Role)
}

func (s *AuthService) RefreshTokens(refresh string) (token.Pair, error) {
	return s.Tokens.Refresh(refresh)
}

// UserFromAccessToken resolves a bearer token to a live user row.
func (s *AuthService) UserFromAccessToken(access string) (*domain.User, error) {
	claims, err := s.Tokens.Validate(access)
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(claims.UserID)
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	Phone     string
}

func (s *AuthService) Profile(userID string) (domain.UserProfile, error) {
	return s.Users.Profile(userID)
}

// UpdateProfile saves both the profile fields and the user's names.
func (s *AuthService) UpdateProfile(userID string, in ProfileInput) error {
	if _, err := s.Users.ByID(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.Users.UpdateNames(userID, in.FirstName, in.LastName, in.Email); err != nil {
		return err
	}
	return s.Users.SaveProfile(domain.UserProfile{
		UserID:  userID,
		Address: in.Address,
		Phone:   in.Phone,
	})
}
