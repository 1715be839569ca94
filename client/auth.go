package client

import (
	"workmate/models"
)

// AuthState caches the logged-in user. Construct one per Client and reload
// with FetchMe after navigation.
type AuthState struct {
	c    *Client
	User *models.Profile
}

func NewAuthState(c *Client) *AuthState {
	return &AuthState{c: c}
}

// RegisterInput carries the registration payload. Role and Dept are
// optional and default server-side to Member/General.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Dept     string `json:"dept,omitempty"`
}

type userEnvelope struct {
	User models.Profile `json:"user"`
}

func (s *AuthState) Register(input RegisterInput) (*models.Profile, error) {
	var body userEnvelope
	if err := s.c.post("/api/auth/register", input, &body); err != nil {
		return nil, err
	}
	s.User = &body.User
	return s.User, nil
}

func (s *AuthState) Login(email, password string) (*models.Profile, error) {
	var body userEnvelope
	err := s.c.post("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &body)
	if err != nil {
		return nil, err
	}
	s.User = &body.User
	return s.User, nil
}

// FetchMe refreshes the cached user from the session cookie. A rejected
// session clears the cache rather than failing.
func (s *AuthState) FetchMe() (*models.Profile, error) {
	var body userEnvelope
	if err := s.c.get("/api/auth/me", &body); err != nil {
		s.User = nil
		return nil, nil
	}
	s.User = &body.User
	return s.User, nil
}

func (s *AuthState) Logout() error {
	err := s.c.post("/api/auth/logout", nil, nil)
	// Local state is cleared even when the call fails.
	s.User = nil
	return err
}

func (s *AuthState) IsAuthed() bool {
	return s.User != nil
}
