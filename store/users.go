package store

import (
	"errors"
	"sync"
	"time"

	"civicconnect-be/models"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRegistry is a small in-memory user directory backing the mock session
// auth. It is not persisted; accounts live for the process lifetime, with a
// pair of demo accounts registered at startup.
type UserRegistry struct {
	mu    sync.Mutex
	users []*models.User
}

func NewUserRegistry() *UserRegistry {
	r := &UserRegistry{}
	// Demo accounts; registration failures here would mean bcrypt itself is
	// broken, so they are ignored.
	_, _ = r.register("user1", "Demo Citizen", "citizen@example.com", "citizen123", models.RoleCitizen)
	_, _ = r.register("admin1", "Admin Team", "admin@example.com", "admin123", models.RoleAdmin)
	return r
}

// Register creates an account with a fresh id and a hashed password.
func (r *UserRegistry) Register(name, email, password string, role models.UserRole) (*models.User, error) {
	return r.register(uuid.NewString(), name, email, password, role)
}

func (r *UserRegistry) register(id, name, email, password string, role models.UserRole) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return nil, ErrEmailTaken
		}
	}
	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	r.users = append(r.users, user)
	out := *user
	return &out, nil
}

// Authenticate checks the email/password pair and returns the account.
func (r *UserRegistry) Authenticate(email, password string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			if !user.ComparePassword(password) {
				return nil, ErrInvalidCredentials
			}
			out := *user
			return &out, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// GetByID returns the account with the given id, or false.
func (r *UserRegistry) GetByID(id string) (*models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			out := *user
			return &out, true
		}
	}
	return nil, false
}
