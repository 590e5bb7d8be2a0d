package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyspace/pkg/domain"
)

// Role selects which views a session may use.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Session is the result of a successful login.
type Session struct {
	ID       string    `json:"id"`
	Role     Role      `json:"role"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Login accepts any non-empty username and password. There is no credential
// store; the session only records who is using the tool and in which role.
func (s *Service) Login(ctx context.Context, role Role, username, password string) (Session, error) {
	var session Session
	err := s.run(ctx, "login", func(context.Context) error {
		switch role {
		case RoleStudent, RoleAdmin:
		default:
			return &domain.InvalidInputError{Field: "role", Value: string(role), Reason: "must be student or admin"}
		}
		username = strings.TrimSpace(username)
		if username == "" {
			return &domain.InvalidInputError{Field: "username", Reason: "is required"}
		}
		if password == "" {
			return &domain.InvalidInputError{Field: "password", Reason: "is required"}
		}
		session = Session{ID: uuid.NewString(), Role: role, Username: username, IssuedAt: s.now()}
		s.logger.Info("session started", "role", role, "username", username)
		return nil
	})
	return session, err
}
