package core

import (
	"context"
	"errors"
	"testing"

	"studyspace/pkg/domain"
)

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	s, err := svc.Login(context.Background(), RoleStudent, "  2021-0001 ", "anything")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.ID == "" || s.Username != "2021-0001" || s.Role != RoleStudent || !s.IssuedAt.Equal(testNow) {
		t.Fatalf("unexpected session %+v", s)
	}
	other, _ := svc.Login(context.Background(), RoleAdmin, "admin", "x")
	if other.ID == s.ID {
		t.Fatalf("session ids must be unique")
	}

	cases := []struct {
		role     Role
		user     string
		password string
		field    string
	}{
		{"guest", "u", "p", "role"},
		{RoleStudent, " ", "p", "username"},
		{RoleAdmin, "u", "", "password"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.role, tc.user, tc.password)
		var inv *domain.InvalidInputError
		if !errors.As(err, &inv) || inv.Field != tc.field {
			t.Fatalf("login(%q,%q,%q): expected %s error, got %v", tc.role, tc.user, tc.password, tc.field, err)
		}
	}
}
