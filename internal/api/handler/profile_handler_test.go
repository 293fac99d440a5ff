package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/domain"
)

type stubProfileService struct {
	profiles map[uint]domain.Profile
}

func (s *stubProfileService) Get(_ context.Context, userID uint) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		p = domain.DefaultProfile(userID)
	}
	return &p, nil
}

func (s *stubProfileService) Update(_ context.Context, p domain.Profile) (*domain.Profile, error) {
	s.profiles[p.UserID] = p
	return &p, nil
}

func TestProfileHandler_RequiresPrincipal(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{profiles: map[uint]domain.Profile{}})
	c := newTestEcho().NewContext(httptest.NewRequest(http.MethodGet, "/profile/", nil), httptest.NewRecorder())

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProfileHandler_PartialUpdate(t *testing.T) {
	stub := &stubProfileService{profiles: map[uint]domain.Profile{
		3: {UserID: 3, Bio: "Lord Commander", Theme: domain.ThemeLight, NotificationsEnabled: true},
	}}
	h := NewProfileHandler(stub)

	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(jsonRequest(http.MethodPut, "/profile/", `{"theme":"dark"}`), rec)
	c.Set("principal", domain.Principal{UserID: 3})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got domain.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Theme != domain.ThemeDark || got.Bio != "Lord Commander" || !got.NotificationsEnabled {
		t.Fatalf("omitted fields must be preserved: %+v", got)
	}
}

func TestProfileHandler_RejectsUnknownTheme(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{profiles: map[uint]domain.Profile{}})

	c := newTestEcho().NewContext(jsonRequest(http.MethodPut, "/profile/", `{"theme":"neon"}`), httptest.NewRecorder())
	c.Set("principal", domain.Principal{UserID: 3})

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
