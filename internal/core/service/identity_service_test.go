package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

func TestIdentityService_Register(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewIdentityService(repo, domain.DefaultIdentifierPolicy, zerolog.Nop())

	got, err := svc.Register(context.Background(), ports.IdentityInput{Identifier: " 2310170 ", Name: "Jon Snow", Position: "President"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.ID == 0 || got.Identifier != "2310170" {
		t.Fatalf("unexpected identity: %+v", got)
	}

	if _, err := svc.Register(context.Background(), ports.IdentityInput{Identifier: "2310170", Name: "Again"}); !errors.Is(err, domain.ErrIdentityExists) {
		t.Errorf("expected ErrIdentityExists, got %v", err)
	}
}

func TestIdentityService_RegisterValidation(t *testing.T) {
	svc := NewIdentityService(newStubIdentityRepo(), domain.DefaultIdentifierPolicy, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.IdentityInput{Identifier: "12", Name: "Jon"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["identifier"] != "must be exactly 7 characters" {
		t.Fatalf("expected identifier validation error, got %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.IdentityInput{Identifier: "2310170"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected missing name to fail validation, got %v", err)
	}
}

func TestIdentityService_FreeFormPolicy(t *testing.T) {
	svc := NewIdentityService(newStubIdentityRepo(), domain.IdentifierPolicy{}, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.IdentityInput{Identifier: "RFID-A1", Name: "Tag"}); err != nil {
		t.Fatalf("expected free-form identifier to be accepted, got %v", err)
	}
}

func TestIdentityService_EditKeepsIdentifier(t *testing.T) {
	repo := newStubIdentityRepo(jonSnow)
	svc := NewIdentityService(repo, domain.DefaultIdentifierPolicy, zerolog.Nop())

	if _, err := svc.Edit(context.Background(), 1, ports.IdentityInput{Identifier: "7777777", Name: "Jon"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected identifier change to be rejected, got %v", err)
	}

	got, err := svc.Edit(context.Background(), 1, ports.IdentityInput{Name: "Lord Snow", Position: "Commander"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Name != "Lord Snow" || got.Position != "Commander" || got.Identifier != "2310170" {
		t.Errorf("unexpected identity after edit: %+v", got)
	}
}

func TestIdentityService_EditKeepsBlankFields(t *testing.T) {
	repo := newStubIdentityRepo(jonSnow)
	svc := NewIdentityService(repo, domain.DefaultIdentifierPolicy, zerolog.Nop())

	got, err := svc.Edit(context.Background(), 1, ports.IdentityInput{Name: "Lord Snow"})
	if err != nil {
		t.Fatalf("name-only edit: %v", err)
	}
	if got.Name != "Lord Snow" || got.Position != "Officer" {
		t.Fatalf("name-only edit must keep position, got %+v", got)
	}

	got, err = svc.Edit(context.Background(), 1, ports.IdentityInput{Position: "  Commander  "})
	if err != nil {
		t.Fatalf("position-only edit: %v", err)
	}
	if got.Name != "Lord Snow" || got.Position != "Commander" {
		t.Fatalf("position-only edit must keep name, got %+v", got)
	}
}

func TestIdentityService_Remove(t *testing.T) {
	repo := newStubIdentityRepo(jonSnow)
	svc := NewIdentityService(repo, domain.DefaultIdentifierPolicy, zerolog.Nop())

	if err := svc.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(context.Background(), 1); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Errorf("expected ErrIdentityNotFound, got %v", err)
	}
}
