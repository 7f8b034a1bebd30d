package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/repository/sqlite"
	"github.com/apexgym/members/internal/service"
)

func newTestAdminServices(t *testing.T) (*service.AuthService, *service.AdminService, *service.PoiService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	admin := service.NewAdminService(db.Users(), db.Pois(), db.Categories())
	pois := service.NewPoiService(db.Pois(), db.PoiImages(), db.Media(), db.Categories())
	if err := pois.SeedCategories(context.Background()); err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}
	return auth, admin, pois, db
}

func TestAdminService_ListMembers_ExcludesAdmins(t *testing.T) {
	auth, admin, _, _ := newTestAdminServices(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("member@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := auth.EnsureAdmin(ctx, "admin@example.com", "adminpass1"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	members, err := admin.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].Email != "member@example.com" {
		t.Fatalf("unexpected member %s", members[0].Email)
	}
}

func TestAdminService_ViewUser_WithFilter(t *testing.T) {
	auth, admin, poiSvc, _ := newTestAdminServices(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("viewed@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := poiSvc.Create(ctx, user.ID, "Dollymount Strand", "long beach", "Beach"); err != nil {
		t.Fatalf("Create poi: %v", err)
	}
	if _, err := poiSvc.Create(ctx, user.ID, "Phoenix Park", "big park", "Park"); err != nil {
		t.Fatalf("Create poi: %v", err)
	}

	// Unfiltered and "all" behave identically.
	for _, filter := range []string{"", "all"} {
		detail, err := admin.ViewUser(ctx, user.ID, filter)
		if err != nil {
			t.Fatalf("ViewUser(%q): %v", filter, err)
		}
		if len(detail.Pois) != 2 {
			t.Fatalf("ViewUser(%q): expected 2 pois, got %d", filter, len(detail.Pois))
		}
		if len(detail.Categories) == 0 {
			t.Fatalf("ViewUser(%q): expected category list", filter)
		}
	}

	detail, err := admin.ViewUser(ctx, user.ID, "Beach")
	if err != nil {
		t.Fatalf("ViewUser filtered: %v", err)
	}
	if len(detail.Pois) != 1 || detail.Pois[0].Name != "Dollymount Strand" {
		t.Fatalf("expected only the beach poi, got %+v", detail.Pois)
	}

	if _, err := admin.ViewUser(ctx, user.ID, "Volcano"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestAdminService_ViewUser_Missing(t *testing.T) {
	_, admin, _, _ := newTestAdminServices(t)

	_, err := admin.ViewUser(context.Background(), 9999, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdminService_DeleteUser_Cascades(t *testing.T) {
	auth, admin, poiSvc, db := newTestAdminServices(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("doomed@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	poi, err := poiSvc.Create(ctx, user.ID, "Dollymount Strand", "", "Beach")
	if err != nil {
		t.Fatalf("Create poi: %v", err)
	}
	if _, err := poiSvc.AttachImage(ctx, user.ID, poi.ID, "beach.jpg", "image/jpeg", []byte("jpegdata")); err != nil {
		t.Fatalf("AttachImage: %v", err)
	}

	if err := admin.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := db.Users().GetByID(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	pois, err := db.Pois().ListByUser(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(pois) != 0 {
		t.Fatalf("expected 0 dependent records, got %d", len(pois))
	}

	// Idempotent on re-invocation.
	if err := admin.DeleteUser(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
