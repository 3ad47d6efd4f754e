package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
)

func TestCategoryCRUD(t *testing.T) {
	cats := newMockCategoryRepo()
	cache := newMockContentCache()
	vis := NewVisibilityUseCase(newMockContentRepo(), cats, newMockSectionRepo(), cache, testLogger())
	uc := NewCategoryUseCase(cats, vis, testLogger())

	t.Run("create", func(t *testing.T) {
		cat, err := uc.Create(context.Background(), CategoryInput{Name: "Salud", Icon: "heart"}, "admin@example.com")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if cat.ID == "" || cat.CreatedBy != "admin@example.com" {
			t.Fatalf("bad category: %+v", cat)
		}
		if cache.invalidated != 1 {
			t.Fatal("create must invalidate the public content cache")
		}
	})

	t.Run("create rejects unknown icon", func(t *testing.T) {
		if _, err := uc.Create(context.Background(), CategoryInput{Name: "X", Icon: "rocket"}, "a"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		created, err := uc.Create(context.Background(), CategoryInput{Name: "Educación", Icon: "book"}, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		upd, err := uc.Update(context.Background(), created.ID, CategoryInput{Name: "Formación", Icon: "star"}, "editor@example.com")
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if upd.Name != "Formación" || upd.Icon != model.IconStar {
			t.Fatalf("update not applied: %+v", upd)
		}
		if upd.UpdatedBy != "editor@example.com" || upd.UpdatedAt == nil {
			t.Fatal("audit fields not set")
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		if _, err := uc.Update(context.Background(), "missing", CategoryInput{Name: "N", Icon: "book"}, "a"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		created, err := uc.Create(context.Background(), CategoryInput{Name: "Temporal", Icon: "globe"}, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		before := cache.invalidated
		if err := uc.Delete(context.Background(), created.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if cache.invalidated != before+1 {
			t.Fatal("delete must invalidate the public content cache")
		}
		if err := uc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("second delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestSectionCRUD(t *testing.T) {
	cats := newMockCategoryRepo()
	secs := newMockSectionRepo()
	cache := newMockContentCache()
	vis := NewVisibilityUseCase(newMockContentRepo(), cats, secs, cache, testLogger())
	uc := NewSectionUseCase(secs, cats, vis, testLogger())

	cat, _ := model.NewCategory("cat-1", "Salud", "", "heart", "seed")
	cats.Save(context.Background(), nil, cat)

	t.Run("create requires existing category", func(t *testing.T) {
		_, err := uc.Create(context.Background(), SectionInput{CategoryID: "missing", Name: "N", Countries: []string{"MX"}}, "a")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("create validates countries", func(t *testing.T) {
		_, err := uc.Create(context.Background(), SectionInput{CategoryID: cat.ID, Name: "N", Countries: []string{"BR"}}, "a")
		if !errors.Is(err, domain.ErrUnsupportedCountry) {
			t.Fatalf("got %v, want ErrUnsupportedCountry", err)
		}
	})

	t.Run("create and list", func(t *testing.T) {
		sec, err := uc.Create(context.Background(), SectionInput{CategoryID: cat.ID, Name: "Nutrición", Countries: []string{"MX", "PA"}}, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		list, err := uc.ListByCategory(context.Background(), cat.ID)
		if err != nil || len(list) != 1 || list[0].ID != sec.ID {
			t.Fatalf("ListByCategory = %v, %v", list, err)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		sec, err := uc.Create(context.Background(), SectionInput{CategoryID: cat.ID, Name: "Temp", Countries: []string{"MX"}}, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		upd, err := uc.Update(context.Background(), sec.ID, SectionInput{Name: "Permanente", Countries: []string{"CO"}}, "b")
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if upd.Name != "Permanente" || len(upd.Countries) != 1 || upd.Countries[0] != "CO" {
			t.Fatalf("update not applied: %+v", upd)
		}
		if err := uc.Delete(context.Background(), sec.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := uc.Delete(context.Background(), sec.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("second delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestContentCRUD(t *testing.T) {
	contents := newMockContentRepo()
	cats := newMockCategoryRepo()
	secs := newMockSectionRepo()
	cache := newMockContentCache()
	vis := NewVisibilityUseCase(contents, cats, secs, cache, testLogger())
	uc := NewContentUseCase(contents, secs, vis, testLogger())

	cat, _ := model.NewCategory("cat-1", "Salud", "", "heart", "seed")
	sec, _ := model.NewSection("sec-1", cat.ID, "Nutrición", "", []string{"MX"}, "seed")
	cats.Save(context.Background(), nil, cat)
	secs.Save(context.Background(), nil, sec)

	base := ContentInput{
		Title: "Guía de nutrición", CategoryID: cat.ID, SectionID: sec.ID,
		Type: "Video", URL: "https://cdn.example.com/guia.mp4",
		Countries: []string{"MX"}, Status: "Published",
	}

	t.Run("create defaults publishedAt", func(t *testing.T) {
		item, err := uc.Create(context.Background(), base, "admin@example.com")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if item.PublishedAt.IsZero() {
			t.Fatal("publishedAt must default to now")
		}
		if len(item.ID) != 26 {
			t.Fatalf("content IDs are ULIDs, got %q", item.ID)
		}
		if cache.invalidated == 0 {
			t.Fatal("create must invalidate the public content cache")
		}
	})

	t.Run("create rejects section/category mismatch", func(t *testing.T) {
		in := base
		in.CategoryID = "other-cat"
		if _, err := uc.Create(context.Background(), in, "a"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("update rejects expiry before publish", func(t *testing.T) {
		item, err := uc.Create(context.Background(), base, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		in := base
		bad := item.PublishedAt.Add(-time.Hour)
		in.PublishedAt = item.PublishedAt
		in.ExpiresAt = &bad
		if _, err := uc.Update(context.Background(), item.ID, in, "a"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("update and audit", func(t *testing.T) {
		item, err := uc.Create(context.Background(), base, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		in := base
		in.Title = "Guía actualizada"
		in.Status = "Draft"
		upd, err := uc.Update(context.Background(), item.ID, in, "editor@example.com")
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if upd.Title != "Guía actualizada" || upd.Status != model.StatusDraft {
			t.Fatalf("update not applied: %+v", upd)
		}
		if upd.UpdatedBy != "editor@example.com" || upd.UpdatedAt == nil {
			t.Fatal("audit fields not set")
		}
	})

	t.Run("delete", func(t *testing.T) {
		item, err := uc.Create(context.Background(), base, "a")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := uc.Delete(context.Background(), item.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := uc.Get(context.Background(), item.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}

func TestUserCRUD(t *testing.T) {
	users := newMockUserRepo()
	uc := NewUserUseCase(users, nil, testLogger())

	t.Run("create hashes password and defaults countries", func(t *testing.T) {
		u, err := uc.Create(context.Background(), UserInput{
			Email: "Ana@Example.com", Password: "secreta", Roles: []string{model.RoleContentManager},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if u.Email != "ana@example.com" {
			t.Fatalf("email not normalized: %s", u.Email)
		}
		if u.PasswordHash == "secreta" || u.PasswordHash == "" {
			t.Fatal("password must be stored hashed")
		}
		if len(u.Countries) != len(model.SupportedCountries()) {
			t.Fatalf("default countries = %v", u.Countries)
		}
		if u.Name != "ana" {
			t.Fatalf("name must default from the email local part, got %q", u.Name)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.Create(context.Background(), UserInput{Email: "ana@example.com", Password: "x", Roles: []string{model.RoleAdmin}})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("got %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("update patches selectively", func(t *testing.T) {
		u, err := uc.Create(context.Background(), UserInput{Email: "beto@example.com", Password: "x", Roles: []string{model.RoleAdmin}})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		oldHash := u.PasswordHash
		inactive := false
		upd, err := uc.Update(context.Background(), u.ID, UserInput{Name: "Beto", IsActive: &inactive})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if upd.Name != "Beto" || upd.IsActive {
			t.Fatalf("patch not applied: %+v", upd)
		}
		if upd.PasswordHash != oldHash {
			t.Fatal("blank password must keep the current hash")
		}
		if upd.Roles[0] != model.RoleAdmin {
			t.Fatal("roles must survive an empty patch")
		}
	})

	t.Run("update rejects unknown role", func(t *testing.T) {
		u, _ := uc.Create(context.Background(), UserInput{Email: "carla@example.com", Password: "x", Roles: []string{model.RoleAdmin}})
		if _, err := uc.Update(context.Background(), u.ID, UserInput{Roles: []string{"SuperUser"}}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("delete by email", func(t *testing.T) {
		if err := uc.DeleteByEmail(context.Background(), "ana@example.com"); err != nil {
			t.Fatalf("DeleteByEmail: %v", err)
		}
		if err := uc.DeleteByEmail(context.Background(), "ana@example.com"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
		if err := uc.DeleteByEmail(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("got %v, want ErrInvalidArgument", err)
		}
	})
}
