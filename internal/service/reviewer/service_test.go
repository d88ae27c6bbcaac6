package reviewer

import (
	"context"
	"testing"

	"github.com/ashwinyue/faq-bot/internal/model"
	"github.com/ashwinyue/faq-bot/internal/repository"
	"github.com/ashwinyue/faq-bot/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	return NewService(repos, "U-ADMIN"), repos
}

func TestEnsureAdmin_Seeding(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin() failed: %v", err)
	}
	// 再次播种不产生重复行
	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("second EnsureAdmin() failed: %v", err)
	}

	n, err := repos.Reviewer.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("reviewer rows = %d, want 1", n)
	}

	var admin model.Reviewer
	if err := repos.DB.First(&admin, "user_id = ?", "U-ADMIN").Error; err != nil {
		t.Fatalf("admin row missing: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatal("seeded admin is not marked as admin")
	}
}

func TestRegister_AdminOnly(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "U-RANDO", "U-TARGET"); !IsForbidden(err) {
		t.Fatalf("Register() by non-admin error = %v, want forbidden", err)
	}

	n, err := repos.Reviewer.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("reviewer rows = %d, want 0 after forbidden attempt", n)
	}
}

func TestRegister_Deduplicates(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "U-ADMIN", "U-TARGET"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := svc.Register(ctx, "U-ADMIN", "U-TARGET"); err != nil {
		t.Fatalf("duplicate Register() failed: %v", err)
	}

	n, err := repos.Reviewer.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("reviewer rows = %d, want 1", n)
	}

	var target model.Reviewer
	if err := repos.DB.First(&target, "user_id = ?", "U-TARGET").Error; err != nil {
		t.Fatalf("target row missing: %v", err)
	}
	if target.IsAdmin {
		t.Fatal("registered reviewer should not be admin")
	}
}

func TestRegister_EmptyTarget(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Register(context.Background(), "U-ADMIN", "   ")
	if err == nil || IsForbidden(err) {
		t.Fatalf("Register() with empty target error = %v, want validation error", err)
	}
}
