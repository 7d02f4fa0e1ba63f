package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

func newDirectoryFixture(t *testing.T) (*mockRepository, UserDirectoryService) {
	t.Helper()

	repo := newMockRepository()
	repo.addRole(1, models.RoleStudent, nil)
	repo.addRole(2, models.RoleTeachingAssistant, nil)
	repo.addRole(3, models.RoleInstructor, nil)
	repo.addRole(4, models.RoleAdministrator, nil)
	repo.addRole(5, models.RoleSuperAdministrator, nil)

	logger := testLogger()
	roleGraph := NewRoleGraphService(repo, logger)
	return repo, NewUserDirectoryService(repo, roleGraph, logger)
}

func TestUserDirectoryService_ResolveLogin(t *testing.T) {
	ctx := context.Background()
	repo, dir := newDirectoryFixture(t)

	alice := repo.addUser(&models.User{Name: "alice", FullName: "Alice A", Email: "alice@uni.edu", RoleID: 1})
	repo.addUser(&models.User{Name: "bob", FullName: "Bob B", Email: "bob@uni.edu", RoleID: 1})

	t.Run("ExactEmail", func(t *testing.T) {
		user, err := dir.ResolveLogin(ctx, "alice@uni.edu")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user == nil || user.ID != alice.ID {
			t.Errorf("Expected alice, got %+v", user)
		}
	})

	t.Run("LocalPartFallback", func(t *testing.T) {
		// Unknown domain, but the portion before @ matches a login name.
		user, err := dir.ResolveLogin(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user == nil || user.ID != alice.ID {
			t.Errorf("Expected alice via local part, got %+v", user)
		}
	})

	t.Run("BareLoginName", func(t *testing.T) {
		user, err := dir.ResolveLogin(ctx, "bob")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user == nil || user.Name != "bob" {
			t.Errorf("Expected bob, got %+v", user)
		}
	})

	t.Run("AbsenceIsNotAnError", func(t *testing.T) {
		user, err := dir.ResolveLogin(ctx, "nobody@nowhere.net")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil for unknown identifier, got %+v", user)
		}
	})

	t.Run("AmbiguousNameReturnsNil", func(t *testing.T) {
		repo.addUser(&models.User{Name: "dup", FullName: "Dup One", Email: "dup1@uni.edu", RoleID: 1})
		repo.addUser(&models.User{Name: "dup", FullName: "Dup Two", Email: "dup2@uni.edu", RoleID: 1})

		user, err := dir.ResolveLogin(ctx, "dup@example.com")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user != nil {
			t.Errorf("Ambiguous name must not resolve, got %+v", user)
		}
	})

	t.Run("EmptyIdentifier", func(t *testing.T) {
		user, err := dir.ResolveLogin(ctx, "   ")
		if err != nil {
			t.Fatalf("ResolveLogin returned error: %v", err)
		}
		if user != nil {
			t.Errorf("Blank identifier must not resolve, got %+v", user)
		}
	})
}

func TestUserDirectoryService_SearchVisibleByName(t *testing.T) {
	ctx := context.Background()

	t.Run("VisibilityFilter", func(t *testing.T) {
		repo, dir := newDirectoryFixture(t)

		student := repo.addUser(&models.User{Name: "pam", FullName: "Pam Common", Email: "pam@uni.edu", RoleID: 1})
		repo.addUser(&models.User{Name: "pat", FullName: "Pat Common", Email: "pat@uni.edu", RoleID: 3})

		results, err := dir.SearchVisibleByName(ctx, student, "Common")
		if err != nil {
			t.Fatalf("SearchVisibleByName returned error: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Student should only see peers, got %d results", len(results))
		}
		if results[0].ID != student.ID {
			t.Errorf("Expected the student themselves, got %s", results[0].Name)
		}
	})

	t.Run("ResultCap", func(t *testing.T) {
		repo, dir := newDirectoryFixture(t)
		admin := repo.addUser(&models.User{Name: "boss", FullName: "The Boss", Email: "boss@uni.edu", RoleID: 4})

		for i := 0; i < 25; i++ {
			repo.addUser(&models.User{
				Name:     fmt.Sprintf("zed%02d", i),
				FullName: fmt.Sprintf("Zed Common %02d", i),
				Email:    fmt.Sprintf("zed%02d@uni.edu", i),
				RoleID:   1,
			})
		}

		results, err := dir.SearchVisibleByName(ctx, admin, "Common")
		if err != nil {
			t.Fatalf("SearchVisibleByName returned error: %v", err)
		}
		if len(results) != searchResultLimit {
			t.Errorf("Expected %d results, got %d", searchResultLimit, len(results))
		}
	})

	t.Run("ScanCapLimitsRecall", func(t *testing.T) {
		repo, dir := newDirectoryFixture(t)
		admin := repo.addUser(&models.User{Name: "boss", FullName: "The Boss", Email: "boss@uni.edu", RoleID: 4})

		// 20 instructors sort before the lone student; the student never
		// enters the scan window, and instructors outnumber the result cap.
		for i := 0; i < 20; i++ {
			repo.addUser(&models.User{
				Name:     fmt.Sprintf("aa%02d", i),
				FullName: fmt.Sprintf("Aa Common %02d", i),
				Email:    fmt.Sprintf("aa%02d@uni.edu", i),
				RoleID:   3,
			})
		}
		repo.addUser(&models.User{Name: "zz", FullName: "Zz Common", Email: "zz@uni.edu", RoleID: 1})

		results, err := dir.SearchVisibleByName(ctx, admin, "Common")
		if err != nil {
			t.Fatalf("SearchVisibleByName returned error: %v", err)
		}
		for _, r := range results {
			if r.Name == "zz" {
				t.Error("User beyond the scan window should not appear")
			}
		}
		if len(results) != searchResultLimit {
			t.Errorf("Expected %d results from the scan window, got %d", searchResultLimit, len(results))
		}
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		repo, dir := newDirectoryFixture(t)
		admin := repo.addUser(&models.User{Name: "boss", FullName: "The Boss", Email: "boss@uni.edu", RoleID: 4})

		results, err := dir.SearchVisibleByName(ctx, admin, "  ")
		if err != nil {
			t.Fatalf("SearchVisibleByName returned error: %v", err)
		}
		if results != nil {
			t.Errorf("Blank query should return nothing, got %d results", len(results))
		}
	})
}
