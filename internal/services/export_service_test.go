package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

func TestRosterExportService_ExportVisibleUsers(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository()
	repo.addRole(1, models.RoleStudent, nil)
	repo.addRole(3, models.RoleInstructor, nil)
	repo.addRole(4, models.RoleAdministrator, nil)
	repo.addRole(5, models.RoleSuperAdministrator, nil)

	instructor := repo.addUser(&models.User{Name: "ike", FullName: "Ike Instructor", Email: "ike@uni.edu", RoleID: 3})
	repo.addUser(&models.User{Name: "sam", FullName: "Sam Student", Email: "sam@uni.edu", RoleID: 1})
	repo.addUser(&models.User{Name: "root", FullName: "Root", Email: "root@uni.edu", RoleID: 5})

	logger := testLogger()
	svc := NewRosterExportService(repo, NewRoleGraphService(repo, logger), logger)

	workbook, err := svc.ExportVisibleUsers(ctx, instructor)
	if err != nil {
		t.Fatalf("ExportVisibleUsers returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		t.Fatalf("Exported bytes are not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("Failed to read Users sheet: %v", err)
	}

	// Header plus the instructor and the student; the super-administrator is
	// outside the instructor's visibility.
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0][1] != "Login" {
		t.Errorf("Header row mismatch: %v", rows[0])
	}

	logins := map[string]bool{}
	for _, row := range rows[1:] {
		logins[row[1]] = true
	}
	if !logins["ike"] || !logins["sam"] {
		t.Errorf("Expected ike and sam in export, got %v", logins)
	}
	if logins["root"] {
		t.Error("Super-administrator must not appear in an instructor's export")
	}
}
