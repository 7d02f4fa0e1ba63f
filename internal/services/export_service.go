package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

const exportSheetName = "Users"

// exportBatchSize pages the listing so a large directory does not get loaded
// in one query.
const exportBatchSize = 500

type rosterExportService struct {
	repo      repositories.Repository
	roleGraph RoleGraphService
	logger    *slog.Logger
}

func NewRosterExportService(repo repositories.Repository, roleGraph RoleGraphService, logger *slog.Logger) RosterExportService {
	return &rosterExportService{
		repo:      repo,
		roleGraph: roleGraph,
		logger:    logger,
	}
}

// ExportVisibleUsers renders an xlsx roster of every user whose role is at or
// below the requester's rank.
func (s *rosterExportService) ExportVisibleUsers(ctx context.Context, requester *models.User) ([]byte, error) {
	role, err := s.requesterRole(ctx, requester)
	if err != nil {
		return nil, err
	}

	visible, err := s.roleGraph.SubordinateRolesAndSelf(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible roles for user %d: %w", requester.ID, err)
	}

	roleIDs := make([]uint, 0, len(visible))
	roleNames := make(map[uint]models.RoleKind, len(visible))
	for _, r := range visible {
		roleIDs = append(roleIDs, r.ID)
		roleNames[r.ID] = r.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheetName)

	headers := []string{"ID", "Login", "Full Name", "Email", "Role", "Created"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	offset := 0
	for {
		users, _, err := s.repo.User().List(ctx, repositories.UserFilters{
			RoleIDs:   roleIDs,
			Limit:     exportBatchSize,
			Offset:    offset,
			SortBy:    "name",
			SortOrder: "asc",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list users for export: %w", err)
		}

		for _, user := range users {
			values := []interface{}{
				user.ID,
				user.Name,
				user.FullName,
				user.Email,
				string(roleNames[user.RoleID]),
				user.CreatedAt.Format("2006-01-02"),
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, fmt.Errorf("failed to build cell: %w", err)
				}
				if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write row %d: %w", row, err)
				}
			}
			row++
		}

		if len(users) < exportBatchSize {
			break
		}
		offset += exportBatchSize
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Exported user roster", "requester_id", requester.ID, "rows", row-2)
	return buf.Bytes(), nil
}

func (s *rosterExportService) requesterRole(ctx context.Context, requester *models.User) (*models.Role, error) {
	if requester.Role != nil {
		return requester.Role, nil
	}

	role, err := s.repo.Role().GetByID(ctx, requester.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role for user %d: %w", requester.ID, err)
	}
	return role, nil
}
