package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
	"github.com/SAP-F-2025/identity-service/internal/validator"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNameTaken          = errors.New("login name already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type userService struct {
	repo      repositories.Repository
	directory UserDirectoryService
	validator *validator.Validator
	audit     AuditService
	logger    *slog.Logger
}

func NewUserService(
	repo repositories.Repository,
	directory UserDirectoryService,
	v *validator.Validator,
	audit AuditService,
	logger *slog.Logger,
) UserService {
	return &userService{
		repo:      repo,
		directory: directory,
		validator: v,
		audit:     audit,
		logger:    logger,
	}
}

func (s *userService) Register(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	req.Name = strings.ToLower(strings.TrimSpace(req.Name))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	if taken, err := s.repo.User().ExistsByName(ctx, req.Name); err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	} else if taken {
		return nil, ErrNameTaken
	}

	role, err := s.repo.Role().GetByID(ctx, req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %d: %w", req.RoleID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:          req.Name,
		FullName:      req.FullName,
		Email:         req.Email,
		PasswordHash:  string(hash),
		RoleID:        role.ID,
		Role:          role,
		InstitutionID: req.InstitutionID,
		ParentID:      req.ParentID,

		// New accounts start with notifications off and the extended
		// homepage icons on.
		EtcIconsOnHomepage: true,
		IsNewUser:          true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "name", user.Name, "role", role.Name)

	if err := s.audit.RecordUserRegistered(ctx, user); err != nil {
		s.logger.Error("Failed to publish registration event", "error", err, "user_id", user.ID)
	}

	return s.toResponse(user), nil
}

// Authenticate resolves the identifier through the directory and verifies the
// password. Both an unknown identifier and a wrong password surface as
// ErrInvalidCredentials so the response does not leak which one failed.
func (s *userService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.directory.ResolveLogin(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return s.toResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*UserResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if taken, err := s.repo.User().ExistsByEmail(ctx, email); err != nil {
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			} else if taken {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.InstitutionID != nil {
		user.InstitutionID = req.InstitutionID
	}
	if req.EmailOnSubmission != nil {
		user.EmailOnSubmission = *req.EmailOnSubmission
	}
	if req.EmailOnReview != nil {
		user.EmailOnReview = *req.EmailOnReview
	}
	if req.EmailOnReviewOfReview != nil {
		user.EmailOnReviewOfReview = *req.EmailOnReviewOfReview
	}
	if req.CopyOfEmails != nil {
		user.CopyOfEmails = *req.CopyOfEmails
	}
	if req.EtcIconsOnHomepage != nil {
		user.EtcIconsOnHomepage = *req.EtcIconsOnHomepage
	}

	// Any profile edit clears the first-login flag.
	user.IsNewUser = false

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	return s.toResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.User().GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user %d: %w", id, err)
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	s.logger.Info("User deleted", "user_id", id)

	if err := s.audit.RecordUserDeleted(ctx, id); err != nil {
		s.logger.Error("Failed to publish deletion event", "error", err, "user_id", id)
	}

	return nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, s.toResponse(user))
	}

	page := 1
	if filters.Limit > 0 {
		page = filters.Offset/filters.Limit + 1
	}

	return &UserListResponse{
		Users: responses,
		Total: total,
		Page:  page,
		Size:  filters.Limit,
	}, nil
}

func (s *userService) toResponse(user *models.User) *UserResponse {
	resp := &UserResponse{User: user}
	if user.Role != nil {
		resp.RoleName = user.Role.Name
	}
	return resp
}
