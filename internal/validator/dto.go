package validator

// UserCreateRequest represents the request structure for registering users
type UserCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100,login_name"`
	FullName      string `json:"full_name" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	RoleID        uint   `json:"role_id" validate:"required"`
	InstitutionID *uint  `json:"institution_id"`
	ParentID      *uint  `json:"parent_id"`
}

// UserUpdateRequest represents the request structure for updating users
type UserUpdateRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Password      *string `json:"password" validate:"omitempty,min=8,max=72"`
	InstitutionID *uint   `json:"institution_id"`

	// Notification preferences
	EmailOnSubmission     *bool `json:"email_on_submission"`
	EmailOnReview         *bool `json:"email_on_review"`
	EmailOnReviewOfReview *bool `json:"email_on_review_of_review"`
	CopyOfEmails          *bool `json:"copy_of_emails"`
	EtcIconsOnHomepage    *bool `json:"etc_icons_on_homepage"`
}

// LoginRequest carries the login identifier (email or login name) and password
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=72"`
}

// ImpersonateRequest names the user the actor wants to act as
type ImpersonateRequest struct {
	TargetID uint `json:"target_id" validate:"required"`
}
