package models

import "time"

type User struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Login name. Unique and lowercase-only (enforced at validation).
	Name     string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	FullName string `json:"full_name" gorm:"not null;size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	// bcrypt hash, never serialized and never compared in plaintext.
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	RoleID uint  `json:"role_id" gorm:"not null"`
	Role   *Role `json:"role,omitempty" gorm:"foreignKey:RoleID"`

	InstitutionID *uint        `json:"institution_id"`
	Institution   *Institution `json:"institution,omitempty" gorm:"foreignKey:InstitutionID"`

	// Sub-account delegation. Children are detached, not removed, when the
	// parent account is deleted (see UserRepository.Delete).
	ParentID *uint  `json:"parent_id"`
	Parent   *User  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []User `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`

	// Notification preferences
	EmailOnSubmission     bool `json:"email_on_submission" gorm:"default:false"`
	EmailOnReview         bool `json:"email_on_review" gorm:"default:false"`
	EmailOnReviewOfReview bool `json:"email_on_review_of_review" gorm:"default:false"`
	CopyOfEmails          bool `json:"copy_of_emails" gorm:"default:false"`

	// Homepage preferences
	EtcIconsOnHomepage bool `json:"etc_icons_on_homepage" gorm:"default:true"`

	// Status
	IsNewUser bool `json:"is_new_user" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Institution is pre-existing reference data; users optionally belong to one.
type Institution struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Institution) TableName() string {
	return "institutions"
}
