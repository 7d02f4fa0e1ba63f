package models

import "time"

// RoleKind is the closed set of roles recognized by the authorization engine.
// Rank ordering between kinds lives in the services layer lookup table, not
// in the database.
type RoleKind string

const (
	RoleStudent            RoleKind = "student"
	RoleTeachingAssistant  RoleKind = "teaching_assistant"
	RoleInstructor         RoleKind = "instructor"
	RoleAdministrator      RoleKind = "administrator"
	RoleSuperAdministrator RoleKind = "super_administrator"
)

// ValidRoleKinds lists every recognized role kind.
var ValidRoleKinds = []RoleKind{
	RoleStudent,
	RoleTeachingAssistant,
	RoleInstructor,
	RoleAdministrator,
	RoleSuperAdministrator,
}

// IsValid reports whether k is one of the recognized role kinds.
func (k RoleKind) IsValid() bool {
	for _, v := range ValidRoleKinds {
		if k == v {
			return true
		}
	}
	return false
}

type Role struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name RoleKind `json:"name" gorm:"uniqueIndex;not null;size:50"`

	// Delegation chain between roles. Distinct from rank: an administrator
	// created by another administrator points at its creator's role here.
	// Acyclic by construction (seed data).
	ParentID *uint `json:"parent_id"`
	Parent   *Role `json:"parent,omitempty" gorm:"foreignKey:ParentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}
