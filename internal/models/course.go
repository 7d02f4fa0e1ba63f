package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course and its assignments are owned by the course service; this service
// reads them to answer instructor/TA relationship questions.
type Course struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:200"`

	InstructorID uint  `json:"instructor_id" gorm:"not null;index"`
	Instructor   *User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// TaMapping assigns a teaching assistant to a course.
type TaMapping struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	TaID     uint    `json:"ta_id" gorm:"not null;index"`
	Ta       *User   `json:"ta,omitempty" gorm:"foreignKey:TaID"`
	CourseID uint    `json:"course_id" gorm:"not null;index"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time `json:"created_at"`
}

func (TaMapping) TableName() string {
	return "ta_mappings"
}

type Assignment struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null;size:200"`
	CourseID uint    `json:"course_id" gorm:"not null;index"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	DueDate datatypes.Date `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentParticipant enrolls a student in an assignment. Course
// participation is derived from it: a student participates in a course when
// any of the course's assignments carries their participant record.
type AssignmentParticipant struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	AssignmentID uint        `json:"assignment_id" gorm:"not null;index"`
	Assignment   *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	User         *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
}

func (AssignmentParticipant) TableName() string {
	return "assignment_participants"
}
