package behavior

import (
	"time"

	"github.com/trezcool/edunotify/core"
)

// Type of a BehaviorReport.
type Type string

const (
	TypePositive Type = "POSITIVE"
	TypeNegative Type = "NEGATIVE"
	TypeNeutral  Type = "NEUTRAL"
)

// Types lists every valid Type.
var Types = []Type{TypePositive, TypeNegative, TypeNeutral}

func (t Type) IsValid() bool {
	for _, typ := range Types {
		if t == typ {
			return true
		}
	}
	return false
}

type Report struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Type        Type      `json:"type" db:"type"`
	StudentID   string    `json:"studentId" db:"student_id"`
	TeacherID   string    `json:"teacherId" db:"teacher_id"` // author, never changes
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewReport contains information needed to file a new Report.
type NewReport struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Type        Type   `json:"type" validate:"required,behaviortype"`
	StudentID   string `json:"studentId" validate:"required,notblank"`
}

func (nr *NewReport) Validate(v *core.Validator) error {
	nr.Title = core.CleanString(nr.Title)
	nr.Description = core.CleanString(nr.Description)
	nr.StudentID = core.CleanString(nr.StudentID)
	return v.Struct(nr)
}

// UpdateReport defines what information may be provided to modify an existing Report.
// Nil fields are left unchanged.
type UpdateReport struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *Type   `json:"type"`
}

func (ur *UpdateReport) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if ur.Title != nil {
		title := core.CleanString(*ur.Title)
		ur.Title = &title
		checks = append(checks, core.Check("title", title, "notblank"))
	}
	if ur.Description != nil {
		description := core.CleanString(*ur.Description)
		ur.Description = &description
		checks = append(checks, core.Check("description", description, "notblank"))
	}
	if ur.Type != nil {
		checks = append(checks, core.Check("type", *ur.Type, "behaviortype"))
	}
	return v.Fields(checks...)
}

// QueryFilter restricts report queries. Empty fields do not filter.
type QueryFilter struct {
	StudentID string
}
