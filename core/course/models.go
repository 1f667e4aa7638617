package course

import (
	"time"

	"github.com/trezcool/edunotify/core"
)

type Course struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description string    `json:"description" db:"description"`
	TeacherID   string    `json:"teacherId" db:"teacher_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string `json:"name" validate:"required,notblank"`
	Code        string `json:"code" validate:"required,notblank"`
	Description string `json:"description"`
	TeacherID   string `json:"teacherId" validate:"required,notblank"`
}

func (nc *NewCourse) Validate(v *core.Validator) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code)
	nc.Description = core.CleanString(nc.Description)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	return v.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Nil fields are left unchanged.
type UpdateCourse struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	TeacherID   *string `json:"teacherId"`
}

func (uc *UpdateCourse) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		uc.Name = &name
		checks = append(checks, core.Check("name", name, "notblank"))
	}
	if uc.Code != nil {
		code := core.CleanString(*uc.Code)
		uc.Code = &code
		checks = append(checks, core.Check("code", code, "notblank"))
	}
	if uc.Description != nil {
		desc := core.CleanString(*uc.Description)
		uc.Description = &desc
	}
	if uc.TeacherID != nil {
		teacherID := core.CleanString(*uc.TeacherID)
		uc.TeacherID = &teacherID
		checks = append(checks, core.Check("teacherId", teacherID, "notblank"))
	}
	return v.Fields(checks...)
}

// QueryFilter restricts course queries. Empty fields do not filter.
type QueryFilter struct {
	TeacherID string
}
