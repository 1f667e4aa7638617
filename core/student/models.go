package student

import (
	"time"

	"github.com/trezcool/edunotify/core"
)

type Student struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Grade     string    `json:"grade" db:"grade"` // grade level label, e.g. "Grade 8"
	ParentID  string    `json:"parentId" db:"parent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name     string `json:"name" validate:"required,notblank"`
	Grade    string `json:"grade" validate:"required,notblank"`
	ParentID string `json:"parentId" validate:"required,notblank"`
}

func (ns *NewStudent) Validate(v *core.Validator) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Grade = core.CleanString(ns.Grade)
	ns.ParentID = core.CleanString(ns.ParentID)
	return v.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Nil fields are left unchanged.
type UpdateStudent struct {
	Name     *string `json:"name"`
	Grade    *string `json:"grade"`
	ParentID *string `json:"parentId"`
}

func (us *UpdateStudent) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if us.Name != nil {
		name := core.CleanString(*us.Name)
		us.Name = &name
		checks = append(checks, core.Check("name", name, "notblank"))
	}
	if us.Grade != nil {
		grd := core.CleanString(*us.Grade)
		us.Grade = &grd
		checks = append(checks, core.Check("grade", grd, "notblank"))
	}
	if us.ParentID != nil {
		parentID := core.CleanString(*us.ParentID)
		us.ParentID = &parentID
		checks = append(checks, core.Check("parentId", parentID, "notblank"))
	}
	return v.Fields(checks...)
}

// QueryFilter restricts student queries. Empty fields do not filter.
type QueryFilter struct {
	ParentID string
}
