package event

import (
	"time"

	"github.com/trezcool/edunotify/core"
)

type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`            // UTC
	CreatedBy   string    `json:"createdBy" db:"created_by"` // author, never changes
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewEvent contains information needed to schedule a new Event.
// Date accepts any of core.DateLayouts.
type NewEvent struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Date        string `json:"date" validate:"required,datetime_any"`
}

func (ne *NewEvent) Validate(v *core.Validator) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	return v.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an existing Event.
// Nil fields are left unchanged.
type UpdateEvent struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

func (ue *UpdateEvent) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if ue.Title != nil {
		title := core.CleanString(*ue.Title)
		ue.Title = &title
		checks = append(checks, core.Check("title", title, "notblank"))
	}
	if ue.Description != nil {
		description := core.CleanString(*ue.Description)
		ue.Description = &description
		checks = append(checks, core.Check("description", description, "notblank"))
	}
	if ue.Date != nil {
		checks = append(checks, core.Check("date", *ue.Date, "datetime_any"))
	}
	return v.Fields(checks...)
}

// Changes is an UpdateEvent with its date parsed, as stored.
type Changes struct {
	Title       *string
	Description *string
	Date        *time.Time
}
