package grade

import (
	"time"

	"github.com/trezcool/edunotify/core"
)

type Grade struct {
	ID        string    `json:"id" db:"id"`
	Subject   string    `json:"subject" db:"subject"`
	Score     float64   `json:"score" db:"score"`
	MaxScore  float64   `json:"maxScore" db:"max_score"`
	StudentID string    `json:"studentId" db:"student_id"`
	TeacherID string    `json:"teacherId" db:"teacher_id"` // author, never changes
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
}

// Percentage returns Score as a percentage of MaxScore.
// A zero MaxScore follows float division: +Inf for a positive Score, NaN for a zero Score.
func (g Grade) Percentage() float64 {
	return g.Score / g.MaxScore * 100
}

// NewGrade contains information needed to record a new Grade.
// Score above MaxScore is accepted.
type NewGrade struct {
	Subject   string  `json:"subject" validate:"required,notblank"`
	Score     float64 `json:"score" validate:"gte=0"`
	MaxScore  float64 `json:"maxScore" validate:"gte=1"`
	StudentID string  `json:"studentId" validate:"required,notblank"`
}

func (ng *NewGrade) Validate(v *core.Validator) error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.StudentID = core.CleanString(ng.StudentID)
	return v.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
// Nil fields are left unchanged.
type UpdateGrade struct {
	Subject  *string  `json:"subject"`
	Score    *float64 `json:"score"`
	MaxScore *float64 `json:"maxScore"`
}

func (ug *UpdateGrade) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if ug.Subject != nil {
		subject := core.CleanString(*ug.Subject)
		ug.Subject = &subject
		checks = append(checks, core.Check("subject", subject, "notblank"))
	}
	if ug.Score != nil {
		checks = append(checks, core.Check("score", *ug.Score, "gte=0"))
	}
	if ug.MaxScore != nil {
		checks = append(checks, core.Check("maxScore", *ug.MaxScore, "gte=1"))
	}
	return v.Fields(checks...)
}

// QueryFilter restricts grade queries. Empty fields do not filter.
type QueryFilter struct {
	StudentID string
	TeacherID string
}
