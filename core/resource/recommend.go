// Package resource recommends learning resources from grades.
package resource

import (
	"fmt"
	"strings"

	"github.com/trezcool/edunotify/core/grade"
)

// Difficulty tier of a Resource.
type Difficulty string

const (
	Basic        Difficulty = "Basic"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Tier thresholds, in percent.
const (
	BasicBelow        = 60.0
	IntermediateBelow = 80.0
)

type tier struct {
	slug        string
	title       string
	description string
}

var tiers = map[Difficulty]tier{
	Basic: {
		slug:        "basic",
		title:       "%s - Basic Concepts Review",
		description: "Fundamental concepts and practice exercises for %s",
	},
	Intermediate: {
		slug:        "intermediate",
		title:       "%s - Skill Building",
		description: "Intermediate exercises and problem-solving for %s",
	},
	Advanced: {
		slug:        "advanced",
		title:       "%s - Advanced Challenges",
		description: "Advanced topics and enrichment activities for %s",
	},
}

// Resource is a learning resource recommended for a grade.
type Resource struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Subject     string     `json:"subject"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Classify returns the difficulty tier of a score percentage.
// NaN compares false with both thresholds and lands in Advanced, like +Inf.
func Classify(percentage float64) Difficulty {
	switch {
	case percentage < BasicBelow:
		return Basic
	case percentage < IntermediateBelow:
		return Intermediate
	default:
		return Advanced
	}
}

// Recommend returns one Resource per grade, in the order of grades.
func Recommend(grades []grade.Grade) []Resource {
	resources := make([]Resource, 0, len(grades))
	for _, g := range grades {
		difficulty := Classify(g.Percentage())
		t := tiers[difficulty]
		resources = append(resources, Resource{
			ID:          g.ID + "-" + t.slug,
			Title:       fmt.Sprintf(t.title, g.Subject),
			Description: fmt.Sprintf(t.description, g.Subject),
			URL:         "https://example.com/" + t.slug + "-" + strings.ToLower(g.Subject),
			Subject:     g.Subject,
			Difficulty:  difficulty,
		})
	}
	return resources
}
