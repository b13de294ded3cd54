package types

import "time"

type Skill struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SkillCount is a skill row with the number of volunteers holding it.
type SkillCount struct {
	Skill
	VolunteerCount int `db:"volunteer_count" json:"volunteer_count"`
}
