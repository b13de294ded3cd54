package types

import "time"

// EventStatusOpen is the default status for new events. Event status is
// free text set by the owning organisation; it is not validated against a
// fixed set.
const EventStatusOpen = "Open"

type Event struct {
	ID             string    `db:"id" json:"id"`
	OrganisationID string    `db:"organisation_id" json:"organisation_id"`
	Name           string    `db:"name" json:"name"`
	Description    *string   `db:"description" json:"description,omitempty"`
	Date           time.Time `db:"date" json:"date"`
	StartTime      *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime        *string   `db:"end_time" json:"end_time,omitempty"`
	Location       *string   `db:"location" json:"location,omitempty"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EventListing is an event row joined with its owning organisation's name,
// for the public browse view.
type EventListing struct {
	Event
	OrganisationName string `db:"organisation_name" json:"organisation_name"`
}

// EventCounts carries informational aggregates for an event. These are
// never enforced as capacity limits.
type EventCounts struct {
	RequiredSkills int `db:"required_skills" json:"required_skills"`
	Accepted       int `db:"accepted" json:"accepted"`
	Pending        int `db:"pending" json:"pending"`
}
