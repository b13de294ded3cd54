package types

import "time"

type SignupStatus string

const (
	SignupStatusPending  SignupStatus = "Pending"
	SignupStatusAccepted SignupStatus = "Accepted"
	SignupStatusRejected SignupStatus = "Rejected"
)

func (s SignupStatus) Valid() bool {
	switch s {
	case SignupStatusPending, SignupStatusAccepted, SignupStatusRejected:
		return true
	}
	return false
}

type Signup struct {
	ID          string       `db:"id" json:"id"`
	VolunteerID string       `db:"volunteer_id" json:"volunteer_id"`
	EventID     string       `db:"event_id" json:"event_id"`
	Status      SignupStatus `db:"status" json:"status"`
	RoleID      *string      `db:"role_id" json:"role_id,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// EventSignup is the organisation's view of a signup: the signup joined
// with the volunteer's name, date of birth, and assigned role name.
type EventSignup struct {
	Signup
	VolunteerFirstName string     `db:"first_name" json:"volunteer_first_name"`
	VolunteerLastName  string     `db:"last_name" json:"volunteer_last_name"`
	DateOfBirth        *time.Time `db:"date_of_birth" json:"-"`
	RoleName           *string    `db:"role_name" json:"role_name,omitempty"`

	// Age is derived from DateOfBirth at read time; zero when unknown.
	Age int `json:"age,omitempty"`
}

// VolunteerSignup is the volunteer's view of a signup: the signup joined
// with event details.
type VolunteerSignup struct {
	Signup
	EventName string    `db:"event_name" json:"event_name"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	RoleName  *string   `db:"role_name" json:"role_name,omitempty"`
}
