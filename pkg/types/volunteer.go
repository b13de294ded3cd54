package types

import "time"

type Volunteer struct {
	ID               string     `db:"id" json:"id"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Availability     bool       `db:"availability" json:"availability"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	PhotoRef         *string    `db:"photo_ref" json:"photo_ref,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

func (v *Volunteer) DisplayName() string {
	return v.FirstName + " " + v.LastName
}

// VolunteerListing is a directory row: the volunteer's profile with the
// derived age in place of the raw date of birth.
type VolunteerListing struct {
	Volunteer
	Age *int `json:"age,omitempty"`
}
