package service

import (
	"context"
	"fmt"
	"time"

	"communityconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type ProfileService struct {
	volunteers    VolunteerStore
	organisations OrganisationStore
	logger        *logrus.Logger
}

func NewProfileService(volunteers VolunteerStore, organisations OrganisationStore, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		volunteers:    volunteers,
		organisations: organisations,
		logger:        logger,
	}
}

type VolunteerProfileInput struct {
	FirstName        string
	LastName         string
	Phone            *string
	Address          *string
	DateOfBirth      *time.Time
	Availability     bool
	EmergencyContact *string
}

type OrganisationProfileInput struct {
	Name          string
	ContactPerson *string
	Phone         *string
	Address       *string
	Website       *string
	Description   *string
}

// VolunteerDirectory lists every volunteer with the age derived from
// their date of birth. The birth date itself is withheld from the
// listing; only the age leaves this method.
func (s *ProfileService) VolunteerDirectory(ctx context.Context) ([]*types.VolunteerListing, error) {
	volunteers, err := s.volunteers.Volunteers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listings := make([]*types.VolunteerListing, 0, len(volunteers))
	for _, volunteer := range volunteers {
		listing := &types.VolunteerListing{Volunteer: *volunteer}
		if volunteer.DateOfBirth != nil {
			age := Age(*volunteer.DateOfBirth, now)
			listing.Age = &age
		}
		listing.DateOfBirth = nil
		listings = append(listings, listing)
	}

	return listings, nil
}

func (s *ProfileService) OrganisationDirectory(ctx context.Context) ([]*types.Organisation, error) {
	return s.organisations.Organisations(ctx)
}

func (s *ProfileService) Volunteer(ctx context.Context, identity *types.Identity) (*types.Volunteer, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}
	return s.volunteers.Volunteer(ctx, identity.AccountID)
}

func (s *ProfileService) Organisation(ctx context.Context, identity *types.Identity) (*types.Organisation, error) {
	if err := requireOrganisation(identity); err != nil {
		return nil, err
	}
	return s.organisations.Organisation(ctx, identity.AccountID)
}

// UpdateVolunteer is the volunteer's self-service profile edit. Email and
// password are not editable here.
func (s *ProfileService) UpdateVolunteer(ctx context.Context, identity *types.Identity, input VolunteerProfileInput) (*types.Volunteer, error) {
	if err := requireVolunteer(identity); err != nil {
		return nil, err
	}

	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("first and last name are required: %w", types.ErrInvalidInput)
	}

	volunteer, err := s.volunteers.Volunteer(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}

	volunteer.FirstName = input.FirstName
	volunteer.LastName = input.LastName
	volunteer.Phone = input.Phone
	volunteer.Address = input.Address
	volunteer.DateOfBirth = input.DateOfBirth
	volunteer.Availability = input.Availability
	volunteer.EmergencyContact = input.EmergencyContact

	if err := s.volunteers.Update(ctx, volunteer.ID, volunteer); err != nil {
		return nil, err
	}

	return volunteer, nil
}

func (s *ProfileService) UpdateOrganisation(ctx context.Context, identity *types.Identity, input OrganisationProfileInput) (*types.Organisation, error) {
	if err := requireOrganisation(identity); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, fmt.Errorf("organisation name is required: %w", types.ErrInvalidInput)
	}

	organisation, err := s.organisations.Organisation(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}

	organisation.Name = input.Name
	organisation.ContactPerson = input.ContactPerson
	organisation.Phone = input.Phone
	organisation.Address = input.Address
	organisation.Website = input.Website
	organisation.Description = input.Description

	if err := s.organisations.Update(ctx, organisation.ID, organisation); err != nil {
		return nil, err
	}

	return organisation, nil
}

// ChangePassword rotates the account's password after verifying the
// current one.
func (s *ProfileService) ChangePassword(ctx context.Context, identity *types.Identity, currentPassword, newPassword string) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}

	if newPassword == "" {
		return fmt.Errorf("new password is required: %w", types.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	switch identity.AccountType {
	case types.AccountTypeVolunteer:
		volunteer, err := s.volunteers.Volunteer(ctx, identity.AccountID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(volunteer.PasswordHash), []byte(currentPassword)); err != nil {
			return types.ErrInvalidCredentials
		}
		volunteer.PasswordHash = string(hash)
		return s.volunteers.Update(ctx, volunteer.ID, volunteer)

	case types.AccountTypeOrganisation:
		organisation, err := s.organisations.Organisation(ctx, identity.AccountID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(organisation.PasswordHash), []byte(currentPassword)); err != nil {
			return types.ErrInvalidCredentials
		}
		organisation.PasswordHash = string(hash)
		return s.organisations.Update(ctx, organisation.ID, organisation)
	}

	return types.ErrForbiddenRole
}

// SetMediaRef persists the stored reference for an uploaded profile photo
// (volunteers) or logo (organisations). The reference is an opaque string
// produced by the media store.
func (s *ProfileService) SetMediaRef(ctx context.Context, identity *types.Identity, ref string) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}

	switch identity.AccountType {
	case types.AccountTypeVolunteer:
		volunteer, err := s.volunteers.Volunteer(ctx, identity.AccountID)
		if err != nil {
			return err
		}
		volunteer.PhotoRef = &ref
		return s.volunteers.Update(ctx, volunteer.ID, volunteer)

	case types.AccountTypeOrganisation:
		organisation, err := s.organisations.Organisation(ctx, identity.AccountID)
		if err != nil {
			return err
		}
		organisation.LogoRef = &ref
		return s.organisations.Update(ctx, organisation.ID, organisation)
	}

	return types.ErrForbiddenRole
}

// Age computes whole years between a date of birth and now, ignoring the
// time of day.
func Age(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()

	birthdayPassed := now.Month() > dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() >= dateOfBirth.Day())
	if !birthdayPassed {
		years--
	}

	if years < 0 {
		return 0
	}
	return years
}
