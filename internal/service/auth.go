package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"communityconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	volunteers    VolunteerStore
	organisations OrganisationStore
	logger        *logrus.Logger
}

func NewAuthService(volunteers VolunteerStore, organisations OrganisationStore, logger *logrus.Logger) *AuthService {
	return &AuthService{
		volunteers:    volunteers,
		organisations: organisations,
		logger:        logger,
	}
}

type RegisterVolunteerInput struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	Phone            *string
	Address          *string
	DateOfBirth      *time.Time
	Availability     bool
	EmergencyContact *string
}

type RegisterOrganisationInput struct {
	Name          string
	Email         string
	Password      string
	ContactPerson *string
	Phone         *string
	Address       *string
	Website       *string
	Description   *string
}

// Authenticate verifies credentials against the account table named by
// accountType only. Unknown email and wrong password produce the same
// ErrInvalidCredentials so callers cannot probe for registered addresses.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, accountType types.AccountType) (*types.Identity, error) {
	email = normalizeEmail(email)

	var (
		identity *types.Identity
		hash     string
	)

	switch accountType {
	case types.AccountTypeVolunteer:
		volunteer, err := s.volunteers.VolunteerByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, types.ErrInvalidCredentials
			}
			return nil, fmt.Errorf("lookup volunteer for login: %w", err)
		}
		hash = volunteer.PasswordHash
		identity = &types.Identity{
			AccountID:   volunteer.ID,
			AccountType: types.AccountTypeVolunteer,
			DisplayName: volunteer.DisplayName(),
		}

	case types.AccountTypeOrganisation:
		organisation, err := s.organisations.OrganisationByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return nil, types.ErrInvalidCredentials
			}
			return nil, fmt.Errorf("lookup organisation for login: %w", err)
		}
		hash = organisation.PasswordHash
		identity = &types.Identity{
			AccountID:   organisation.ID,
			AccountType: types.AccountTypeOrganisation,
			DisplayName: organisation.Name,
		}

	default:
		return nil, fmt.Errorf("account type %q: %w", accountType, types.ErrInvalidInput)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}

	return identity, nil
}

// RegisterVolunteer creates a volunteer account. The email must be unused
// by any account, volunteer or organisation; the pre-check across both
// tables exists for the friendly error, the table constraint is the
// enforcer.
func (s *AuthService) RegisterVolunteer(ctx context.Context, input RegisterVolunteerInput) (*types.Volunteer, error) {
	input.Email = normalizeEmail(input.Email)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("first name, last name, email and password are required: %w", types.ErrInvalidInput)
	}

	if err := s.checkEmailUnused(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	volunteer := &types.Volunteer{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PasswordHash:     string(hash),
		Phone:            input.Phone,
		Address:          input.Address,
		DateOfBirth:      input.DateOfBirth,
		Availability:     input.Availability,
		EmergencyContact: input.EmergencyContact,
	}

	if err := s.volunteers.Create(ctx, volunteer); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"volunteer_id": volunteer.ID,
	}).Info("volunteer registered")

	return volunteer, nil
}

func (s *AuthService) RegisterOrganisation(ctx context.Context, input RegisterOrganisationInput) (*types.Organisation, error) {
	input.Email = normalizeEmail(input.Email)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", types.ErrInvalidInput)
	}

	if err := s.checkEmailUnused(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	organisation := &types.Organisation{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  string(hash),
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Address:       input.Address,
		Website:       input.Website,
		Description:   input.Description,
	}

	if err := s.organisations.Create(ctx, organisation); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"organisation_id": organisation.ID,
	}).Info("organisation registered")

	return organisation, nil
}

func (s *AuthService) checkEmailUnused(ctx context.Context, email string) error {
	taken, err := s.volunteers.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check volunteer emails: %w", err)
	}
	if !taken {
		taken, err = s.organisations.EmailExists(ctx, email)
		if err != nil {
			return fmt.Errorf("check organisation emails: %w", err)
		}
	}

	if taken {
		return fmt.Errorf("email %s: %w", email, types.ErrDuplicateEmail)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
