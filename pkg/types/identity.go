package types

type AccountType string

const (
	AccountTypeVolunteer    AccountType = "volunteer"
	AccountTypeOrganisation AccountType = "organisation"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeVolunteer || t == AccountTypeOrganisation
}

// Identity is the authenticated principal attached to a request after login.
// It is the only state carried inside the session cookie.
type Identity struct {
	AccountID   string      `json:"account_id"`
	AccountType AccountType `json:"account_type"`
	DisplayName string      `json:"display_name"`
}
