package utils

func StringPtr(s string) *string {
	return &s
}

// NilIfEmpty turns a blank form value into a NULL column value.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
