package esignbase

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Recipient is a participant in a signing workflow. RoleName must match a
// role defined on the template in the eSignBase template editor.
type Recipient struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleName  string `json:"role_name"`
	Locale    string `json:"locale"`
}

// Validate checks that every field is present. Semantic checks such as
// email syntax are left to the remote service.
func (r Recipient) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.RoleName, validation.Required),
		validation.Field(&r.Locale, validation.Required),
	)
}
