package models

import "encoding/json"

// User is the record managed by the user service. Name and Email hold the
// caller's JSON values as given; absent fields are omitted.
type User struct {
	ID        string          `json:"id" validate:"required,alphanum,lowercase"`
	Name      json.RawMessage `json:"name,omitempty" swaggertype:"string"`
	Email     json.RawMessage `json:"email,omitempty" swaggertype:"string"`
	CreatedAt string          `json:"createdAt" validate:"required"`
}

// DirectoryUser is an entry in the fixed user directory.
type DirectoryUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate validates the user data
func (u *User) Validate() error {
	return validateStruct(u)
}
