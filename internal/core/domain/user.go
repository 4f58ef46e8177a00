package domain

import "strings"

// User is an account identified by its organizational email address.
type User struct {
	ID           int64  `json:"id" bson:"_id"`
	Email        string `json:"email" bson:"email"`
	Name         string `json:"name" bson:"name"`
	PasswordHash string `json:"-" bson:"password_hash"`
	IsActive     bool   `json:"is_active" bson:"is_active"`
	IsStaff      bool   `json:"is_staff" bson:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser" bson:"is_superuser"`
}

// UserFields is the client-writable subset of a User. A nil field was not
// supplied by the caller.
type UserFields struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

func (f UserFields) IsEmpty() bool {
	return f.Email == nil && f.Name == nil && f.Password == nil && f.IsActive == nil
}

// NormalizeEmail lowercases and trims an email address. Uniqueness of
// User.Email is defined over the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
