package domain

// Caller identifies who issued a request. The zero value is an anonymous
// caller.
type Caller struct {
	UserID int64
	Email  string
}

// Authenticated reports whether the caller presented a valid credential.
func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

// Anonymous is the caller used for requests without credentials.
var Anonymous = Caller{}
