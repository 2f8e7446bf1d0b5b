package models

// Credentials is the payload forwarded verbatim to the upstream auth
// endpoints. No credential ever persists in this service.
type Credentials struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthUser is the upstream's view of an authenticated customer.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthResult is the upstream response to login/register.
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
