package domain

// User is the identity record returned by the login endpoint and kept in
// the credential store next to the access token.
type User struct {
	ID         int    `json:"id,omitempty"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// LoginResult is the body of a successful POST /auth/login.
type LoginResult struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Registration is the payload for POST /auth/register.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}
