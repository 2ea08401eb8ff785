package dto

// SignupRes is returned by a successful signup.
type SignupRes struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// TokenRes is returned by a successful login.
type TokenRes struct {
	Token string `json:"token"`
}

// MessageRes carries a human-readable confirmation.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes carries a user-safe error message.
type ErrorRes struct {
	Error string `json:"error"`
}
