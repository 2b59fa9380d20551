package model

// RegisterRequest represents the request to create a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request to authenticate an existing account.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response after registration or login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
