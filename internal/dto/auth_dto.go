package dto

// SignInRequest carries credentials for authentication.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse returns the session token and a role-based redirect hint
// consumed by the frontend router.
type SignInResponse struct {
	Token        string       `json:"token"`
	Role         string       `json:"role"`
	RedirectHint string       `json:"redirect_hint"`
	User         UserResponse `json:"user"`
}

// RequestResetRequest asks for a password reset token to be delivered.
type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a single-use reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
