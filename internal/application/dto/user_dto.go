package dto

// LoginRequest credenciales que se reenvían a POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario devueltos por el backend.
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	Message string `json:"message,omitempty"`
}
