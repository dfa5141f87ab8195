package auth

import "flamingo/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// CreateUserRequest is the admin-side account creation. Agencies created
// this way are approved immediately.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin agency"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	AgencyName string `json:"agencyName" binding:"required"`
	Address    string `json:"address" binding:"required"`
	RC         string `json:"rc" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}
