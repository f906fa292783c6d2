package models

import "time"

// Merchant is a storefront owner. Email is unique across merchants.
type Merchant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessName string    `json:"businessName"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest represents a merchant registration
type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	BusinessName string `json:"businessName" binding:"required"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// LoginRequest represents merchant credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateMerchantRequest is a partial profile update
type UpdateMerchantRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	BusinessName *string `json:"businessName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Merchant  *Merchant `json:"merchant"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
