package dto

import (
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// RegisterRequest represents the API request for creating an account
type RegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referralCode"`
}

// LoginRequest represents the API request for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the access token issued at login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID               uint64     `json:"id"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Balance          string     `json:"balance"`
	Status           string     `json:"status"`
	Role             string     `json:"role"`
	ReferralCode     string     `json:"referralCode"`
	ReferrerID       *uint64    `json:"referrerId,omitempty"`
	HasDeposited     bool       `json:"hasDeposited"`
	FirstDepositAt   *time.Time `json:"firstDepositAt,omitempty"`
	TotalDeposited   string     `json:"totalDeposited"`
	TransactionCount uint64     `json:"transactionCount"`
	RegisteredAt     time.Time  `json:"registeredAt"`
}

// NewUserResponse maps a user entity
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Phone:            u.Phone,
		Balance:          u.GetBalance(),
		Status:           string(u.Status),
		Role:             string(u.Role),
		ReferralCode:     u.ReferralCode,
		ReferrerID:       u.ReferrerID,
		HasDeposited:     u.HasDeposited,
		FirstDepositAt:   u.FirstDepositAt,
		TotalDeposited:   entity.AmountInCentsToString(u.TotalDeposited),
		TransactionCount: u.TransactionCount,
		RegisteredAt:     u.CreatedAt,
	}
}

// StatusRequest enables or disables an account
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Disabled"`
}
