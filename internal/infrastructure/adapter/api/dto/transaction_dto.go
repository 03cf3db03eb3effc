package dto

import (
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// TransactionRequest represents a deposit, withdrawal or investment request
type TransactionRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// AdjustBalanceRequest represents an admin balance correction
type AdjustBalanceRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Operation   string `json:"operation" binding:"required,oneof=add deduct"`
	Description string `json:"description" binding:"max=500"`
}

// RejectRequest carries the reason shown to the user
type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// TransactionResponse represents the API view of a transaction
type TransactionResponse struct {
	TransactionID string     `json:"transactionId"`
	UserID        uint64     `json:"userId"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Amount        string     `json:"amount"`
	ResultBalance string     `json:"resultBalance,omitempty"`
	Description   string     `json:"description,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	SourceUserID  *uint64    `json:"sourceUserId,omitempty"`
	ReferralLevel int        `json:"referralLevel,omitempty"`
	ProcessedBy   *uint64    `json:"processedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
}

// NewTransactionResponse maps a transaction entity
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount,
		ResultBalance: t.ResultBalance,
		Description:   t.Description,
		FailureReason: t.FailureReason,
		SourceUserID:  t.SourceUserID,
		ReferralLevel: t.ReferralLevel,
		ProcessedBy:   t.ProcessedBy,
		CreatedAt:     t.CreatedAt,
		ProcessedAt:   t.ProcessedAt,
	}
}

// PageResponse wraps one page of a listing
type PageResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewPageResponse converts every item of page with mapItem
func NewPageResponse[E, T any](page *entity.Page[E], mapItem func(E) T) PageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapItem(item))
	}
	return PageResponse[T]{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}
