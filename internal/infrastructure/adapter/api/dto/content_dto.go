package dto

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// SettingsPayload is the wire form of the platform settings. Amounts are
// decimal strings, referral rates are basis points.
type SettingsPayload struct {
	MinDeposit    string               `json:"minDeposit" binding:"required"`
	MaxDeposit    string               `json:"maxDeposit" binding:"required"`
	MinWithdrawal string               `json:"minWithdrawal" binding:"required"`
	MaxWithdrawal string               `json:"maxWithdrawal" binding:"required"`
	BankAccounts  []entity.BankAccount `json:"bankAccounts"`
	Banner        entity.Banner        `json:"banner"`
	Popup         entity.Popup         `json:"popup"`
	ReferralRates []int                `json:"referralRates" binding:"required,len=3"`
	UpdatedAt     *time.Time           `json:"updatedAt,omitempty"`
	UpdatedBy     *uint64              `json:"updatedBy,omitempty"`
}

// NewSettingsPayload maps settings to the wire form
func NewSettingsPayload(s *entity.Settings) SettingsPayload {
	p := SettingsPayload{
		MinDeposit:    entity.AmountInCentsToString(s.MinDeposit),
		MaxDeposit:    entity.AmountInCentsToString(s.MaxDeposit),
		MinWithdrawal: entity.AmountInCentsToString(s.MinWithdrawal),
		MaxWithdrawal: entity.AmountInCentsToString(s.MaxWithdrawal),
		BankAccounts:  s.BankAccounts,
		Banner:        s.Banner,
		Popup:         s.Popup,
		ReferralRates: s.ReferralRates[:],
		UpdatedBy:     s.UpdatedBy,
	}
	if p.BankAccounts == nil {
		p.BankAccounts = []entity.BankAccount{}
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		p.UpdatedAt = &updatedAt
	}
	return p
}

// ToEntity parses the amounts; range checks are left to Settings.Validate
func (p SettingsPayload) ToEntity() (*entity.Settings, error) {
	if len(p.ReferralRates) != entity.MaxReferralDepth {
		return nil, fmt.Errorf("%w: expected %d referral rates", errs.ErrInvalidSettings, entity.MaxReferralDepth)
	}

	s := &entity.Settings{
		BankAccounts: p.BankAccounts,
		Banner:       p.Banner,
		Popup:        p.Popup,
	}
	copy(s.ReferralRates[:], p.ReferralRates)

	amounts := []struct {
		name  string
		value string
		dst   *int64
	}{
		{"minDeposit", p.MinDeposit, &s.MinDeposit},
		{"maxDeposit", p.MaxDeposit, &s.MaxDeposit},
		{"minWithdrawal", p.MinWithdrawal, &s.MinWithdrawal},
		{"maxWithdrawal", p.MaxWithdrawal, &s.MaxWithdrawal},
	}
	for _, a := range amounts {
		cents, err := entity.ValidateAndConvertAmount(a.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidSettings, a.name, err)
		}
		*a.dst = cents
	}
	return s, nil
}

// AnnouncementRequest creates or updates an announcement
type AnnouncementRequest struct {
	Title   string     `json:"title" binding:"required,max=200"`
	Content string     `json:"content" binding:"required"`
	Date    *time.Time `json:"date"`
	Active  *bool      `json:"active"`
}

// AnnouncementResponse represents the API view of an announcement
type AnnouncementResponse struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAnnouncementResponse maps an announcement entity
func NewAnnouncementResponse(a *entity.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Date:      a.Date,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NotificationResponse represents one feed entry
type NotificationResponse struct {
	ID        uint64    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse is the feed plus the unread badge count
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int64                  `json:"unread"`
}

// NewNotificationResponse maps a notification entity
func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// MarkAllReadResponse reports how many notifications changed
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// DashboardResponse is the admin overview
type DashboardResponse struct {
	TotalUsers                int64  `json:"totalUsers"`
	ActiveUsers               int64  `json:"activeUsers"`
	DisabledUsers             int64  `json:"disabledUsers"`
	DepositedUsers            int64  `json:"depositedUsers"`
	TotalBalance              string `json:"totalBalance"`
	PendingDeposits           int64  `json:"pendingDeposits"`
	PendingDepositAmount      string `json:"pendingDepositAmount"`
	PendingWithdrawals        int64  `json:"pendingWithdrawals"`
	PendingWithdrawalAmount   string `json:"pendingWithdrawalAmount"`
	CompletedDepositAmount    string `json:"completedDepositAmount"`
	CompletedWithdrawalAmount string `json:"completedWithdrawalAmount"`
	ReferralBonusesPaid       string `json:"referralBonusesPaid"`
}

// NewDashboardResponse maps the dashboard aggregates
func NewDashboardResponse(d *entity.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalUsers:                d.Users.TotalUsers,
		ActiveUsers:               d.Users.ActiveUsers,
		DisabledUsers:             d.Users.DisabledUsers,
		DepositedUsers:            d.Users.DepositedUsers,
		TotalBalance:              entity.AmountInCentsToString(d.Users.TotalBalance),
		PendingDeposits:           d.Transactions.PendingDeposits,
		PendingDepositAmount:      entity.AmountInCentsToString(d.Transactions.PendingDepositAmount),
		PendingWithdrawals:        d.Transactions.PendingWithdrawals,
		PendingWithdrawalAmount:   entity.AmountInCentsToString(d.Transactions.PendingWithdrawalAmount),
		CompletedDepositAmount:    entity.AmountInCentsToString(d.Transactions.CompletedDepositAmount),
		CompletedWithdrawalAmount: entity.AmountInCentsToString(d.Transactions.CompletedWithdrawalAmount),
		ReferralBonusesPaid:       entity.AmountInCentsToString(d.Transactions.ReferralBonusesPaid),
	}
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
