package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// Announcement is a news item published by admins
type Announcement struct {
	ID        uint64
	Title     string
	Content   string
	Date      time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the required fields
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: announcement title is required", errs.ErrInvalidRequest)
	}
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("%w: announcement content is required", errs.ErrInvalidRequest)
	}
	return nil
}
