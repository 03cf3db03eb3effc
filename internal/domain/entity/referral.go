package entity

import (
	"strings"
	"time"
)

// MaxReferralDepth is the number of referral levels tracked for teams and bonuses
const MaxReferralDepth = 3

// ReferralCodeAlphabet excludes 0/O and 1/I so codes survive being read aloud
const ReferralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultReferralCodeLength is the length of generated referral codes
const DefaultReferralCodeLength = 8

// MaxReferralCodeAttempts bounds how many codes are drawn for one user
const MaxReferralCodeAttempts = 5

// NormalizeReferralCode trims and upper-cases a code so lookups are case-insensitive
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidReferralCode reports whether a normalized code only uses the code alphabet
func IsValidReferralCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(ReferralCodeAlphabet, r) {
			return false
		}
	}
	return true
}

// ReferralOwner is the public view of a resolved referral code
type ReferralOwner struct {
	UserID       uint64
	MaskedEmail  string
	ReferralCode string
}

// ReferralMember is one user in someone's referral team
type ReferralMember struct {
	UserID         uint64
	MaskedEmail    string
	Level          int
	ReferrerID     uint64
	Status         UserStatus
	HasDeposited   bool
	TotalDeposited int64
	RegisteredAt   time.Time
}

// NewReferralMember builds the team view of a user at the given level
func NewReferralMember(u *User, level int) ReferralMember {
	member := ReferralMember{
		UserID:         u.ID,
		MaskedEmail:    u.MaskedEmail(),
		Level:          level,
		Status:         u.Status,
		HasDeposited:   u.HasDeposited,
		TotalDeposited: u.TotalDeposited,
		RegisteredAt:   u.CreatedAt,
	}
	if u.ReferrerID != nil {
		member.ReferrerID = *u.ReferrerID
	}
	return member
}

// ReferralTeam holds the members of each referral level, Levels[0] being direct referrals
type ReferralTeam struct {
	RootUserID uint64
	Levels     [MaxReferralDepth][]ReferralMember
}

// Size returns the number of members across all levels
func (t *ReferralTeam) Size() int {
	total := 0
	for _, level := range t.Levels {
		total += len(level)
	}
	return total
}

// ReferralLevelStats aggregates one referral level
type ReferralLevelStats struct {
	Level          int
	Members        int
	Deposited      int
	NotDeposited   int
	TotalDeposited int64
	Earnings       int64
	RateBps        int
}

// ReferralStats aggregates a user's whole referral team
type ReferralStats struct {
	UserID         uint64
	ReferralCode   string
	Levels         [MaxReferralDepth]ReferralLevelStats
	TotalMembers   int
	TotalDeposited int64
	TotalEarnings  int64
}

// ReferralIssue names an integrity problem found by the referral debugger
type ReferralIssue string

const (
	IssueMissingCode      ReferralIssue = "missing_code"
	IssueSelfReferral     ReferralIssue = "self_referral"
	IssueDanglingReferrer ReferralIssue = "dangling_referrer"
	IssueCycleDetected    ReferralIssue = "cycle_detected"
)

// ReferralDebugReport describes a user's position in the referral graph
type ReferralDebugReport struct {
	UserID          uint64
	Email           string
	ReferralCode    string
	ReferrerID      *uint64
	Ancestors       []ReferralMember
	DirectReferrals int
	HasDeposited    bool
	Earnings        int64
	Issues          []ReferralIssue
}

// HasIssue reports whether the report contains the given issue
func (r *ReferralDebugReport) HasIssue(issue ReferralIssue) bool {
	for _, i := range r.Issues {
		if i == issue {
			return true
		}
	}
	return false
}
