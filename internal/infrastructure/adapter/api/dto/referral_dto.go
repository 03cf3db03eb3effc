package dto

import (
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// ReferralOwnerResponse is the public result of a code lookup. It carries no
// account identifiers.
type ReferralOwnerResponse struct {
	MaskedEmail  string `json:"maskedEmail"`
	ReferralCode string `json:"referralCode"`
}

// ReferralMemberResponse is one member of a referral team
type ReferralMemberResponse struct {
	UserID         uint64    `json:"userId"`
	MaskedEmail    string    `json:"maskedEmail"`
	Level          int       `json:"level"`
	ReferrerID     uint64    `json:"referrerId"`
	Status         string    `json:"status"`
	HasDeposited   bool      `json:"hasDeposited"`
	TotalDeposited string    `json:"totalDeposited"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

func newReferralMemberResponse(m entity.ReferralMember) ReferralMemberResponse {
	return ReferralMemberResponse{
		UserID:         m.UserID,
		MaskedEmail:    m.MaskedEmail,
		Level:          m.Level,
		ReferrerID:     m.ReferrerID,
		Status:         string(m.Status),
		HasDeposited:   m.HasDeposited,
		TotalDeposited: entity.AmountInCentsToString(m.TotalDeposited),
		RegisteredAt:   m.RegisteredAt,
	}
}

// NewReferralMembersResponse maps a slice of members
func NewReferralMembersResponse(members []entity.ReferralMember) []ReferralMemberResponse {
	out := make([]ReferralMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, newReferralMemberResponse(m))
	}
	return out
}

// ReferralTeamResponse lists the members of each level
type ReferralTeamResponse struct {
	UserID uint64                   `json:"userId"`
	Level1 []ReferralMemberResponse `json:"level1"`
	Level2 []ReferralMemberResponse `json:"level2"`
	Level3 []ReferralMemberResponse `json:"level3"`
	Total  int                      `json:"total"`
}

// NewReferralTeamResponse maps a team
func NewReferralTeamResponse(team *entity.ReferralTeam) ReferralTeamResponse {
	return ReferralTeamResponse{
		UserID: team.RootUserID,
		Level1: NewReferralMembersResponse(team.Levels[0]),
		Level2: NewReferralMembersResponse(team.Levels[1]),
		Level3: NewReferralMembersResponse(team.Levels[2]),
		Total:  team.Size(),
	}
}

// ReferralLevelStatsResponse aggregates one level
type ReferralLevelStatsResponse struct {
	Level          int    `json:"level"`
	Members        int    `json:"members"`
	Deposited      int    `json:"deposited"`
	NotDeposited   int    `json:"notDeposited"`
	TotalDeposited string `json:"totalDeposited"`
	Earnings       string `json:"earnings"`
	RatePercent    string `json:"ratePercent"`
}

// ReferralStatsResponse aggregates a user's whole team
type ReferralStatsResponse struct {
	UserID         uint64                       `json:"userId"`
	ReferralCode   string                       `json:"referralCode"`
	Levels         []ReferralLevelStatsResponse `json:"levels"`
	TotalMembers   int                          `json:"totalMembers"`
	TotalDeposited string                       `json:"totalDeposited"`
	TotalEarnings  string                       `json:"totalEarnings"`
}

// NewReferralStatsResponse maps referral statistics
func NewReferralStatsResponse(stats *entity.ReferralStats) ReferralStatsResponse {
	levels := make([]ReferralLevelStatsResponse, 0, len(stats.Levels))
	for _, l := range stats.Levels {
		levels = append(levels, ReferralLevelStatsResponse{
			Level:          l.Level,
			Members:        l.Members,
			Deposited:      l.Deposited,
			NotDeposited:   l.NotDeposited,
			TotalDeposited: entity.AmountInCentsToString(l.TotalDeposited),
			Earnings:       entity.AmountInCentsToString(l.Earnings),
			RatePercent:    entity.BasisPointsToPercent(l.RateBps),
		})
	}
	return ReferralStatsResponse{
		UserID:         stats.UserID,
		ReferralCode:   stats.ReferralCode,
		Levels:         levels,
		TotalMembers:   stats.TotalMembers,
		TotalDeposited: entity.AmountInCentsToString(stats.TotalDeposited),
		TotalEarnings:  entity.AmountInCentsToString(stats.TotalEarnings),
	}
}

// MyReferralsResponse is the signed-in user's referral summary
type MyReferralsResponse struct {
	ReferralCode    string                   `json:"referralCode"`
	Earnings        string                   `json:"earnings"`
	DirectReferrals []ReferralMemberResponse `json:"directReferrals"`
}

// ReferralDebugResponse is the admin view of a user's referral position
type ReferralDebugResponse struct {
	UserID          uint64                   `json:"userId"`
	Email           string                   `json:"email"`
	ReferralCode    string                   `json:"referralCode"`
	ReferrerID      *uint64                  `json:"referrerId,omitempty"`
	Ancestors       []ReferralMemberResponse `json:"ancestors"`
	DirectReferrals int                      `json:"directReferrals"`
	HasDeposited    bool                     `json:"hasDeposited"`
	Earnings        string                   `json:"earnings"`
	Issues          []string                 `json:"issues"`
}

// NewReferralDebugResponse maps a debug report
func NewReferralDebugResponse(r *entity.ReferralDebugReport) ReferralDebugResponse {
	issues := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		issues = append(issues, string(issue))
	}
	return ReferralDebugResponse{
		UserID:          r.UserID,
		Email:           r.Email,
		ReferralCode:    r.ReferralCode,
		ReferrerID:      r.ReferrerID,
		Ancestors:       NewReferralMembersResponse(r.Ancestors),
		DirectReferrals: r.DirectReferrals,
		HasDeposited:    r.HasDeposited,
		Earnings:        entity.AmountInCentsToString(r.Earnings),
		Issues:          issues,
	}
}

// BackfillResponse reports how many users received a code
type BackfillResponse struct {
	Assigned int `json:"assigned"`
}
