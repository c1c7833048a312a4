package models

import "time"

type RewardCategory string

const (
	RewardFuel          RewardCategory = "FUEL"
	RewardInsurance     RewardCategory = "INSURANCE"
	RewardShopping      RewardCategory = "SHOPPING"
	RewardHealth        RewardCategory = "HEALTH"
	RewardTravel        RewardCategory = "TRAVEL"
	RewardEducation     RewardCategory = "EDUCATION"
	RewardServices      RewardCategory = "SERVICES"
	RewardEntertainment RewardCategory = "ENTERTAINMENT"
)

func (c RewardCategory) Valid() bool {
	switch c {
	case RewardFuel, RewardInsurance, RewardShopping, RewardHealth,
		RewardTravel, RewardEducation, RewardServices, RewardEntertainment:
		return true
	}
	return false
}

// Reward is a catalog item that can be bought with reputation points
type Reward struct {
	ID          string         `json:"id" yaml:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" yaml:"title" gorm:"not null"`
	Description string         `json:"description" yaml:"description"`
	PointsCost  int            `json:"points_cost" yaml:"points_cost" gorm:"not null;check:points_cost >= 0"`
	ImageURL    string         `json:"image_url" yaml:"image_url"`
	Category    RewardCategory `json:"category" yaml:"category" gorm:"type:varchar(32);not null"`
}

type PointEntryKind string

const (
	PointsEarned   PointEntryKind = "EARNED"
	PointsRedeemed PointEntryKind = "REDEEMED"
)

// PointEntry is one line of a user's points ledger.
type PointEntry struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Kind      PointEntryKind `json:"kind" gorm:"type:varchar(16);not null"`
	ReportID  *string        `json:"report_id,omitempty" gorm:"type:varchar(36);uniqueIndex"`
	RewardID  *string        `json:"reward_id,omitempty" gorm:"type:varchar(36)"`
	Points    int            `json:"points"`
	Balance   int            `json:"balance"`
}

type RedemptionResponse struct {
	Reward  *Reward `json:"reward"`
	Balance int     `json:"balance"`
}
