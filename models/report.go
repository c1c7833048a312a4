package models

import "time"

type ReportStatus string

const (
	StatusPending  ReportStatus = "PENDING"
	StatusApproved ReportStatus = "APPROVED"
	StatusRejected ReportStatus = "REJECTED"
)

func (s ReportStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Report is a citizen-submitted record of a traffic violation.
type Report struct {
	ID             string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         uint         `json:"user_id" gorm:"index;not null"`
	UserName       string       `json:"user_name"`
	ViolationTypes []string     `json:"violation_types" gorm:"serializer:json;type:text;not null"`
	VehicleNumber  string       `json:"vehicle_number" gorm:"index"`
	Location       string       `json:"location"`
	Description    string       `json:"description" gorm:"type:varchar(1000)"`
	CreatedAt      time.Time    `json:"timestamp" gorm:"index"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Status         ReportStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	ImageURL       string       `json:"image_url"`
	ThumbnailURL   string       `json:"thumbnail_url,omitempty"`
	AdminComment   string       `json:"admin_comment,omitempty"`
	RewardPoints   *int         `json:"reward_points,omitempty"`
	ReviewedBy     *uint        `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time   `json:"reviewed_at,omitempty"`
}

// ReportRequest carries the text fields of a submission; the evidence arrives as a file part.
type ReportRequest struct {
	ViolationTypes []string `form:"violation_types" json:"violation_types"`
	VehicleNumber  string   `form:"vehicle_number" json:"vehicle_number" binding:"required,max=32" conform:"trim,upper"`
	Location       string   `form:"location" json:"location" binding:"required,max=255" conform:"trim"`
	Description    string   `form:"description" json:"description" binding:"max=1000" conform:"trim"`
}

type StatusUpdateRequest struct {
	Status  ReportStatus `json:"status" binding:"required" conform:"trim,upper"`
	Points  *int         `json:"points"`
	Comment string       `json:"comment" binding:"max=1000" conform:"trim"`
}

type ReportFilter struct {
	Status   ReportStatus
	UserID   *uint
	Page     int
	PageSize int
}

type ReportStats struct {
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Total         int64 `json:"total"`
	PointsAwarded int64 `json:"points_awarded"`
}

type UserStats struct {
	ReportStats
	Points int `json:"points"`
}

type ReportPage struct {
	Reports  []Report `json:"reports"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}
