package models

// Notification is an in-app message left for a user when one of their reports is reviewed
type Notification struct {
	Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	ReportID string `json:"report_id" gorm:"type:varchar(36)"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	IsRead   bool   `json:"is_read" gorm:"not null;default:false"`
}
