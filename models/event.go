package models

type EventType string

const (
	EventReportCreated  EventType = "report.created"
	EventReportReviewed EventType = "report.reviewed"
)

// ReportEvent is pushed to live subscribers when the report store changes.
type ReportEvent struct {
	Type   EventType `json:"type"`
	Report Report    `json:"report"`
}
