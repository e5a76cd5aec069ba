package entities

import "time"

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// SupportTicket is a message from a user to the bot operators.
type SupportTicket struct {
	ID        string       `json:"id"`
	UserID    int64        `json:"user_id"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	ClosedAt  *time.Time   `json:"closed_at,omitempty"`
}

type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// DirectMessage is an operator message sent to a single user.
type DirectMessage struct {
	ID     string         `json:"id"`
	UserID int64          `json:"user_id"`
	Text   string         `json:"text"`
	Status DeliveryStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
	SentAt time.Time      `json:"sent_at"`
}

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentRunning   AssignmentStatus = "running"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentFailed    AssignmentStatus = "failed"
)

// BulkWordAssignment records one operator run of assigning generated words to many users.
type BulkWordAssignment struct {
	ID             string           `json:"id"`
	Topic          string           `json:"topic"`
	SourceLanguage string           `json:"source_language"`
	TargetLanguage string           `json:"target_language"`
	WordLevel      string           `json:"word_level,omitempty"`
	WordCount      int              `json:"word_count"`
	UserIDs        []int64          `json:"user_ids"`
	Status         AssignmentStatus `json:"status"`
	SuccessCount   int              `json:"success_count"`
	ErrorCount     int              `json:"error_count"`
	Errors         []string         `json:"errors,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}
