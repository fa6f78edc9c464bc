package model

import "time"

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type MentorRequest struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	MentorUserID string     `json:"mentorUserId"`
	Message      string     `json:"message,omitempty"`
	Status       string     `json:"status"`
	RespondedAt  *time.Time `json:"respondedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// MentorRequestCreated is the outbox payload consumed by the notification worker.
type MentorRequestCreated struct {
	RequestID   string `json:"request_id"`
	MentorName  string `json:"mentor_name"`
	MentorEmail string `json:"mentor_email"`
	FromName    string `json:"from_name"`
	FromEmail   string `json:"from_email"`
	Message     string `json:"message"`
}
