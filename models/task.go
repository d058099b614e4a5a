package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To_Do"
	TaskInProgress TaskStatus = "In_Progress"
	TaskCompleted  TaskStatus = "Completed"
)

type AcceptanceStatus string

const (
	AcceptancePending  AcceptanceStatus = "Pending"
	AcceptanceAccepted AcceptanceStatus = "Accepted"
	AcceptanceRejected AcceptanceStatus = "RejectedByTeamMember"
)

// Task lives embedded inside its parent Project; it has no collection of its
// own. The id is generated independently of the project's id at creation time.
type Task struct {
	ID               string              `bson:"id" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description" json:"description"`
	AssignedTo       *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Status           TaskStatus          `bson:"status" json:"status"`
	AcceptanceStatus AcceptanceStatus    `bson:"acceptanceStatus,omitempty" json:"acceptanceStatus,omitempty"`
	DueDate          *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ParseTaskStatus converts a free-text status to a TaskStatus. Spaces are
// normalized to underscores; empty or unrecognized input yields To_Do.
func ParseTaskStatus(status string) TaskStatus {
	switch TaskStatus(strings.ReplaceAll(status, " ", "_")) {
	case TaskToDo:
		return TaskToDo
	case TaskInProgress:
		return TaskInProgress
	case TaskCompleted:
		return TaskCompleted
	default:
		return TaskToDo
	}
}

// ParseAcceptanceStatus converts a free-text acceptance status. Unlike the
// task/project status parsers it does not space-normalize; unrecognized or
// empty input yields Pending.
func ParseAcceptanceStatus(status string) AcceptanceStatus {
	switch AcceptanceStatus(status) {
	case AcceptancePending, AcceptanceAccepted, AcceptanceRejected:
		return AcceptanceStatus(status)
	default:
		return AcceptancePending
	}
}

// Display renders the status with spaces instead of underscores.
func (s TaskStatus) Display() string {
	if s == "" {
		return "N/A"
	}
	return strings.ReplaceAll(string(s), "_", " ")
}
