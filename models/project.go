package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not_Started"
	ProjectInProgress ProjectStatus = "In_Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "On_Hold"
)

type Project struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	Description      string               `bson:"description" json:"description"`
	Status           ProjectStatus        `bson:"status" json:"status"`
	CreatorID        primitive.ObjectID   `bson:"creatorId" json:"creatorId"`
	ProjectManagerID primitive.ObjectID   `bson:"projectManagerId,omitempty" json:"projectManagerId"`
	TeamMemberIDs    []primitive.ObjectID `bson:"teamMemberIds" json:"teamMemberIds"`
	StartDate        *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate          *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	ClientName       string               `bson:"clientName" json:"clientName"`
	ClientEmail      string               `bson:"clientEmail" json:"clientEmail"`
	ClientCompany    string               `bson:"clientCompany" json:"clientCompany"`
	Tasks            []Task               `bson:"tasks" json:"tasks"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ParseProjectStatus converts a free-text status to a ProjectStatus. Spaces are
// normalized to underscores before matching; empty or unrecognized input yields
// Not_Started instead of an error.
func ParseProjectStatus(status string) ProjectStatus {
	status = strings.TrimSpace(status)
	if status == "" {
		return ProjectNotStarted
	}
	switch ProjectStatus(strings.ReplaceAll(status, " ", "_")) {
	case ProjectNotStarted:
		return ProjectNotStarted
	case ProjectInProgress:
		return ProjectInProgress
	case ProjectCompleted:
		return ProjectCompleted
	case ProjectOnHold:
		return ProjectOnHold
	default:
		return ProjectNotStarted
	}
}

// Display renders the status with spaces instead of underscores.
func (s ProjectStatus) Display() string {
	if s == "" {
		return "N/A"
	}
	return strings.ReplaceAll(string(s), "_", " ")
}

// FindTask returns the embedded task with the given id, or nil.
func (p *Project) FindTask(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// HasMember reports whether the user id appears in the team member list.
func (p *Project) HasMember(userID primitive.ObjectID) bool {
	for _, id := range p.TeamMemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
