package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProjectStatus(t *testing.T) {
	assert.Equal(t, ProjectOnHold, ParseProjectStatus("On Hold"))
	assert.Equal(t, ProjectOnHold, ParseProjectStatus("On_Hold"))
	assert.Equal(t, ProjectInProgress, ParseProjectStatus("In Progress"))
	// unrecognized and empty input both fall back to the default
	assert.Equal(t, ProjectNotStarted, ParseProjectStatus("bogus"))
	assert.Equal(t, ProjectNotStarted, ParseProjectStatus(""))
	assert.Equal(t, ProjectNotStarted, ParseProjectStatus("   "))
}

func TestParseTaskStatus(t *testing.T) {
	assert.Equal(t, TaskToDo, ParseTaskStatus("To Do"))
	assert.Equal(t, TaskInProgress, ParseTaskStatus("In_Progress"))
	assert.Equal(t, TaskCompleted, ParseTaskStatus("Completed"))
	assert.Equal(t, TaskToDo, ParseTaskStatus("bogus"))
	assert.Equal(t, TaskToDo, ParseTaskStatus(""))
}

func TestParseAcceptanceStatus(t *testing.T) {
	assert.Equal(t, AcceptanceAccepted, ParseAcceptanceStatus("Accepted"))
	assert.Equal(t, AcceptanceRejected, ParseAcceptanceStatus("RejectedByTeamMember"))
	assert.Equal(t, AcceptancePending, ParseAcceptanceStatus("bogus"))
	assert.Equal(t, AcceptancePending, ParseAcceptanceStatus(""))
}

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseUserRole("admin"))
	assert.Equal(t, RoleProjectManager, ParseUserRole("projectManager"))
	// unrecognized roles silently default to the least-privileged role
	assert.Equal(t, RoleTeamMember, ParseUserRole("superuser"))
	assert.Equal(t, RoleTeamMember, ParseUserRole(""))
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Not Started", ProjectNotStarted.Display())
	assert.Equal(t, "To Do", TaskToDo.Display())
	assert.Equal(t, "N/A", ProjectStatus("").Display())
	assert.Equal(t, "N/A", TaskStatus("").Display())
}
