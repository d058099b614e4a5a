package services

import "github.com/MArjun666/ProjectFlow-fullstack-app/models"

// Authorization policy: stateless decision functions over an actor and a
// loaded project. Every mutating service operation consults one of these
// before touching the aggregate.

// IsAdminOrAssignedPM allows admins, anyone holding the global projectManager
// role, and the manager assigned to this specific project. The global role
// suffices regardless of assignment: any PM may manage any project.
func IsAdminOrAssignedPM(actor *models.User, project *models.Project) bool {
	if actor.Role == models.RoleAdmin || actor.Role == models.RoleProjectManager {
		return true
	}
	return !project.ProjectManagerID.IsZero() && project.ProjectManagerID == actor.ID
}

// IsMember allows team members, the assigned project manager, and admins.
func IsMember(actor *models.User, project *models.Project) bool {
	if project.HasMember(actor.ID) {
		return true
	}
	if !project.ProjectManagerID.IsZero() && project.ProjectManagerID == actor.ID {
		return true
	}
	return actor.Role == models.RoleAdmin
}

// CanDeleteProject allows only admins and the project's creator.
func CanDeleteProject(actor *models.User, project *models.Project) bool {
	return actor.Role == models.RoleAdmin || project.CreatorID == actor.ID
}

// CanActOnTask allows admins, PMs (per IsAdminOrAssignedPM), and the task's
// current assignee.
func CanActOnTask(actor *models.User, project *models.Project, task *models.Task) bool {
	if IsAdminOrAssignedPM(actor, project) {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == actor.ID
}
