package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MArjun666/ProjectFlow-fullstack-app/logging"
	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	ProjectManager string   `json:"projectManager"`
	TeamMembers    []string `json:"teamMembers"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	ClientName     string   `json:"clientName"`
	ClientEmail    string   `json:"clientEmail"`
	ClientCompany  string   `json:"clientCompany"`
}

// TaskRequest uses pointers for the fields that task update applies only when
// present; project update has no such partial semantics.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  string  `json:"assignedTo"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

type ProjectService struct {
	projects      repositories.ProjectRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewProjectService(
	projects repositories.ProjectRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *ProjectService {
	return &ProjectService{
		projects:      projects,
		users:         users,
		notifications: notifications,
	}
}

// GetAssignableUsers returns the full user directory sorted by name ascending.
func (s *ProjectService) GetAssignableUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.FindAllSortedByName(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *models.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// ListProjectsForUser returns every project where the actor is creator,
// assigned PM, or team member.
func (s *ProjectService) ListProjectsForUser(ctx context.Context, actor *models.User) ([]models.ProjectResponse, error) {
	projects, err := s.projects.FindForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	usersByID, err := s.resolveProjectUsers(ctx, projects)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *models.NewProjectResponse(&projects[i], usersByID))
	}
	return responses, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, actor *models.User, projectID string) (*models.ProjectResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsMember(actor, project) {
		return nil, forbiddenf("User is not a member of this project.")
	}
	return s.buildProjectResponse(ctx, project)
}

// CreateProject creates the aggregate and notifies every team member except
// the actor. The persisted team set is the deduplicated union of the creator,
// the project manager, and the requested member ids.
func (s *ProjectService) CreateProject(ctx context.Context, actor *models.User, req ProjectRequest) (*models.ProjectResponse, error) {
	if req.Name == "" {
		return nil, invalidInputf("Project Name is required.")
	}
	if req.ProjectManager == "" {
		return nil, invalidInputf("A Project Manager must be selected.")
	}

	manager, err := s.findUserByID(ctx, req.ProjectManager)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.resolveMemberIDs(ctx, req.TeamMembers, actor.ID, manager.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &models.Project{
		Name:             req.Name,
		Description:      req.Description,
		Status:           models.ParseProjectStatus(req.Status),
		CreatorID:        actor.ID,
		ProjectManagerID: manager.ID,
		TeamMemberIDs:    memberIDs,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientCompany:    req.ClientCompany,
		Tasks:            []models.Task{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, err
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s added you to the project '%s'.", actor.Name, project.Name)
	link := "/projects/" + project.ID.Hex()
	for _, memberID := range project.TeamMemberIDs {
		if err := s.createNotification(ctx, actor, memberID, project, "", models.NotificationGeneric, message, link); err != nil {
			return nil, err
		}
	}

	logging.Logger.Infof("Project %s created by %s", project.ID.Hex(), actor.Email)
	return s.buildProjectResponse(ctx, project)
}

// UpdateProject overwrites the scalar fields unconditionally from the request;
// projectManager and teamMembers are only touched when present and non-empty.
// No notifications are emitted on update.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *models.User, projectID string, req ProjectRequest) (*models.ProjectResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsAdminOrAssignedPM(actor, project) {
		return nil, forbiddenf("Access Denied: Only users with Project Manager or Admin roles can perform this action.")
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Status = models.ParseProjectStatus(req.Status)
	project.ClientName = req.ClientName
	project.ClientEmail = req.ClientEmail
	project.ClientCompany = req.ClientCompany
	if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, err
	}

	if req.ProjectManager != "" {
		manager, err := s.findUserByID(ctx, req.ProjectManager)
		if err != nil {
			return nil, err
		}
		project.ProjectManagerID = manager.ID
	}

	if len(req.TeamMembers) > 0 {
		memberIDs, err := s.resolveMemberIDs(ctx, req.TeamMembers, project.ProjectManagerID)
		if err != nil {
			return nil, err
		}
		project.TeamMemberIDs = memberIDs
	}

	project.UpdatedAt = time.Now()
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.buildProjectResponse(ctx, project)
}

// DeleteProject hard-deletes the aggregate along with its embedded tasks.
// Notifications referencing the project are left in place.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *models.User, projectID string) error {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !CanDeleteProject(actor, project) {
		return forbiddenf("Only the project creator or an admin can delete this project.")
	}

	if err := s.projects.Delete(ctx, project.ID); err != nil {
		return err
	}
	logging.Logger.Infof("Project %s deleted by %s", project.ID.Hex(), actor.Email)
	return nil
}

// AddMember appends the user to the team and notifies them. Adding someone who
// is already a member is a silent no-op.
func (s *ProjectService) AddMember(ctx context.Context, actor *models.User, projectID, userID string) (*models.ProjectResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsAdminOrAssignedPM(actor, project) {
		return nil, forbiddenf("Access Denied: Only users with Project Manager or Admin roles can perform this action.")
	}

	user, err := s.findUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !project.HasMember(user.ID) {
		project.TeamMemberIDs = append(project.TeamMemberIDs, user.ID)
		message := fmt.Sprintf("%s added you to the project '%s'.", actor.Name, project.Name)
		if err := s.createNotification(ctx, actor, user.ID, project, "", models.NotificationGeneric, message, "/projects/"+project.ID.Hex()); err != nil {
			return nil, err
		}
	}

	project.UpdatedAt = time.Now()
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.buildProjectResponse(ctx, project)
}

// RemoveMember drops the user from the team and clears the assignee on any of
// the project's tasks currently assigned to them. The tasks themselves stay.
func (s *ProjectService) RemoveMember(ctx context.Context, actor *models.User, projectID, userID string) (*models.ProjectResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsAdminOrAssignedPM(actor, project) {
		return nil, forbiddenf("Access Denied: Only users with Project Manager or Admin roles can perform this action.")
	}

	removedID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, notFoundf("User not found with id: %s", userID)
	}

	kept := project.TeamMemberIDs[:0]
	for _, id := range project.TeamMemberIDs {
		if id != removedID {
			kept = append(kept, id)
		}
	}
	project.TeamMemberIDs = kept

	for i := range project.Tasks {
		if project.Tasks[i].AssignedTo != nil && *project.Tasks[i].AssignedTo == removedID {
			project.Tasks[i].AssignedTo = nil
		}
	}

	project.UpdatedAt = time.Now()
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.buildProjectResponse(ctx, project)
}

// CreateTask appends a new task to the project. The status is always To_Do
// regardless of the request; assigning a user starts the acceptance workflow
// and notifies them.
func (s *ProjectService) CreateTask(ctx context.Context, actor *models.User, projectID string, req TaskRequest) (*models.TaskResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !IsAdminOrAssignedPM(actor, project) {
		return nil, forbiddenf("Access Denied: Only users with Project Manager or Admin roles can perform this action.")
	}

	now := time.Now()
	task := models.Task{
		ID:        primitive.NewObjectID().Hex(),
		Status:    models.TaskToDo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	var assignee *models.User
	if req.AssignedTo != "" {
		if assignee, err = s.findUserByID(ctx, req.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = &assignee.ID
		task.AcceptanceStatus = models.AcceptancePending
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseOptionalDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if assignee != nil {
		message := fmt.Sprintf("%s assigned you a new task: '%s'.", actor.Name, task.Title)
		if err := s.createNotification(ctx, actor, assignee.ID, project, task.Title, models.NotificationTaskAssigned, message, "/projects/"+project.ID.Hex()); err != nil {
			return nil, err
		}
	}

	project.Tasks = append(project.Tasks, task)
	project.UpdatedAt = now
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	return s.buildTaskResponse(ctx, &task)
}

// UpdateTask applies each request field only when present. An empty dueDate
// string clears the date; a non-empty one is parsed.
func (s *ProjectService) UpdateTask(ctx context.Context, actor *models.User, projectID, taskID string, req TaskRequest) (*models.TaskResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return nil, notFoundf("Task not found with id: %s", taskID)
	}
	if !CanActOnTask(actor, project, task) {
		return nil, forbiddenf("You are not authorized to update this task.")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.ParseTaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := parseOptionalDate(*req.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = due
		}
	}

	task.UpdatedAt = time.Now()
	project.UpdatedAt = task.UpdatedAt
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.buildTaskResponse(ctx, task)
}

// DeleteTask removes the task from the project's task list by id match.
func (s *ProjectService) DeleteTask(ctx context.Context, actor *models.User, projectID, taskID string) error {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !IsAdminOrAssignedPM(actor, project) {
		return forbiddenf("Access Denied: Only users with Project Manager or Admin roles can perform this action.")
	}

	kept := project.Tasks[:0]
	for i := range project.Tasks {
		if project.Tasks[i].ID != taskID {
			kept = append(kept, project.Tasks[i])
		}
	}
	project.Tasks = kept

	project.UpdatedAt = time.Now()
	return s.projects.Save(ctx, project)
}

// UpdateTaskAcceptance lets the task's assignee accept or reject the
// assignment. Only the assignee may do this; admins and PMs are excluded.
// Accepting also forces the task into In_Progress.
func (s *ProjectService) UpdateTaskAcceptance(ctx context.Context, actor *models.User, projectID, taskID, statusStr string) (*models.TaskResponse, error) {
	project, err := s.findProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.FindTask(taskID)
	if task == nil {
		return nil, notFoundf("Task not found with id: %s", taskID)
	}
	if task.AssignedTo == nil || *task.AssignedTo != actor.ID {
		return nil, forbiddenf("You are not assigned to this task.")
	}

	newStatus := models.ParseAcceptanceStatus(statusStr)
	task.AcceptanceStatus = newStatus

	link := "/projects/" + project.ID.Hex()
	switch newStatus {
	case models.AcceptanceAccepted:
		task.Status = models.TaskInProgress
		message := fmt.Sprintf("%s accepted the task: '%s'.", actor.Name, task.Title)
		if err := s.notifyProjectManager(ctx, actor, project, task.Title, models.NotificationTaskAccepted, message, link); err != nil {
			return nil, err
		}
	case models.AcceptanceRejected:
		message := fmt.Sprintf("%s rejected the task: '%s'.", actor.Name, task.Title)
		if err := s.notifyProjectManager(ctx, actor, project, task.Title, models.NotificationTaskRejected, message, link); err != nil {
			return nil, err
		}
	}

	task.UpdatedAt = time.Now()
	project.UpdatedAt = task.UpdatedAt
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.buildTaskResponse(ctx, task)
}

// ListMyTasks flattens the tasks assigned to the actor across all of the
// actor's projects, each enriched with the parent project's name and id.
func (s *ProjectService) ListMyTasks(ctx context.Context, actor *models.User) ([]models.MyTaskResponse, error) {
	projects, err := s.projects.FindForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	usersByID := map[primitive.ObjectID]*models.User{actor.ID: actor}
	myTasks := []models.MyTaskResponse{}
	for i := range projects {
		project := &projects[i]
		for j := range project.Tasks {
			task := &project.Tasks[j]
			if task.AssignedTo != nil && *task.AssignedTo == actor.ID {
				myTasks = append(myTasks, models.NewMyTaskResponse(task, usersByID, project.Name, project.ID))
			}
		}
	}
	return myTasks, nil
}

// --- helpers ---

func (s *ProjectService) findProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, notFoundf("Project not found with id: %s", projectID)
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFoundf("Project not found with id: %s", projectID)
	}
	return project, nil
}

func (s *ProjectService) findUserByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, notFoundf("User not found with id: %s", userID)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundf("User not found with id: %s", userID)
	}
	return user, nil
}

// resolveMemberIDs builds the deduplicated team member set from the requested
// ids plus any seed ids (creator, project manager), verifying that every id
// resolves to a stored user in one batch lookup.
func (s *ProjectService) resolveMemberIDs(ctx context.Context, requested []string, seeds ...primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool)
	unique := []primitive.ObjectID{}
	for _, id := range seeds {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	for _, raw := range requested {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, notFoundf("User not found with id: %s", raw)
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := s.users.FindManyByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(users) != len(unique) {
		found := make(map[primitive.ObjectID]bool, len(users))
		for i := range users {
			found[users[i].ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, notFoundf("User not found with id: %s", id.Hex())
			}
		}
	}
	return unique, nil
}

// createNotification persists a notification unless sender and recipient are
// the same user; self-notifications are never emitted.
func (s *ProjectService) createNotification(ctx context.Context, sender *models.User, recipientID primitive.ObjectID, project *models.Project, taskTitle string, notificationType models.NotificationType, message, link string) error {
	if sender.ID == recipientID {
		return nil
	}
	notification := &models.Notification{
		RecipientID:      recipientID,
		SenderID:         sender.ID,
		Type:             notificationType,
		Message:          message,
		Link:             link,
		RelatedProjectID: project.ID,
		RelatedTaskTitle: taskTitle,
		IsRead:           false,
		CreatedAt:        time.Now(),
	}
	return s.notifications.Insert(ctx, notification)
}

func (s *ProjectService) notifyProjectManager(ctx context.Context, sender *models.User, project *models.Project, taskTitle string, notificationType models.NotificationType, message, link string) error {
	if project.ProjectManagerID.IsZero() {
		return nil
	}
	return s.createNotification(ctx, sender, project.ProjectManagerID, project, taskTitle, notificationType, message, link)
}

// resolveProjectUsers batch-fetches every user referenced by the given
// projects (manager, members, task assignees) into a lookup table.
func (s *ProjectService) resolveProjectUsers(ctx context.Context, projects []models.Project) (map[primitive.ObjectID]*models.User, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	collect := func(id primitive.ObjectID) {
		if !id.IsZero() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for i := range projects {
		collect(projects[i].ProjectManagerID)
		for _, memberID := range projects[i].TeamMemberIDs {
			collect(memberID)
		}
		for j := range projects[i].Tasks {
			if projects[i].Tasks[j].AssignedTo != nil {
				collect(*projects[i].Tasks[j].AssignedTo)
			}
		}
	}

	users, err := s.users.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	return usersByID, nil
}

func (s *ProjectService) buildProjectResponse(ctx context.Context, project *models.Project) (*models.ProjectResponse, error) {
	usersByID, err := s.resolveProjectUsers(ctx, []models.Project{*project})
	if err != nil {
		return nil, err
	}
	return models.NewProjectResponse(project, usersByID), nil
}

func (s *ProjectService) buildTaskResponse(ctx context.Context, task *models.Task) (*models.TaskResponse, error) {
	usersByID := map[primitive.ObjectID]*models.User{}
	if task.AssignedTo != nil {
		assignee, err := s.users.FindByID(ctx, *task.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee != nil {
			usersByID[assignee.ID] = assignee
		}
	}
	resp := models.NewTaskResponse(task, usersByID)
	return &resp, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, invalidInputf("Invalid date %q, expected format YYYY-MM-DD", value)
	}
	return &parsed, nil
}
