package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response shaping for the REST surface. Building a response is a pure mapping
// over the stored entities plus a lookup table of already-resolved users;
// every nullable reference gets an explicit branch.

const dateLayout = "2006-01-02"

type UserResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type TaskResponse struct {
	ID               string        `json:"_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	AssignedTo       *UserResponse `json:"assignedTo,omitempty"`
	Status           string        `json:"status"`
	AcceptanceStatus string        `json:"acceptanceStatus"`
	DueDate          *string       `json:"dueDate"`
}

type MyTaskResponse struct {
	TaskResponse
	ProjectName string `json:"projectName"`
	ProjectID   string `json:"projectId"`
}

type ProjectResponse struct {
	ID                          string         `json:"_id"`
	Name                        string         `json:"name"`
	Description                 string         `json:"description"`
	Status                      string         `json:"status"`
	StartDate                   *string        `json:"startDate"`
	EndDate                     *string        `json:"endDate"`
	ClientName                  string         `json:"clientName"`
	ClientEmail                 string         `json:"clientEmail"`
	ClientCompany               string         `json:"clientCompany"`
	CreatedAt                   time.Time      `json:"createdAt"`
	UpdatedAt                   time.Time      `json:"updatedAt"`
	ProjectManager              *UserResponse  `json:"projectManager,omitempty"`
	TeamMembers                 []UserResponse `json:"teamMembers"`
	Tasks                       []TaskResponse `json:"tasks"`
	TeamMemberCount             int            `json:"teamMemberCount"`
	TaskCount                   int            `json:"taskCount"`
	CompletedTaskCount          int            `json:"completedTaskCount"`
	OverallCompletionPercentage int            `json:"overallCompletionPercentage"`
}

type NotificationResponse struct {
	ID               string        `json:"_id"`
	Sender           *UserResponse `json:"sender,omitempty"`
	Type             string        `json:"type"`
	Message          string        `json:"message"`
	Link             string        `json:"link"`
	RelatedTaskTitle string        `json:"relatedTaskTitle"`
	IsRead           bool          `json:"isRead"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

func NewUserResponse(user *User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
		Avatar: user.Avatar,
	}
}

func NewTaskResponse(task *Task, usersByID map[primitive.ObjectID]*User) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.Display(),
	}

	if task.AssignedTo != nil {
		resp.AssignedTo = NewUserResponse(usersByID[*task.AssignedTo])
	}

	if task.AcceptanceStatus != "" {
		resp.AcceptanceStatus = string(task.AcceptanceStatus)
	} else {
		resp.AcceptanceStatus = "N/A"
	}

	if task.DueDate != nil {
		due := task.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}

	return resp
}

func NewMyTaskResponse(task *Task, usersByID map[primitive.ObjectID]*User, projectName string, projectID primitive.ObjectID) MyTaskResponse {
	return MyTaskResponse{
		TaskResponse: NewTaskResponse(task, usersByID),
		ProjectName:  projectName,
		ProjectID:    projectID.Hex(),
	}
}

func NewProjectResponse(project *Project, usersByID map[primitive.ObjectID]*User) *ProjectResponse {
	resp := &ProjectResponse{
		ID:            project.ID.Hex(),
		Name:          project.Name,
		Description:   project.Description,
		Status:        project.Status.Display(),
		ClientName:    project.ClientName,
		ClientEmail:   project.ClientEmail,
		ClientCompany: project.ClientCompany,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
		TeamMembers:   []UserResponse{},
		Tasks:         []TaskResponse{},
	}

	if project.StartDate != nil {
		start := project.StartDate.Format(dateLayout)
		resp.StartDate = &start
	}
	if project.EndDate != nil {
		end := project.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}

	if !project.ProjectManagerID.IsZero() {
		resp.ProjectManager = NewUserResponse(usersByID[project.ProjectManagerID])
	}

	for _, memberID := range project.TeamMemberIDs {
		if member := usersByID[memberID]; member != nil {
			resp.TeamMembers = append(resp.TeamMembers, *NewUserResponse(member))
		}
	}

	for i := range project.Tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(&project.Tasks[i], usersByID))
	}

	resp.TeamMemberCount = len(resp.TeamMembers)
	resp.TaskCount = len(resp.Tasks)

	for _, task := range resp.Tasks {
		if strings.EqualFold(task.Status, "Completed") {
			resp.CompletedTaskCount++
		}
	}

	if resp.TaskCount > 0 {
		resp.OverallCompletionPercentage = resp.CompletedTaskCount * 100 / resp.TaskCount
	}

	return resp
}

func NewNotificationResponse(notification *Notification, sender *User) NotificationResponse {
	resp := NotificationResponse{
		ID:               notification.ID.Hex(),
		Type:             string(notification.Type),
		Message:          notification.Message,
		Link:             notification.Link,
		RelatedTaskTitle: notification.RelatedTaskTitle,
		IsRead:           notification.IsRead,
		CreatedAt:        notification.CreatedAt,
	}
	if sender != nil {
		resp.Sender = NewUserResponse(sender)
	}
	return resp
}

func NewAuthResponse(token string, user *User) *AuthResponse {
	return &AuthResponse{
		Token:  token,
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
		Avatar: user.Avatar,
	}
}
