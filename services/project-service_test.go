package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/MArjun666/ProjectFlow-fullstack-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func newTestProjectService() (*ProjectService, *fakeUserRepo, *fakeProjectRepo, *fakeNotificationRepo) {
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	notifications := newFakeNotificationRepo()
	return NewProjectService(projects, users, notifications), users, projects, notifications
}

func TestCreateProjectDeduplicatesTeam(t *testing.T) {
	service, users, projects, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Email: "cora@example.com", Role: models.RoleProjectManager})
	manager := users.add(models.User{Name: "Mia", Email: "mia@example.com", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Email: "ben@example.com", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: manager.ID.Hex(),
		TeamMembers: []string{
			manager.ID.Hex(),
			member.ID.Hex(),
			member.ID.Hex(),
			creator.ID.Hex(),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TeamMemberCount)

	stored, err := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.ElementsMatch(t,
		[]primitive.ObjectID{creator.ID, manager.ID, member.ID},
		stored.TeamMemberIDs)
	assert.Equal(t, creator.ID, stored.CreatorID)
	assert.Equal(t, manager.ID, stored.ProjectManagerID)
}

func TestCreateProjectNotifiesMembersExceptActor(t *testing.T) {
	service, users, _, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	manager := users.add(models.User{Name: "Mia", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: manager.ID.Hex(),
		TeamMembers:    []string{member.ID.Hex()},
	})
	require.NoError(t, err)

	assert.Empty(t, notifications.byRecipient(creator.ID))

	toManager := notifications.byRecipient(manager.ID)
	require.Len(t, toManager, 1)
	assert.Equal(t, models.NotificationGeneric, toManager[0].Type)
	assert.Equal(t, "Cora added you to the project 'Website'.", toManager[0].Message)
	assert.Equal(t, "/projects/"+resp.ID, toManager[0].Link)

	require.Len(t, notifications.byRecipient(member.ID), 1)
}

func TestCreateProjectSelfOnlyEmitsNoNotifications(t *testing.T) {
	service, users, _, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Solo", Role: models.RoleProjectManager})

	_, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "One-person show",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{creator.ID.Hex()},
	})
	require.NoError(t, err)
	assert.Empty(t, notifications.notifications)
}

func TestCreateProjectValidation(t *testing.T) {
	service, users, _, _ := newTestProjectService()
	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})

	_, err := service.CreateProject(context.Background(), &creator, ProjectRequest{ProjectManager: creator.ID.Hex()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateProject(context.Background(), &creator, ProjectRequest{Name: "No manager"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Ghost member",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{primitive.NewObjectID().Hex()},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProjectEmitsNoNotifications(t *testing.T) {
	service, users, projects, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	manager := users.add(models.User{Name: "Mia", Role: models.RoleProjectManager})
	newManager := users.add(models.User{Name: "Noa", Role: models.RoleProjectManager})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		Description:    "v1",
		Status:         "In Progress",
		ProjectManager: manager.ID.Hex(),
	})
	require.NoError(t, err)
	notifications.notifications = nil

	updated, err := service.UpdateProject(context.Background(), &creator, resp.ID, ProjectRequest{
		Name:           "Website v2",
		ProjectManager: newManager.ID.Hex(),
	})
	require.NoError(t, err)

	// changing the manager on update notifies nobody, unlike create
	assert.Empty(t, notifications.notifications)
	assert.Equal(t, "Noa", updated.ProjectManager.Name)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	// scalar fields are overwritten unconditionally, clearing omitted ones
	assert.Equal(t, "Website v2", stored.Name)
	assert.Equal(t, "", stored.Description)
	assert.Equal(t, models.ProjectNotStarted, stored.Status)
	// team members were absent from the request, so the set is untouched
	assert.ElementsMatch(t, []primitive.ObjectID{creator.ID, manager.ID}, stored.TeamMemberIDs)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	service, users, _, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
	})
	require.NoError(t, err)

	first, err := service.AddMember(context.Background(), &creator, resp.ID, member.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, first.TeamMemberCount)
	require.Len(t, notifications.byRecipient(member.ID), 1)

	second, err := service.AddMember(context.Background(), &creator, resp.ID, member.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, second.TeamMemberCount)
	// no duplicate notification for an existing member
	assert.Len(t, notifications.byRecipient(member.ID), 1)
}

func TestRemoveMemberOrphansTasks(t *testing.T) {
	service, users, projects, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{member.ID.Hex()},
	})
	require.NoError(t, err)

	task, err := service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:      strPtr("Wire the footer"),
		AssignedTo: member.ID.Hex(),
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssignedTo)

	_, err = service.RemoveMember(context.Background(), &creator, resp.ID, member.ID.Hex())
	require.NoError(t, err)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	assert.False(t, stored.HasMember(member.ID))
	// the task survives but loses its assignee
	require.Len(t, stored.Tasks, 1)
	assert.Nil(t, stored.Tasks[0].AssignedTo)
	assert.Equal(t, "Wire the footer", stored.Tasks[0].Title)
}

func TestCreateTaskForcesToDoAndNotifiesAssignee(t *testing.T) {
	service, users, projects, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{member.ID.Hex()},
	})
	require.NoError(t, err)
	notifications.notifications = nil

	task, err := service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:      strPtr("Design review"),
		AssignedTo: member.ID.Hex(),
		Status:     strPtr("Completed"),
		DueDate:    strPtr("2025-06-01"),
	})
	require.NoError(t, err)

	// status is always To_Do regardless of the request
	assert.Equal(t, "To Do", task.Status)
	assert.Equal(t, "Pending", task.AcceptanceStatus)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-06-01", *task.DueDate)

	toMember := notifications.byRecipient(member.ID)
	require.Len(t, toMember, 1)
	assert.Equal(t, models.NotificationTaskAssigned, toMember[0].Type)
	assert.Equal(t, "Cora assigned you a new task: 'Design review'.", toMember[0].Message)
	assert.Equal(t, "Design review", toMember[0].RelatedTaskTitle)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	require.Len(t, stored.Tasks, 1)
	assert.NotEmpty(t, stored.Tasks[0].ID)
	assert.NotEqual(t, stored.ID.Hex(), stored.Tasks[0].ID)
}

func TestUpdateTaskAppliesOnlyPresentFields(t *testing.T) {
	service, users, projects, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
	})
	require.NoError(t, err)

	task, err := service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:   strPtr("Design review"),
		DueDate: strPtr("2025-06-01"),
	})
	require.NoError(t, err)

	updated, err := service.UpdateTask(context.Background(), &creator, resp.ID, task.ID, TaskRequest{
		Status: strPtr("In Progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, "Design review", updated.Title)
	require.NotNil(t, updated.DueDate)

	// an explicit empty dueDate clears the date
	updated, err = service.UpdateTask(context.Background(), &creator, resp.ID, task.ID, TaskRequest{
		DueDate: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	assert.Nil(t, stored.Tasks[0].DueDate)
}

func TestUpdateTaskUnauthorizedLeavesTaskUnchanged(t *testing.T) {
	service, users, projects, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	assignee := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})
	bystander := users.add(models.User{Name: "Zed", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{assignee.ID.Hex(), bystander.ID.Hex()},
	})
	require.NoError(t, err)

	task, err := service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:      strPtr("Design review"),
		AssignedTo: assignee.ID.Hex(),
	})
	require.NoError(t, err)

	_, err = service.UpdateTask(context.Background(), &bystander, resp.ID, task.ID, TaskRequest{
		Title: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	assert.Equal(t, "Design review", stored.Tasks[0].Title)
}

func TestUpdateTaskAcceptance(t *testing.T) {
	service, users, projects, notifications := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	manager := users.add(models.User{Name: "Mia", Role: models.RoleProjectManager})
	assignee := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: manager.ID.Hex(),
		TeamMembers:    []string{assignee.ID.Hex()},
	})
	require.NoError(t, err)

	task, err := service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:      strPtr("Design review"),
		AssignedTo: assignee.ID.Hex(),
	})
	require.NoError(t, err)

	// force the task to Completed first: accepting must still move it to In_Progress
	_, err = service.UpdateTask(context.Background(), &assignee, resp.ID, task.ID, TaskRequest{
		Status: strPtr("Completed"),
	})
	require.NoError(t, err)
	notifications.notifications = nil

	accepted, err := service.UpdateTaskAcceptance(context.Background(), &assignee, resp.ID, task.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", accepted.Status)
	assert.Equal(t, "Accepted", accepted.AcceptanceStatus)

	toManager := notifications.byRecipient(manager.ID)
	require.Len(t, toManager, 1)
	assert.Equal(t, models.NotificationTaskAccepted, toManager[0].Type)
	assert.Equal(t, "Ben accepted the task: 'Design review'.", toManager[0].Message)

	notifications.notifications = nil
	rejected, err := service.UpdateTaskAcceptance(context.Background(), &assignee, resp.ID, task.ID, "RejectedByTeamMember")
	require.NoError(t, err)
	// rejecting leaves the task status alone
	assert.Equal(t, "In Progress", rejected.Status)
	assert.Equal(t, "RejectedByTeamMember", rejected.AcceptanceStatus)

	toManager = notifications.byRecipient(manager.ID)
	require.Len(t, toManager, 1)
	assert.Equal(t, models.NotificationTaskRejected, toManager[0].Type)

	// an unrecognized status quietly becomes Pending with no notification
	notifications.notifications = nil
	pending, err := service.UpdateTaskAcceptance(context.Background(), &assignee, resp.ID, task.ID, "bogus")
	require.NoError(t, err)
	assert.Equal(t, "Pending", pending.AcceptanceStatus)
	assert.Empty(t, notifications.notifications)

	// only the assignee may act, even the project manager is excluded
	_, err = service.UpdateTaskAcceptance(context.Background(), &manager, resp.ID, task.ID, "Accepted")
	assert.ErrorIs(t, err, ErrForbidden)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	assert.Equal(t, models.AcceptancePending, stored.Tasks[0].AcceptanceStatus)
}

func TestDeleteProjectPolicy(t *testing.T) {
	service, users, projects, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	manager := users.add(models.User{Name: "Mia", Role: models.RoleProjectManager})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: manager.ID.Hex(),
	})
	require.NoError(t, err)

	// the assigned manager is neither admin nor creator
	err = service.DeleteProject(context.Background(), &manager, resp.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = service.DeleteProject(context.Background(), &creator, resp.ID)
	require.NoError(t, err)

	stored, _ := projects.FindByID(context.Background(), mustObjectID(t, resp.ID))
	assert.Nil(t, stored)
}

func TestGetProjectByIDMembershipGate(t *testing.T) {
	service, users, _, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	outsider := users.add(models.User{Name: "Zed", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
	})
	require.NoError(t, err)

	_, err = service.GetProjectByID(context.Background(), &outsider, resp.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.GetProjectByID(context.Background(), &creator, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetProjectByID(context.Background(), &creator, "not-a-hex-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRoundTripCounts(t *testing.T) {
	service, users, _, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	member := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{member.ID.Hex()},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
			Title: strPtr(fmt.Sprintf("Task %d", i+1)),
		})
		require.NoError(t, err)
	}

	fetched, err := service.GetProjectByID(context.Background(), &creator, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.TeamMemberCount)
	assert.Equal(t, 3, fetched.TaskCount)
	assert.Len(t, fetched.Tasks, 3)
	assert.Len(t, fetched.TeamMembers, 2)
	assert.Equal(t, 0, fetched.CompletedTaskCount)
}

func TestListMyTasks(t *testing.T) {
	service, users, _, _ := newTestProjectService()

	creator := users.add(models.User{Name: "Cora", Role: models.RoleProjectManager})
	assignee := users.add(models.User{Name: "Ben", Role: models.RoleTeamMember})

	resp, err := service.CreateProject(context.Background(), &creator, ProjectRequest{
		Name:           "Website",
		ProjectManager: creator.ID.Hex(),
		TeamMembers:    []string{assignee.ID.Hex()},
	})
	require.NoError(t, err)

	_, err = service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title:      strPtr("Mine"),
		AssignedTo: assignee.ID.Hex(),
	})
	require.NoError(t, err)
	_, err = service.CreateTask(context.Background(), &creator, resp.ID, TaskRequest{
		Title: strPtr("Unassigned"),
	})
	require.NoError(t, err)

	mine, err := service.ListMyTasks(context.Background(), &assignee)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)
	assert.Equal(t, "Website", mine[0].ProjectName)
	assert.Equal(t, resp.ID, mine[0].ProjectID)

	none, err := service.ListMyTasks(context.Background(), &creator)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
