package services

import (
	"context"
	"sort"

	"github.com/MArjun666/ProjectFlow-fullstack-app/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes so the services can be exercised without a
// running MongoDB.

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *fakeUserRepo) add(user models.User) models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Insert(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		copied := user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, _ := r.FindByEmail(ctx, email)
	return user != nil, nil
}

func (r *fakeUserRepo) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	found := []models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			found = append(found, user)
		}
	}
	return found, nil
}

func (r *fakeUserRepo) FindAllSortedByName(ctx context.Context) ([]models.User, error) {
	all := []models.User{}
	for _, user := range r.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]models.Project)}
}

func cloneProject(project models.Project) models.Project {
	copied := project
	copied.TeamMemberIDs = append([]primitive.ObjectID{}, project.TeamMemberIDs...)
	copied.Tasks = append([]models.Task{}, project.Tasks...)
	return copied
}

func (r *fakeProjectRepo) Insert(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	if project, ok := r.projects[id]; ok {
		copied := cloneProject(project)
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	found := []models.Project{}
	for _, project := range r.projects {
		if project.CreatorID == userID || project.ProjectManagerID == userID || project.HasMember(userID) {
			found = append(found, cloneProject(project))
		}
	}
	return found, nil
}

func (r *fakeProjectRepo) Save(ctx context.Context, project *models.Project) error {
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.projects, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: []models.Notification{}}
}

func (r *fakeNotificationRepo) Insert(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			copied := notification
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeNotificationRepo) FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	found := []models.Notification{}
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			found = append(found, notification)
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return found, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

// byRecipient groups the stored notifications for assertions.
func (r *fakeNotificationRepo) byRecipient(recipientID primitive.ObjectID) []models.Notification {
	found, _ := r.FindByRecipient(context.Background(), recipientID)
	return found
}
