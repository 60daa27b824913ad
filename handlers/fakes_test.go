package handlers_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"isip/config"
	"isip/handlers"
	"isip/middleware"
	"isip/models"
	"isip/routes"
	"isip/store"
	"isip/utils"
)

// fakeIdeaStore is an in-memory IdeaStore with the same assignment and
// uniqueness behavior as the MongoDB implementation.
type fakeIdeaStore struct {
	mu    sync.Mutex
	ideas map[string]models.Idea
	refs  map[string]string
}

func newFakeIdeaStore() *fakeIdeaStore {
	return &fakeIdeaStore{
		ideas: make(map[string]models.Idea),
		refs:  make(map[string]string),
	}
}

func (f *fakeIdeaStore) Create(_ context.Context, idea *models.Idea) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	idea.Timestamp = now
	idea.LastUpdated = now
	if idea.ImpactTags == nil {
		idea.ImpactTags = []string{}
	}

	for {
		idea.ReferenceID = models.NewReferenceID()
		if _, taken := f.refs[idea.ReferenceID]; !taken {
			break
		}
	}
	f.refs[idea.ReferenceID] = idea.ID
	f.ideas[idea.ID] = *idea
	return nil
}

func (f *fakeIdeaStore) GetByID(_ context.Context, id string) (*models.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idea, ok := f.ideas[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &idea, nil
}

func (f *fakeIdeaStore) GetByReferenceID(_ context.Context, referenceID string) (*models.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.refs[referenceID]
	if !ok {
		return nil, store.ErrNotFound
	}
	idea := f.ideas[id]
	return &idea, nil
}

func (f *fakeIdeaStore) List(_ context.Context, filter store.IdeaFilter) ([]models.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ideas := []models.Idea{}
	for _, idea := range f.ideas {
		if filter.Status != "" && idea.Status != filter.Status {
			continue
		}
		if filter.Department != "" && idea.Department != filter.Department {
			continue
		}
		ideas = append(ideas, idea)
	}
	sort.Slice(ideas, func(i, j int) bool {
		return ideas[i].Timestamp.After(ideas[j].Timestamp)
	})
	return ideas, nil
}

func (f *fakeIdeaStore) Update(_ context.Context, id string, update store.IdeaUpdate) (*models.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idea, ok := f.ideas[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if update.Name != nil {
		idea.Name = *update.Name
	}
	if update.IsAnonymous != nil {
		idea.IsAnonymous = *update.IsAnonymous
	}
	if update.Department != nil {
		idea.Department = *update.Department
	}
	if update.Role != nil {
		idea.Role = *update.Role
	}
	if update.CanContact != nil {
		idea.CanContact = *update.CanContact
	}
	if update.Title != nil {
		idea.Title = *update.Title
	}
	if update.Category != nil {
		idea.Category = *update.Category
	}
	if update.Description != nil {
		idea.Description = *update.Description
	}
	if update.PainPoint != nil {
		idea.PainPoint = *update.PainPoint
	}
	if update.ImpactTags != nil {
		idea.ImpactTags = *update.ImpactTags
	}
	if update.Beneficiaries != nil {
		idea.Beneficiaries = *update.Beneficiaries
	}
	if update.Complexity != nil {
		idea.Complexity = *update.Complexity
	}
	if update.SeenElsewhere != nil {
		idea.SeenElsewhere = *update.SeenElsewhere
	}
	if update.SeenElsewhereDetail != nil {
		idea.SeenElsewhereDetail = *update.SeenElsewhereDetail
	}
	if update.AdditionalThoughts != nil {
		idea.AdditionalThoughts = *update.AdditionalThoughts
	}
	if update.Status != nil {
		idea.Status = *update.Status
	}
	if update.ImpactScore != nil {
		idea.ImpactScore = *update.ImpactScore
	}
	if update.FeasibilityScore != nil {
		idea.FeasibilityScore = *update.FeasibilityScore
	}
	if update.Owner != nil {
		idea.Owner = *update.Owner
	}
	if update.InternalNotes != nil {
		idea.InternalNotes = *update.InternalNotes
	}
	if update.IsRead != nil {
		idea.IsRead = *update.IsRead
	}

	idea.LastUpdated = time.Now().UTC()
	f.ideas[id] = idea
	return &idea, nil
}

func (f *fakeIdeaStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idea, ok := f.ideas[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(f.refs, idea.ReferenceID)
	delete(f.ideas, id)
	return nil
}

func (f *fakeIdeaStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.ideas)), nil
}

func (f *fakeIdeaStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, idea := range f.ideas {
		counts[idea.Status]++
	}
	return counts, nil
}

func (f *fakeIdeaStore) TopDepartments(_ context.Context, limit int) ([]models.DepartmentCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[string]int64)
	order := []string{}
	for _, idea := range f.ideas {
		if _, seen := counts[idea.Department]; !seen {
			order = append(order, idea.Department)
		}
		counts[idea.Department]++
	}
	sort.Strings(order) // stable tie-break

	departments := []models.DepartmentCount{}
	for _, dept := range order {
		departments = append(departments, models.DepartmentCount{Department: dept, Count: counts[dept]})
	}
	sort.SliceStable(departments, func(i, j int) bool {
		return departments[i].Count > departments[j].Count
	})
	if len(departments) > limit {
		departments = departments[:limit]
	}
	return departments, nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []models.User{}
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

func (f *fakeUserStore) Update(_ context.Context, id primitive.ObjectID, update store.UserUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if update.Username != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Username == *update.Username {
				return nil, store.ErrDuplicate
			}
		}
		user.Username = *update.Username
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	f.users[id] = user
	return &user, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) RecordLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.LastLogin = &at
	f.users[id] = user
	return nil
}

// newTestEnv wires the full router over in-memory stores.
func newTestEnv(t *testing.T) (http.Handler, *fakeIdeaStore, *fakeUserStore) {
	t.Helper()
	config.LoadConfig()

	ideas := newFakeIdeaStore()
	users := newFakeUserStore()
	handlers.Init(ideas, users)
	middleware.Init(users)

	router := mux.NewRouter()
	routes.RegisterRoutes(router)
	return router, ideas, users
}

// seedAdmin creates an administrator directly in the store and returns a
// valid bearer token for it.
func seedAdmin(t *testing.T, users *fakeUserStore) (models.User, string) {
	t.Helper()

	user := models.User{
		Username:     "admin",
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        "admin@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, users.Create(context.Background(), &user))

	token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Username)
	require.NoError(t, err)
	return user, token
}
