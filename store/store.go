// Package store defines the storage interfaces for ideas and administrator
// accounts plus their MongoDB implementations.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isip/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// IdeaFilter narrows List results. Zero values mean no filtering.
type IdeaFilter struct {
	Status     string
	Department string
}

// IdeaUpdate carries the writable subset of Idea fields. Nil fields are
// left untouched. The identity fields (id, reference_id, timestamp) are
// deliberately absent: they are assigned once at creation.
type IdeaUpdate struct {
	Name                *string
	IsAnonymous         *bool
	Department          *string
	Role                *string
	CanContact          *bool
	Title               *string
	Category            *string
	Description         *string
	PainPoint           *string
	ImpactTags          *[]string
	Beneficiaries       *string
	Complexity          *string
	SeenElsewhere       *bool
	SeenElsewhereDetail *string
	AdditionalThoughts  *string
	Status              *string
	ImpactScore         *int
	FeasibilityScore    *int
	Owner               *string
	InternalNotes       *string
	IsRead              *bool
}

// IdeaStore persists idea submissions. Create assigns the id, the unique
// reference token, and both timestamps; Update refreshes last_updated on
// every successful mutation.
type IdeaStore interface {
	Create(ctx context.Context, idea *models.Idea) error
	GetByID(ctx context.Context, id string) (*models.Idea, error)
	GetByReferenceID(ctx context.Context, referenceID string) (*models.Idea, error)
	List(ctx context.Context, filter IdeaFilter) ([]models.Idea, error)
	Update(ctx context.Context, id string, update IdeaUpdate) (*models.Idea, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	TopDepartments(ctx context.Context, limit int) ([]models.DepartmentCount, error)
}

// UserUpdate carries the writable subset of User fields. last_login is
// absent here; it only moves through RecordLogin.
type UserUpdate struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
}

// UserStore persists administrator accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}
