package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isip/models"
)

const ideaCollectionName = "ideas"

// Creates retry token generation this many times before giving up. A
// collision needs two identical 6-character draws, so in practice the
// first attempt wins.
const maxReferenceAttempts = 5

// MongoIdeaStore implements IdeaStore on a MongoDB collection.
type MongoIdeaStore struct {
	collection *mongo.Collection
}

// NewMongoIdeaStore creates the store and ensures the unique index that
// backs the reference-token contract.
func NewMongoIdeaStore(ctx context.Context, db *mongo.Database) (*MongoIdeaStore, error) {
	s := &MongoIdeaStore{collection: db.Collection(ideaCollectionName)}

	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reference_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure reference_id index: %w", err)
	}
	return s, nil
}

func (s *MongoIdeaStore) Create(ctx context.Context, idea *models.Idea) error {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	idea.Timestamp = now
	idea.LastUpdated = now
	if idea.ImpactTags == nil {
		idea.ImpactTags = []string{}
	}

	var err error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		idea.ReferenceID = models.NewReferenceID()
		_, err = s.collection.InsertOne(ctx, idea)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert idea: %w", err)
		}
		// Token collided with an existing record, draw again.
	}
	return fmt.Errorf("reference token collision persisted after %d attempts: %w", maxReferenceAttempts, err)
}

func (s *MongoIdeaStore) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	var idea models.Idea
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&idea)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find idea %s: %w", id, err)
	}
	return &idea, nil
}

func (s *MongoIdeaStore) GetByReferenceID(ctx context.Context, referenceID string) (*models.Idea, error) {
	var idea models.Idea
	err := s.collection.FindOne(ctx, bson.M{"reference_id": referenceID}).Decode(&idea)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find idea by reference %s: %w", referenceID, err)
	}
	return &idea, nil
}

func (s *MongoIdeaStore) List(ctx context.Context, filter IdeaFilter) ([]models.Idea, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}

	// Newest submissions first.
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer cursor.Close(ctx)

	var ideas []models.Idea
	if err = cursor.All(ctx, &ideas); err != nil {
		return nil, fmt.Errorf("failed to decode ideas: %w", err)
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}
	return ideas, nil
}

func (s *MongoIdeaStore) Update(ctx context.Context, id string, update IdeaUpdate) (*models.Idea, error) {
	set := update.setDocument()
	set["last_updated"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var idea models.Idea
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&idea)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update idea %s: %w", id, err)
	}
	return &idea, nil
}

func (s *MongoIdeaStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete idea %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoIdeaStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count ideas: %w", err)
	}
	return count, nil
}

func (s *MongoIdeaStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, cursor.Err()
}

func (s *MongoIdeaStore) TopDepartments(ctx context.Context, limit int) ([]models.DepartmentCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$department",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate departments: %w", err)
	}
	defer cursor.Close(ctx)

	departments := []models.DepartmentCount{}
	for cursor.Next(ctx) {
		var row struct {
			Department string `bson:"_id"`
			Count      int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode department count: %w", err)
		}
		departments = append(departments, models.DepartmentCount{
			Department: row.Department,
			Count:      row.Count,
		})
	}
	return departments, cursor.Err()
}

// setDocument builds the $set document from the non-nil fields. Identity
// fields never appear here, so they cannot be overwritten.
func (u IdeaUpdate) setDocument() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.IsAnonymous != nil {
		set["is_anonymous"] = *u.IsAnonymous
	}
	if u.Department != nil {
		set["department"] = *u.Department
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	if u.CanContact != nil {
		set["can_contact"] = *u.CanContact
	}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.PainPoint != nil {
		set["pain_point"] = *u.PainPoint
	}
	if u.ImpactTags != nil {
		set["impact_tags"] = *u.ImpactTags
	}
	if u.Beneficiaries != nil {
		set["beneficiaries"] = *u.Beneficiaries
	}
	if u.Complexity != nil {
		set["complexity"] = *u.Complexity
	}
	if u.SeenElsewhere != nil {
		set["seen_elsewhere"] = *u.SeenElsewhere
	}
	if u.SeenElsewhereDetail != nil {
		set["seen_elsewhere_detail"] = *u.SeenElsewhereDetail
	}
	if u.AdditionalThoughts != nil {
		set["additional_thoughts"] = *u.AdditionalThoughts
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.ImpactScore != nil {
		set["impact_score"] = *u.ImpactScore
	}
	if u.FeasibilityScore != nil {
		set["feasibility_score"] = *u.FeasibilityScore
	}
	if u.Owner != nil {
		set["owner"] = *u.Owner
	}
	if u.InternalNotes != nil {
		set["internal_notes"] = *u.InternalNotes
	}
	if u.IsRead != nil {
		set["is_read"] = *u.IsRead
	}
	return set
}
