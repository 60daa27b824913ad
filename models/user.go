// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an administrator account. The wire shape keeps the snake_case
// field names the frontend already consumes for user management.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
}
