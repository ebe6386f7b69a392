package domain

import (
	"context"
	"time"
)

// User represents an app account backed by a Firebase identity
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FirebaseUID string    `bson:"firebase_uid,omitempty" json:"firebase_uid"`
	Email       string    `bson:"email" json:"email"`
	Name        string    `bson:"name" json:"name"`
	Roles       []string  `bson:"roles" json:"roles"` // ["member", "admin"]
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// HasRole checks if user has a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserRepository defines operations for managing users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// Role constants
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type userIDContextKey struct{}

// WithUserID stores the authenticated user's id in the request context.
// Set by auth middleware, read by request-scoped session resolution.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext extracts the authenticated user's id, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(string)
	return id, ok && id != ""
}
