// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role controls what a user may do. Content managers can edit the catalog
// but not manage orders.
type Role string

const (
	RoleCustomer       Role = "CUSTOMER"
	RoleAdmin          Role = "ADMIN"
	RoleContentManager Role = "CONTENT_MANAGER"
)

// ParseRole maps a raw string to a known role, defaulting to customer.
func ParseRole(raw string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleContentManager:
		return RoleContentManager
	default:
		return RoleCustomer
	}
}

// User represents a registered account
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:200" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null;size:255" json:"-"`
	Role         Role      `gorm:"size:30;default:'CUSTOMER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate normalizes the record before insertion
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageCatalog reports whether the user may edit baskets.
func (u *User) CanManageCatalog() bool {
	return u.Role == RoleAdmin || u.Role == RoleContentManager
}
