package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// App is one tenant configuration. The domain is the routing key for all
// public traffic and must be unique across every row; the index is the
// store-level guarantee, the pre-check in the backend only exists to give
// callers a clean conflict response.
type App struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	OwnerID       string    `gorm:"index" json:"ownerId"`
	Domain        string    `gorm:"uniqueIndex" json:"domain"`
	TargetURL     string    `json:"targetUrl"`
	Name          string    `json:"name"`
	DeveloperName string    `json:"developerName"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	ThemeColor    string    `json:"themeColor"`
	Icon          string    `json:"icon"`
	Countries     string    `json:"countries"` // denormalized comma-separated region codes
	FBPixelID     string    `gorm:"column:fb_pixel_id" json:"fbPixelId"`
	PostbackURL   string    `json:"postbackUrl"`
	Status        string    `gorm:"default:draft" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *App) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
