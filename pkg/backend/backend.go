package backend

import (
	"github.com/pwaforge/pwaforge/pkg/db"
	"github.com/pwaforge/pwaforge/pkg/model"
)

type Backend interface {
	ListApps(ownerID string) ([]db.App, error)
	CreateApp(ownerID string, input model.AppInput) (db.App, error)
	UpdateApp(ownerID, id string, input model.AppInput) (db.App, error)
	DeleteApp(ownerID, id string) error
	ResolveDomain(domain string) (db.App, error)
	UploadIcon(ownerID, id, filename, contentType string, data []byte) (string, error)
}
