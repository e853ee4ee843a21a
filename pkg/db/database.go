package db

type Database interface {
	// AppByDomain and AppByID return a zero-ID App when nothing matches.
	AppByDomain(domain string) (App, error)
	AppByID(id string) (App, error)
	AppsByOwner(ownerID string) ([]App, error)
	CreateApp(app *App) error
	UpdateApp(id string, fields map[string]interface{}) (App, error)
	DeleteApp(id string) error
}
