package backend

import (
	"fmt"
	"path"
	"strings"

	"github.com/pwaforge/pwaforge/pkg/db"
	"github.com/pwaforge/pwaforge/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type backend struct {
	db    db.Database
	icons IconStore
}

// NewBackend wires the store and the optional icon store. A nil IconStore
// disables uploads but nothing else.
func NewBackend(database db.Database, icons IconStore) Backend {
	return &backend{
		db:    database,
		icons: icons,
	}
}

func (b *backend) ListApps(ownerID string) ([]db.App, error) {
	apps, err := b.db.AppsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []db.App{}
	}
	return apps, nil
}

func (b *backend) CreateApp(ownerID string, input model.AppInput) (db.App, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"domain", input.Domain},
		{"targetUrl", input.TargetURL},
		{"name", input.Name},
	}
	for _, f := range required {
		if f.value == nil || *f.value == "" {
			return db.App{}, fmt.Errorf("%w: missing required field %q", ErrValidation, f.name)
		}
	}
	if err := validateStatus(input.Status); err != nil {
		return db.App{}, err
	}

	domain := normalizeDomain(*input.Domain)

	// The unique index on domain is the real guarantee; this pre-check only
	// turns the common case into a clean conflict instead of a driver error.
	existing, err := b.db.AppByDomain(domain)
	if err != nil {
		return db.App{}, err
	}
	if existing.ID != "" {
		return db.App{}, fmt.Errorf("%w: %s", ErrConflict, domain)
	}

	app := db.App{
		OwnerID:   ownerID,
		Domain:    domain,
		TargetURL: *input.TargetURL,
		Name:      *input.Name,
		Status:    db.StatusDraft,
	}
	if input.DeveloperName != nil {
		app.DeveloperName = *input.DeveloperName
	}
	if input.Description != nil {
		app.Description = *input.Description
	}
	if input.Language != nil {
		app.Language = *input.Language
	}
	if input.ThemeColor != nil {
		app.ThemeColor = *input.ThemeColor
	}
	if input.Icon != nil {
		app.Icon = *input.Icon
	}
	if input.Countries != nil {
		app.Countries = normalizeCountries(*input.Countries)
	}
	if input.FBPixelID != nil {
		app.FBPixelID = *input.FBPixelID
	}
	if input.PostbackURL != nil {
		app.PostbackURL = *input.PostbackURL
	}
	if input.Status != nil {
		app.Status = *input.Status
	}

	if err := b.db.CreateApp(&app); err != nil {
		if db.IsDuplicateKey(err) {
			// lost the race against a concurrent create for the same domain
			return db.App{}, fmt.Errorf("%w: %s", ErrConflict, domain)
		}
		return db.App{}, err
	}

	logrus.Debugf("created app %s for owner %s on domain %s", app.ID, ownerID, domain)
	return app, nil
}

func (b *backend) UpdateApp(ownerID, id string, input model.AppInput) (db.App, error) {
	app, err := b.ownedApp(ownerID, id)
	if err != nil {
		return db.App{}, err
	}
	if err := validateStatus(input.Status); err != nil {
		return db.App{}, err
	}

	fields := map[string]interface{}{}
	if input.Domain != nil {
		domain := normalizeDomain(*input.Domain)
		if domain == "" {
			return db.App{}, fmt.Errorf("%w: domain must not be empty", ErrValidation)
		}
		if domain != app.Domain {
			existing, err := b.db.AppByDomain(domain)
			if err != nil {
				return db.App{}, err
			}
			if existing.ID != "" {
				return db.App{}, fmt.Errorf("%w: %s", ErrConflict, domain)
			}
			fields["domain"] = domain
		}
	}
	if input.TargetURL != nil {
		if *input.TargetURL == "" {
			return db.App{}, fmt.Errorf("%w: targetUrl must not be empty", ErrValidation)
		}
		fields["target_url"] = *input.TargetURL
	}
	if input.Name != nil {
		if *input.Name == "" {
			return db.App{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		fields["name"] = *input.Name
	}
	if input.DeveloperName != nil {
		fields["developer_name"] = *input.DeveloperName
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Language != nil {
		fields["language"] = *input.Language
	}
	if input.ThemeColor != nil {
		fields["theme_color"] = *input.ThemeColor
	}
	if input.Icon != nil {
		fields["icon"] = *input.Icon
	}
	if input.Countries != nil {
		fields["countries"] = normalizeCountries(*input.Countries)
	}
	if input.FBPixelID != nil {
		fields["fb_pixel_id"] = *input.FBPixelID
	}
	if input.PostbackURL != nil {
		fields["postback_url"] = *input.PostbackURL
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}

	if len(fields) == 0 {
		return app, nil
	}

	updated, err := b.db.UpdateApp(id, fields)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return db.App{}, ErrConflict
		}
		return db.App{}, err
	}
	return updated, nil
}

func (b *backend) DeleteApp(ownerID, id string) error {
	if _, err := b.ownedApp(ownerID, id); err != nil {
		return err
	}
	return b.db.DeleteApp(id)
}

func (b *backend) ResolveDomain(domain string) (db.App, error) {
	app, err := b.db.AppByDomain(normalizeDomain(domain))
	if err != nil {
		return db.App{}, err
	}
	if app.ID == "" {
		return db.App{}, fmt.Errorf("%w: no app for domain %s", ErrNotFound, domain)
	}
	return app, nil
}

func (b *backend) UploadIcon(ownerID, id, filename, contentType string, data []byte) (string, error) {
	if b.icons == nil {
		return "", ErrNotConfigured
	}
	app, err := b.ownedApp(ownerID, id)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: icon file is empty", ErrValidation)
	}

	key := fmt.Sprintf("icons/%s/%s", app.ID, path.Base(filename))
	url, err := b.icons.Upload(key, contentType, data)
	if err != nil {
		return "", err
	}

	if _, err := b.db.UpdateApp(app.ID, map[string]interface{}{"icon": url}); err != nil {
		return "", err
	}
	return url, nil
}

func (b *backend) ownedApp(ownerID, id string) (db.App, error) {
	app, err := b.db.AppByID(id)
	if err != nil {
		return db.App{}, err
	}
	if app.ID == "" {
		return db.App{}, fmt.Errorf("%w: app %s", ErrNotFound, id)
	}
	if app.OwnerID != ownerID {
		return db.App{}, ErrForbidden
	}
	return app, nil
}

func validateStatus(status *string) error {
	if status == nil {
		return nil
	}
	switch *status {
	case db.StatusDraft, db.StatusPublished:
		return nil
	}
	return fmt.Errorf("%w: status must be %q or %q", ErrValidation, db.StatusDraft, db.StatusPublished)
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

func normalizeCountries(raw string) string {
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if !slices.Contains(codes, c) {
			codes = append(codes, c)
		}
	}
	slices.Sort(codes)
	return strings.Join(codes, ",")
}
