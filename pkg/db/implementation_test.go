package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) Database {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.sqlite")
	database, err := New(context.Background(), "sqlite", dsn, nil)
	assert.NoError(t, err)
	return database
}

func TestCreateAndLookupApp(t *testing.T) {
	database := newTestDB(t)

	app := App{
		OwnerID:   "owner-1",
		Domain:    "wheel.test",
		TargetURL: "https://target.test",
		Name:      "Wheel",
	}
	assert.NoError(t, database.CreateApp(&app))
	assert.NotEmpty(t, app.ID)

	found, err := database.AppByDomain("wheel.test")
	assert.NoError(t, err)
	assert.Equal(t, app.ID, found.ID)
	assert.Equal(t, "Wheel", found.Name)

	byID, err := database.AppByID(app.ID)
	assert.NoError(t, err)
	assert.Equal(t, "wheel.test", byID.Domain)
}

func TestAppByDomainMissingIsZero(t *testing.T) {
	database := newTestDB(t)

	app, err := database.AppByDomain("nobody.test")
	assert.NoError(t, err)
	assert.Empty(t, app.ID)
}

func TestDomainUniqueIndex(t *testing.T) {
	database := newTestDB(t)

	first := App{OwnerID: "owner-1", Domain: "taken.test", TargetURL: "https://a", Name: "A"}
	assert.NoError(t, database.CreateApp(&first))

	second := App{OwnerID: "owner-2", Domain: "taken.test", TargetURL: "https://b", Name: "B"}
	err := database.CreateApp(&second)
	assert.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestUpdateAppMergesFields(t *testing.T) {
	database := newTestDB(t)

	app := App{OwnerID: "owner-1", Domain: "merge.test", TargetURL: "https://a", Name: "Before"}
	assert.NoError(t, database.CreateApp(&app))

	updated, err := database.UpdateApp(app.ID, map[string]interface{}{
		"name":        "After",
		"theme_color": "#112233",
	})
	assert.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "#112233", updated.ThemeColor)
	assert.Equal(t, "merge.test", updated.Domain)
	assert.Equal(t, "https://a", updated.TargetURL)
}

func TestAppsByOwnerIsScoped(t *testing.T) {
	database := newTestDB(t)

	mine := App{OwnerID: "owner-1", Domain: "mine.test", TargetURL: "https://a", Name: "Mine"}
	theirs := App{OwnerID: "owner-2", Domain: "theirs.test", TargetURL: "https://b", Name: "Theirs"}
	assert.NoError(t, database.CreateApp(&mine))
	assert.NoError(t, database.CreateApp(&theirs))

	apps, err := database.AppsByOwner("owner-1")
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, "mine.test", apps[0].Domain)
}

func TestDeleteApp(t *testing.T) {
	database := newTestDB(t)

	app := App{OwnerID: "owner-1", Domain: "gone.test", TargetURL: "https://a", Name: "Gone"}
	assert.NoError(t, database.CreateApp(&app))

	assert.NoError(t, database.DeleteApp(app.ID))

	found, err := database.AppByID(app.ID)
	assert.NoError(t, err)
	assert.Empty(t, found.ID)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(assert.AnError))
}
