package generator

import (
	"encoding/json"
	"testing"

	"github.com/pwaforge/pwaforge/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestManifestDefaults(t *testing.T) {
	out := Manifest(db.App{})

	var m map[string]interface{}
	err := json.Unmarshal([]byte(out), &m)
	assert.NoError(t, err)

	assert.Equal(t, "App", m["name"])
	assert.Equal(t, "App", m["short_name"])
	assert.Equal(t, "./", m["start_url"])
	assert.Equal(t, "standalone", m["display"])
	assert.Equal(t, "#ffffff", m["theme_color"])
	assert.Equal(t, "#ffffff", m["background_color"])

	icons := m["icons"].([]interface{})
	assert.Len(t, icons, 1)
	icon := icons[0].(map[string]interface{})
	assert.Equal(t, "/icon-512.png", icon["src"])
	assert.Equal(t, "512x512", icon["sizes"])
}

func TestManifestUsesConfig(t *testing.T) {
	out := Manifest(db.App{
		Name:       "Lucky Wheel",
		ThemeColor: "#112233",
		Icon:       "https://cdn.test/icon.png",
	})

	var m map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "Lucky Wheel", m["name"])
	assert.Equal(t, "Lucky Wheel", m["short_name"])
	assert.Equal(t, "#112233", m["theme_color"])
}

func TestManifestAlwaysValidJSON(t *testing.T) {
	hostile := []string{
		``,
		`"`,
		`"},"evil":{"`,
		"<script>alert(1)</script>",
		"line\nbreak\tand\\slash",
		`💥 emoji and "quotes"`,
	}

	for _, v := range hostile {
		out := Manifest(db.App{Name: v, Description: v, ThemeColor: v, Icon: v})
		assert.True(t, json.Valid([]byte(out)), "input %q broke the manifest", v)
	}
}

func TestServiceWorkerEmbedsTarget(t *testing.T) {
	out := ServiceWorker("https://t")
	assert.Contains(t, out, `Response.redirect("https://t", 302)`)
	assert.Contains(t, out, "self.skipWaiting()")
	assert.Contains(t, out, "self.clients.claim()")
}

func TestServiceWorkerDefaultsToRoot(t *testing.T) {
	out := ServiceWorker("")
	assert.Contains(t, out, `Response.redirect("/", 302)`)
}

func TestServiceWorkerEscapesTarget(t *testing.T) {
	out := ServiceWorker(`https://x/?q="); evil(`)
	// the URL must stay inside one JS string literal
	assert.Contains(t, out, `\"`)
	assert.NotContains(t, out, `Response.redirect("https://x/?q="); evil(`)
}

func TestInstallPageEscapesUserFields(t *testing.T) {
	out := InstallPage(db.App{
		Name:        `<script>alert("name")</script>`,
		Description: `"><img src=x onerror=alert(1)>`,
	})

	assert.NotContains(t, out, `<script>alert("name")</script>`)
	assert.NotContains(t, out, `<img src=x`)
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestInstallPageDefaults(t *testing.T) {
	out := InstallPage(db.App{})

	assert.Contains(t, out, "<title>App</title>")
	assert.Contains(t, out, `lang="en"`)
	assert.Contains(t, out, `<link rel="manifest" href="/manifest.json">`)
	assert.Contains(t, out, "navigator.serviceWorker.register('/service-worker.js')")
	assert.NotContains(t, out, "fbevents.js")
}

func TestInstallPagePixelSnippet(t *testing.T) {
	out := InstallPage(db.App{FBPixelID: "1234567890"})
	assert.Contains(t, out, "fbevents.js")
	assert.Contains(t, out, "1234567890")

	hostile := InstallPage(db.App{FBPixelID: `1'); evil(`})
	assert.NotContains(t, hostile, `fbq('init', '1'); evil(`)
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	app := db.App{
		Name:        "Same",
		Description: "Every time",
		TargetURL:   "https://target.test",
		ThemeColor:  "#445566",
		FBPixelID:   "42",
	}

	assert.Equal(t, Manifest(app), Manifest(app))
	assert.Equal(t, InstallPage(app), InstallPage(app))
	assert.Equal(t, ServiceWorker(app.TargetURL), ServiceWorker(app.TargetURL))
}
