// Package generator turns a stored app config into the three artifacts the
// public side serves: the web app manifest, the service worker, and the
// install page. Every function is pure; absent fields fall back to defaults
// instead of erroring, and all interpolation goes through format-aware
// encoders so hostile field values can't break the output.
package generator

import (
	"encoding/json"

	"github.com/pwaforge/pwaforge/pkg/db"
)

const (
	DefaultName       = "App"
	DefaultIcon       = "/icon-512.png"
	DefaultThemeColor = "#ffffff"

	backgroundColor = "#ffffff"
)

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type manifest struct {
	ShortName       string         `json:"short_name"`
	Name            string         `json:"name"`
	Icons           []manifestIcon `json:"icons"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
}

// Manifest renders the web app manifest for an app. Output is always valid
// JSON; encoding/json does the escaping.
func Manifest(app db.App) string {
	name := app.Name
	if name == "" {
		name = DefaultName
	}
	icon := app.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	theme := app.ThemeColor
	if theme == "" {
		theme = DefaultThemeColor
	}

	m := manifest{
		ShortName: name,
		Name:      name,
		Icons: []manifestIcon{
			{Src: icon, Sizes: "512x512", Type: "image/png"},
		},
		StartURL:        "./",
		Display:         "standalone",
		ThemeColor:      theme,
		BackgroundColor: backgroundColor,
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		// structurally impossible for a struct of strings
		return "{}"
	}
	return string(out)
}
