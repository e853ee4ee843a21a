package generator

import (
	"html/template"
	"strings"

	"github.com/pwaforge/pwaforge/pkg/db"
)

const defaultLanguage = "en"

var installPage = template.Must(template.New("install").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="theme-color" content="{{.ThemeColor}}">
<title>{{.Name}}</title>
<link rel="manifest" href="/manifest.json">
{{if .Icon}}<link rel="icon" href="{{.Icon}}">
{{end}}<style>
body { margin: 0; font-family: system-ui, sans-serif; background: #fff; color: #202124; }
main { max-width: 28rem; margin: 0 auto; padding: 2rem 1.5rem; text-align: center; }
.icon { width: 6rem; height: 6rem; border-radius: 1.25rem; object-fit: cover; }
h1 { font-size: 1.5rem; margin: 1rem 0 0.25rem; }
.developer { color: {{.ThemeColor}}; font-weight: 600; margin: 0 0 1rem; }
.description { color: #5f6368; }
button { background: {{.ThemeColor}}; color: #fff; border: 0; border-radius: 0.5rem; padding: 0.75rem 3rem; font-size: 1rem; cursor: pointer; }
</style>
</head>
<body>
<main>
{{if .Icon}}<img class="icon" src="{{.Icon}}" alt="">
{{end}}<h1>{{.Name}}</h1>
{{if .DeveloperName}}<p class="developer">{{.DeveloperName}}</p>
{{end}}{{if .Description}}<p class="description">{{.Description}}</p>
{{end}}<button id="install">Install</button>
</main>
<script>
if ('serviceWorker' in navigator) {
  navigator.serviceWorker.register('/service-worker.js');
}
var deferredPrompt = null;
window.addEventListener('beforeinstallprompt', function (e) {
  e.preventDefault();
  deferredPrompt = e;
});
document.getElementById('install').addEventListener('click', function () {
  if (deferredPrompt) {
    deferredPrompt.prompt();
    deferredPrompt = null;
  } else {
    window.location.href = '/';
  }
});
</script>
{{if .FBPixelID}}<script>
!function(f,b,e,v,n,t,s){if(f.fbq)return;n=f.fbq=function(){n.callMethod?
n.callMethod.apply(n,arguments):n.queue.push(arguments)};if(!f._fbq)f._fbq=n;
n.push=n;n.loaded=!0;n.version='2.0';n.queue=[];t=b.createElement(e);t.async=!0;
t.src=v;s=b.getElementsByTagName(e)[0];s.parentNode.insertBefore(t,s)}(window,
document,'script','https://connect.facebook.net/en_US/fbevents.js');
fbq('init', '{{.FBPixelID}}');
fbq('track', 'PageView');
</script>
<noscript><img height="1" width="1" style="display:none" src="https://www.facebook.com/tr?id={{.FBPixelID}}&ev=PageView&noscript=1"></noscript>
{{end}}</body>
</html>
`))

type pageData struct {
	Language      string
	Name          string
	DeveloperName string
	Description   string
	ThemeColor    string
	Icon          string
	FBPixelID     string
}

// InstallPage renders the HTML document served for every path that isn't
// the manifest or the worker. html/template escapes each field for the
// context it lands in, so user-supplied metadata can't inject markup.
func InstallPage(app db.App) string {
	name := app.Name
	if name == "" {
		name = DefaultName
	}
	lang := app.Language
	if lang == "" {
		lang = defaultLanguage
	}
	theme := app.ThemeColor
	if theme == "" {
		theme = DefaultThemeColor
	}

	data := pageData{
		Language:      lang,
		Name:          name,
		DeveloperName: app.DeveloperName,
		Description:   app.Description,
		ThemeColor:    theme,
		Icon:          app.Icon,
		FBPixelID:     app.FBPixelID,
	}

	var out strings.Builder
	if err := installPage.Execute(&out, data); err != nil {
		// Execute can only fail on a broken template, which Must already
		// guards at init.
		return "<!DOCTYPE html><html><body></body></html>"
	}
	return out.String()
}
