package generator

import (
	"encoding/json"
	"fmt"
)

// ServiceWorker renders the worker script: activate immediately, and send
// every navigation to the target URL. The URL is embedded as a JSON-encoded
// string so it is always a valid JS string literal.
func ServiceWorker(targetURL string) string {
	if targetURL == "" {
		targetURL = "/"
	}
	target, _ := json.Marshal(targetURL)

	return fmt.Sprintf(`self.addEventListener('install', function () {
  self.skipWaiting();
});

self.addEventListener('activate', function (event) {
  event.waitUntil(self.clients.claim());
});

self.addEventListener('fetch', function (event) {
  if (event.request.mode === 'navigate') {
    event.respondWith(Response.redirect(%s, 302));
  }
});
`, target)
}
