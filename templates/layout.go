// Package templates renders the HTML views as templ components. The
// views are written directly against the templ runtime API so handlers
// compose and render them the same way regardless of origin.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc shortens templ's escaping helper for the fprintf-style views below.
func esc(s string) string {
	return templ.EscapeString(s)
}

// PageLayout wraps a body component in the shared HTML skeleton:
// htmx, the toast listener and the app chrome.
func PageLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="/static/js/htmx.min.js"></script>
<script src="/static/js/html2canvas.min.js"></script>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
<header class="topbar">
<a href="/quotations" class="brand">Capricorn Quotations</a>
</header>
<div id="toast-container"></div>
<script>
document.body.addEventListener("showToast", function (evt) {
  var d = evt.detail || {};
  var el = document.createElement("div");
  el.className = "toast toast-" + (d.type || "info");
  el.textContent = d.message || "";
  document.getElementById("toast-container").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
});
</script>
<main class="content">
`, esc(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
