package handlers

import (
	"strings"

	"inkwell/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// clonePage copies a render map. The listing and detail pages cache
// their data maps, so per-viewer keys must only ever go into a copy.
func clonePage(obj gin.H) gin.H {
	data := gin.H{}
	for k, v := range obj {
		data[k] = v
	}
	return data
}

// Render helper to inject common variables like 'current user'.
// obj itself is never mutated; viewer identity, admin state and flash
// messages go into a per-request copy.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := clonePage(obj)

	// Inject Current User
	if user := middleware.CurrentUser(c); user != nil {
		data["CurrentUser"] = user
		data["IsAdmin"] = user.IsAdmin()
	}

	data["CurrentPath"] = c.Request.URL.Path

	// One-shot status messages from the previous request
	for _, kind := range []string{"success", "error", "info"} {
		if msg := popFlash(c, kind); msg != "" {
			data[flashKeys[kind]] = msg
		}
	}

	c.HTML(code, name, data)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

var flashKeys = map[string]string{
	"success": "SuccessMessage",
	"error":   "ErrorMessage",
	"info":    "InfoMessage",
}

// Flash stores a one-shot status message in the session, surfaced by the
// next rendered page. kind is "success", "error" or "info".
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	session.Save()
}

// popFlash drains every queued flash of the given kind and joins them
// into the single message slot the templates render.
func popFlash(c *gin.Context, kind string) string {
	session := sessions.Default(c)
	flashes := session.Flashes(kind)
	if len(flashes) == 0 {
		return ""
	}
	session.Save()

	var messages []string
	for _, f := range flashes {
		if msg, ok := f.(string); ok && msg != "" {
			messages = append(messages, msg)
		}
	}
	return strings.Join(messages, " ")
}
