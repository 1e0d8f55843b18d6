package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexapay/admin-portal/internal/transport/http/middleware"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · NexaPay Admin</title></head>
<body data-page="{{.Page}}">
<div id="root" data-user="{{.Username}}"></div>
<script src="/assets/portal.js" defer></script>
</body>
</html>
`))

type pageData struct {
	Title    string
	Page     string
	Username string
}

// portalScript is the bootstrap the shells load. The real frontend bundle is
// deployed in its place; this one keeps the shells functional without it.
const portalScript = `(function () {
  var root = document.getElementById('root');
  if (!root) {
    return;
  }
  var page = document.body.getAttribute('data-page') || '';
  var user = root.getAttribute('data-user') || '';
  root.setAttribute('data-booted', page);
  if (user) {
    root.textContent = user + ' · ' + page;
  } else {
    root.textContent = page;
  }
})();
`

// PageHandler serves the HTML shells the frontend bundle boots from. The gate
// has already settled authentication by the time these run, so each shell only
// differs in the page marker handed to the bundle.
type PageHandler struct{}

// NewPageHandler constructs PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// RegisterRoutes binds the page shells.
func (h *PageHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, middleware.LandingPath)
	})
	r.GET(middleware.LoginPath, h.page("Sign in", "login"))
	r.GET(middleware.LandingPath, h.page("Dashboard", "dashboard"))
	r.GET(middleware.PasswordChangePath, h.page("Change password", "change-password"))
	r.GET("/transactions", h.page("Transactions", "transactions"))
	r.GET("/disbursements", h.page("Disbursements", "disbursements"))
	r.GET("/disbursements/approvals", h.page("Disbursement approvals", "disbursement-approvals"))
	r.GET("/merchants", h.page("Merchants", "merchants"))
	r.GET("/users", h.page("Users", "users"))
	r.GET("/audit-logs", h.page("Audit logs", "audit-logs"))
	r.GET("/reconciliation", h.page("Settlement reconciliation", "reconciliation"))

	r.GET("/assets/portal.js", h.script)
}

func (h *PageHandler) script(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(portalScript))
}

func (h *PageHandler) page(title, marker string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := pageData{Title: title, Page: marker}

		if payload, ok := middleware.SessionFromContext(c); ok {
			data.Username = payload.Username
		}

		h.render(c, data)
	}
}

func (h *PageHandler) render(c *gin.Context, data pageData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
