package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the CMS API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>sitecms API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "sitecms", "version": "v0.1.0" },
  "components": { "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } } },
  "paths": {
    "/auth/login": {
      "post": {
        "summary": "Log in with the admin email and password",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}},"required":["email","password"]}}}},
        "responses": { "200": { "description": "accessToken, expiresIn and user" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/auth/logout": { "post": { "summary": "Revoke the presented access token", "security": [{"bearer": []}], "responses": { "200": { "description": "logged out" } } } },
    "/auth/me": { "get": { "summary": "Current account", "security": [{"bearer": []}], "responses": { "200": { "description": "user" } } } },
    "/api/admin/content": {
      "get": { "summary": "List content (?type, ?published, ?q, ?sort)", "security": [{"bearer": []}], "responses": { "200": { "description": "items" } } },
      "post": { "summary": "Create content from a form submission", "security": [{"bearer": []}], "responses": { "201": { "description": "item, warnings, notifications" }, "422": { "description": "formErrors" } } }
    },
    "/api/admin/content/types": { "get": { "summary": "Content types with labels and tabs", "security": [{"bearer": []}], "responses": { "200": { "description": "types" } } } },
    "/api/admin/content/{id}": {
      "get": { "summary": "Get content", "security": [{"bearer": []}], "responses": { "200": { "description": "item" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace content from a form submission", "security": [{"bearer": []}], "responses": { "200": { "description": "item" }, "422": { "description": "formErrors" } } },
      "patch": { "summary": "Merge a partial record", "security": [{"bearer": []}], "responses": { "200": { "description": "item" } } },
      "delete": { "summary": "Delete content; placement references are left dangling", "security": [{"bearer": []}], "responses": { "200": { "description": "deleted, danglingReferences" }, "404": { "description": "not found" } } }
    },
    "/api/admin/navigation": { "get": { "summary": "Menu entries", "security": [{"bearer": []}], "responses": { "200": { "description": "items" } } }, "post": { "summary": "Add a menu entry", "security": [{"bearer": []}], "responses": { "201": { "description": "item" } } } },
    "/api/admin/navigation/reorder": { "put": { "summary": "Reorder menu entries", "security": [{"bearer": []}], "responses": { "200": { "description": "items" } } } },
    "/api/admin/jobs": { "get": { "summary": "Job openings", "security": [{"bearer": []}], "responses": { "200": { "description": "openings" } } }, "post": { "summary": "Create a job opening", "security": [{"bearer": []}], "responses": { "201": { "description": "opening" }, "422": { "description": "formErrors" } } } },
    "/api/admin/settings": { "get": { "summary": "Footer and contact settings", "security": [{"bearer": []}], "responses": { "200": { "description": "settings" } } }, "put": { "summary": "Save settings", "security": [{"bearer": []}], "responses": { "200": { "description": "settings" } } } },
    "/api/admin/users": { "get": { "summary": "Dashboard accounts", "security": [{"bearer": []}], "responses": { "200": { "description": "users" } } }, "post": { "summary": "Create an account (admin only)", "security": [{"bearer": []}], "responses": { "201": { "description": "user" } } } },
    "/api/admin/icons": { "get": { "summary": "Search the icon catalog (?q)", "security": [{"bearer": []}], "responses": { "200": { "description": "icons" } } } },
    "/api/admin/icons/import/url": { "post": { "summary": "Import an icon from a URL (?contentId)", "security": [{"bearer": []}], "responses": { "200": { "description": "icon" } } } },
    "/api/admin/media": { "post": { "summary": "Upload a file (multipart field: file)", "security": [{"bearer": []}], "responses": { "201": { "description": "url" } } } },
    "/api/admin/events": { "get": { "summary": "Server-Sent Events for storage changes", "security": [{"bearer": []}], "responses": { "200": { "description": "text/event-stream" } } } },
    "/api/site/content/{type}": { "get": { "summary": "Published items of a type", "responses": { "200": { "description": "items" } } } },
    "/api/site/pages/{slug}": { "get": { "summary": "Published page with its composed sections", "responses": { "200": { "description": "page, sections" }, "404": { "description": "not found" } } } },
    "/api/site/blog/{slug}": { "get": { "summary": "Published blog post", "responses": { "200": { "description": "item" } } } },
    "/api/site/navigation": { "get": { "summary": "Menu", "responses": { "200": { "description": "items" } } } },
    "/api/site/jobs": { "get": { "summary": "Published job openings", "responses": { "200": { "description": "openings" } } } },
    "/api/site/settings": { "get": { "summary": "Footer and contact settings", "responses": { "200": { "description": "settings" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
