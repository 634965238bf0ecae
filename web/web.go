// Package web provides the embedded web UI: an expression form, the
// resulting truth table and the evaluation history.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/store"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the web UI pages.
type Handler struct {
	store   *store.Store
	engine  *engine.Engine
	funcMap template.FuncMap
}

// pageData wraps all page-specific data with common fields.
type pageData struct {
	NavActive    string
	MaxVariables int
	Data         interface{}
}

// New creates a new web UI handler.
func New(s *store.Store, e *engine.Engine) *Handler {
	return &Handler{
		store:  s,
		engine: e,
		funcMap: template.FuncMap{
			"timeAgo":    timeAgo,
			"formatTime": formatTime,
			"stateClass": stateClass,
			"stateIcon":  stateIcon,
			"truncate":   truncate,
			"boolText":   boolText,
			"boolClass":  boolClass,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, page string, navActive string, data interface{}) error {
	// Parse per page so define blocks never clash across pages.
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	pd := pageData{
		NavActive:    navActive,
		MaxVariables: h.engine.MaxVariables(),
		Data:         data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pd); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.dashboard)
	app.Post("/ui/evaluate", h.evaluate)
	app.Get("/ui/tables/:id", h.tableDetail)

	// Redirect root to UI
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

// --- Page Data Types ---

type dashboardContent struct {
	Evaluations    []*store.Evaluation
	SucceededCount int
	FailedCount    int
}

type tableDetailContent struct {
	Evaluation *store.Evaluation
	Rows       []rowView
}

type rowView struct {
	Values []bool
	Result bool
}

// --- Handlers ---

func (h *Handler) dashboard(c *fiber.Ctx) error {
	evs := h.store.List()
	content := dashboardContent{Evaluations: evs}
	for _, ev := range evs {
		switch ev.State {
		case store.EvaluationSucceeded:
			content.SucceededCount++
		case store.EvaluationFailed:
			content.FailedCount++
		}
	}
	return h.render(c, "dashboard.html", "dashboard", content)
}

func (h *Handler) evaluate(c *fiber.Ctx) error {
	text := c.FormValue("expression")
	res, err := h.engine.Evaluate(text)
	logInternal(err)
	ev := h.store.Record(text, res, err)
	return c.Redirect("/ui/tables/"+ev.ID, fiber.StatusSeeOther)
}

func (h *Handler) tableDetail(c *fiber.Ctx) error {
	ev, err := h.store.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).SendString("Table not found")
	}

	content := tableDetailContent{Evaluation: ev}
	if ev.Result != nil {
		for _, row := range ev.Result.Rows {
			content.Rows = append(content.Rows, rowView{
				Values: row.Values(ev.Result.Variables),
				Result: row.Result,
			})
		}
	}
	return h.render(c, "table.html", "dashboard", content)
}

// logInternal logs err unless it is nil or a user error.
func logInternal(err error) {
	if err != nil && !types.IsUserError(err) {
		log.Printf("internal error: %v", err)
	}
}

// --- Template Helpers ---

func timeAgo(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02 15:04:05")
}

func stateClass(state store.EvaluationState) string {
	switch state {
	case store.EvaluationSucceeded:
		return "state-succeeded"
	case store.EvaluationFailed:
		return "state-failed"
	default:
		return ""
	}
}

func stateIcon(state store.EvaluationState) template.HTML {
	switch state {
	case store.EvaluationSucceeded:
		return "&#10003;"
	case store.EvaluationFailed:
		return "&#10007;"
	default:
		return "&#8226;"
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func boolClass(b bool) string {
	return strings.ToLower(boolText(b))
}
