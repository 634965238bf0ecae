// Package api implements the REST API for evaluating expressions and
// browsing previously computed truth tables.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/render"
	"github.com/lemonberrylabs/truthtable/pkg/store"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// Server is the HTTP API server.
type Server struct {
	app         *fiber.App
	store       *store.Store
	engine      *engine.Engine
	columnWidth int
}

// New creates a new API server.
func New(s *store.Store, e *engine.Engine, columnWidth int) *Server {
	srv := &Server{
		store:       s,
		engine:      e,
		columnWidth: columnWidth,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	app.Post("/v1/tables", srv.createTable)
	app.Get("/v1/tables", srv.listTables)
	app.Get("/v1/tables/:id", srv.getTable)
	app.Get("/v1/tables/:id/text", srv.getTableText)
	app.Delete("/v1/tables/:id", srv.deleteTable)
	app.Post("/v1/expressions\\:validate", srv.validateExpression)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) createTable(c *fiber.Ctx) error {
	var req expressionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidArgument(c, fmt.Sprintf("invalid request body: %v", err))
	}

	res, err := s.engine.Evaluate(req.Expression)
	ev := s.store.Record(req.Expression, res, err)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(evaluationToJSON(ev))
}

func (s *Server) listTables(c *fiber.Ctx) error {
	evs := s.store.List()
	result := make([]fiber.Map, len(evs))
	for i, ev := range evs {
		result[i] = evaluationToJSON(ev)
	}
	return c.JSON(fiber.Map{"tables": result})
}

func (s *Server) getTable(c *fiber.Ctx) error {
	ev, err := s.store.Get(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(evaluationToJSON(ev))
}

func (s *Server) getTableText(c *fiber.Ctx) error {
	ev, err := s.store.Get(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	if ev.Result == nil {
		return c.Status(409).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    409,
				"message": "evaluation failed; no table to render",
				"status":  "FAILED_PRECONDITION",
			},
		})
	}

	width := c.QueryInt("width", s.columnWidth)
	if width < 1 || width > render.MaxColumnWidth {
		return invalidArgument(c, fmt.Sprintf("width must be between 1 and %d", render.MaxColumnWidth))
	}
	var buf bytes.Buffer
	if err := render.Text(&buf, ev.Result, width); err != nil {
		return err
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (s *Server) deleteTable(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Params("id")); err != nil {
		return notFound(c, err)
	}
	return c.JSON(fiber.Map{})
}

func (s *Server) validateExpression(c *fiber.Ctx) error {
	var req expressionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidArgument(c, fmt.Sprintf("invalid request body: %v", err))
	}

	canonical, err := s.engine.Validate(req.Expression)
	if err != nil {
		var ee *types.EngineError
		if types.IsSyntaxError(err) && errors.As(err, &ee) {
			return c.JSON(fiber.Map{"valid": false, "rule": ee.Rule, "message": ee.Message})
		}
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"valid": true, "canonical": canonical})
}

// --- Helpers ---

func invalidArgument(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    400,
			"message": msg,
			"status":  "INVALID_ARGUMENT",
		},
	})
}

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(404).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    404,
			"message": err.Error(),
			"status":  "NOT_FOUND",
		},
	})
}

// engineError maps an engine failure onto an HTTP error response.
func engineError(c *fiber.Ctx, err error) error {
	var ee *types.EngineError
	if !errors.As(err, &ee) || ee.HasTag(types.TagInternalError) {
		log.Printf("internal error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    500,
				"message": err.Error(),
				"status":  "INTERNAL",
			},
		})
	}

	body := fiber.Map{
		"code":    400,
		"message": ee.Message,
		"status":  "INVALID_ARGUMENT",
		"tags":    ee.Tags,
	}
	switch {
	case ee.HasTag(types.TagSyntaxError):
		body["rule"] = ee.Rule
	case ee.HasTag(types.TagVariableLimitExceeded):
		body["status"] = "OUT_OF_RANGE"
		body["maxVariables"] = ee.Max
	}
	return c.Status(400).JSON(fiber.Map{"error": body})
}

func evaluationToJSON(ev *store.Evaluation) fiber.Map {
	result := fiber.Map{
		"id":         ev.ID,
		"name":       ev.Name,
		"expression": ev.Expression,
		"state":      ev.State,
		"createTime": ev.CreateTime.Format(time.RFC3339),
	}
	if ev.Result != nil {
		result["table"] = render.NewView(ev.Result)
	}
	if ev.Error != nil {
		result["error"] = ev.Error
	}
	return result
}
