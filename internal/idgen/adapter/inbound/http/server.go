package http_handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anthanhphan/go-snowflake/internal/idgen/domain"
	"github.com/anthanhphan/go-snowflake/internal/idgen/port"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// statusClientClosedRequest is returned when the caller went away before an ID
// was minted. There is no standard code for it; 499 follows nginx.
const statusClientClosedRequest = 499

type Server struct {
	app     *fiber.App
	addr    string
	service port.IDService
}

func NewServer(addr string, service port.IDService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		addr:    addr,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/ids", s.handleNext)
	s.app.Get("/ids/:id", s.handleDecode)
}

func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleNext serves one ID, or a batch when ?count= is given.
func (s *Server) handleNext(c *fiber.Ctx) error {
	raw := c.Query("count")
	if raw == "" {
		id, err := s.service.NextID(c.UserContext())
		if err != nil {
			return s.sendGenerateError(c, err)
		}
		return c.JSON(fiber.Map{
			"id":     id,
			"id_str": domain.FormatID(id),
		})
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid 'count' query parameter")
	}

	ids, err := s.service.NextIDs(c.UserContext(), count)
	if err != nil {
		return s.sendGenerateError(c, err)
	}

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = domain.FormatID(id)
	}
	return c.JSON(fiber.Map{
		"ids":     ids,
		"ids_str": strs,
	})
}

func (s *Server) handleDecode(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "ID must be a decimal 64-bit integer")
	}

	info, err := s.service.Decode(id)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(info)
}

func (s *Server) sendGenerateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidBatchSize):
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, idgen.ErrClockMovedBackwards), errors.Is(err, idgen.ErrClockUnavailable):
		sdklogger.Warnw("ID generation unavailable", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusServiceUnavailable, fmt.Sprintf("ID generation unavailable: %v", err))
	case errors.Is(err, context.Canceled):
		sdklogger.Debugw("ID generation canceled by client", "error", err.Error())
		return s.sendJSONError(c, statusClientClosedRequest, "Request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		sdklogger.Warnw("ID generation timed out", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusRequestTimeout, "ID generation timed out")
	default:
		sdklogger.Errorw("ID generation failed", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, fmt.Sprintf("ID generation failed: %v", err))
	}
}
