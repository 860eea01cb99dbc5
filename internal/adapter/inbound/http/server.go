package http_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"strings"

	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/port"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	service  port.DocumentService
	verifier port.TokenVerifier
}

func NewServer(cfg *config.Config, service port.DocumentService, verifier port.TokenVerifier) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:         requestBodyLimit(cfg.App.MaxFileSize),
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:      app,
		cfg:      cfg,
		service:  service,
		verifier: verifier,
	}

	s.registerRoutes()

	return s
}

// multipartOverhead leaves room for boundary and part-header framing so a
// file right at the configured maximum is not rejected at the transport.
const multipartOverhead = 1 << 20

// requestBodyLimit maps the configured file size cap to a transport body
// limit. Zero means unlimited; the transport must not substitute its own
// default cap, so the service-side check stays authoritative.
func requestBodyLimit(maxFileSize int64) int {
	if maxFileSize <= 0 || maxFileSize > int64(math.MaxInt)-multipartOverhead {
		return math.MaxInt
	}
	return int(maxFileSize + multipartOverhead)
}

func (s *Server) registerRoutes() {
	auth := AuthMiddleware(s.verifier)

	s.app.Post("/upload", auth, s.handleUpload)
	s.app.Get("/files", auth, s.handleList)
	s.app.Get("/files/:id", auth, s.handleDownload)
	s.app.Get("/files/:id/meta", auth, s.handleMetadata)
	s.app.Delete("/files/:id", auth, s.handleDelete)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// sendServiceError maps the error taxonomy to protocol status signals
// without leaking storage internals.
func (s *Server) sendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrUnauthenticated):
		return s.sendJSONError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, port.ErrFileNotFound):
		return s.sendJSONError(c, fiber.StatusNotFound, "file not found")
	case errors.Is(err, port.ErrConflict):
		return s.sendJSONError(c, fiber.StatusConflict, "file could not be fully removed")
	default:
		return s.sendJSONError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	identity, ok := identityFromCtx(c)
	if !ok {
		return s.sendJSONError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data")
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid Content-Type")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing boundary in Content-Type")
	}

	// Use the raw request body stream so the file is never held in memory.
	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	mr := multipart.NewReader(bodyStream, boundary)

	var fileName, fileType string
	var src io.Reader

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
		}

		if part.FileName() != "" {
			fileName = part.FileName()
			fileType = part.Header.Get(fiber.HeaderContentType)
			src = part
			break
		}
		_ = part.Close()
	}

	if src == nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing file part")
	}
	if fileType == "" {
		fileType = fiber.MIMEOctetStream
	}

	record, err := s.service.UploadFile(c.Context(), fileName, fileType, *identity, src)
	if err != nil {
		sdklogger.Errorw("Upload failed", "file_name", fileName, "error", err.Error())
		return s.sendServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) handleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", s.cfg.App.DefaultPageSize)

	listing, err := s.service.ListFiles(c.Context(), page, limit)
	if err != nil {
		sdklogger.Errorw("List failed", "error", err.Error())
		return s.sendServiceError(c, err)
	}

	return c.JSON(listing)
}

func (s *Server) handleMetadata(c *fiber.Ctx) error {
	fileID := c.Params("id")

	record, err := s.service.GetFileRecord(c.Context(), fileID)
	if err != nil {
		return s.sendServiceError(c, err)
	}

	return c.JSON(record)
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	fileID := c.Params("id")

	record, stream, err := s.service.OpenDownload(c.Context(), fileID)
	if err != nil {
		sdklogger.Warnw("Download open failed", "file_id", fileID, "error", err.Error())
		return s.sendServiceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", record.FileName))
	c.Set(fiber.HeaderContentType, record.ContentType)

	// The transport pulls from the stream under its own flow control, so a
	// slow consumer paces chunk reads instead of buffering server-side.
	// A mid-stream corruption error aborts the response body; the declared
	// Content-Length makes the truncation detectable by the client.
	return c.SendStream(stream, int(record.SizeBytes))
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	fileID := c.Params("id")

	if err := s.service.DeleteFile(c.Context(), fileID); err != nil {
		sdklogger.Warnw("Delete failed", "file_id", fileID, "error", err.Error())
		return s.sendServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
