// Package server serves the deck and slide previews over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"deckgen/internal/logging"
	"deckgen/internal/preview"
	"deckgen/pptx"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Builder produces the presentation served for one request.
type Builder func(ctx context.Context) (*pptx.Presentation, error)

type handlers struct {
	build    Builder
	previews *preview.Exporter
}

// SetupApp creates the fiber app with middleware and routes.
func SetupApp(build Builder, previews *preview.Exporter) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/healthz",
	}))
	app.Use(requestLogger)

	h := &handlers{build: build, previews: previews}
	app.Get("/deck.pptx", h.deck)
	app.Get("/slides", h.slides)
	app.Get("/slides/:n.png", h.slidePNG)

	// Unmatched routes still answer in JSON.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		logging.Error("request failed", "path", c.Path(), "error", err)
	}

	logging.Warn("request rejected", "path", c.Path(), "status", code, "message", msg)
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logging.Debug("request",
		"id", c.GetRespHeader(fiber.HeaderXRequestID),
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"took", time.Since(start),
	)
	return err
}

func (h *handlers) deck(c *fiber.Ctx) error {
	pres, err := h.build(c.UserContext())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := pres.WriteTo(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, pptxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="presentation.pptx"`)
	return c.Send(buf.Bytes())
}

type slideInfo struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Text    string `json:"text"`
	Preview string `json:"preview"`
}

type slideList struct {
	Count  int         `json:"count"`
	Width  int64       `json:"width_emu"`
	Height int64       `json:"height_emu"`
	Slides []slideInfo `json:"slides"`
}

func (h *handlers) slides(c *fiber.Ctx) error {
	pres, err := h.build(c.UserContext())
	if err != nil {
		return err
	}
	layout := pres.GetLayout()
	out := slideList{
		Count:  pres.GetSlideCount(),
		Width:  layout.CX,
		Height: layout.CY,
		Slides: make([]slideInfo, 0, pres.GetSlideCount()),
	}
	for i, s := range pres.GetAllSlides() {
		out.Slides = append(out.Slides, slideInfo{
			Number:  i + 1,
			Name:    s.GetName(),
			Text:    s.ExtractText(),
			Preview: fmt.Sprintf("/slides/%d.png", i+1),
		})
	}
	return c.JSON(out)
}

func (h *handlers) slidePNG(c *fiber.Ctx) error {
	n, err := c.ParamsInt("n")
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "slide not found")
	}
	pres, err := h.build(c.UserContext())
	if err != nil {
		return err
	}
	if n < 1 || n > pres.GetSlideCount() {
		return fiber.NewError(fiber.StatusNotFound, "slide not found")
	}
	data, err := h.previews.Render(c.UserContext(), pres, n-1)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// Run serves app on addr until ctx is done, then shuts down within five seconds.
func Run(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logging.Info("serving previews", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Warn("shutdown signal received, closing server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	logging.Info("server stopped cleanly")
	return nil
}
