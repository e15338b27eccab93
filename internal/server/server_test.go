package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckgen/internal/logging"
	"deckgen/internal/preview"
	"deckgen/pptx"
)

func testDeck(context.Context) (*pptx.Presentation, error) {
	p := pptx.New()
	p.GetLayout().SetLayout(pptx.LayoutWidescreen)
	for _, name := range []string{"Title", "Closing"} {
		s := p.CreateSlide()
		s.SetName(name)
		s.SetBackground(pptx.NewFill().SetSolid(pptx.NewColor("0A1628")))
		tb := s.CreateRichTextShape()
		tb.SetBounds(pptx.Inch(1), pptx.Inch(1), pptx.Inch(6), pptx.Inch(1))
		tb.CreateTextRun(name + " slide")
	}
	return p, nil
}

func newTestApp(t *testing.T, build Builder) *fiber.App {
	t.Helper()
	logging.SetLoggerForTest(zerolog.Nop())
	return SetupApp(build, preview.New(preview.Options{Width: 160}))
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	return eb
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, _ := do(t, app, "/healthz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, _ := do(t, app, "/slides")
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 20)
}

func TestDeck(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, body := do(t, app, "/deck.pptx")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, pptxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "presentation.pptx")

	pres, err := pptx.ReadFrom(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, 2, pres.GetSlideCount())
}

func TestSlides(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, body := do(t, app, "/slides")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list slideList
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, int64(12191695), list.Width)
	require.Len(t, list.Slides, 2)
	assert.Equal(t, slideInfo{Number: 2, Name: "Closing", Text: "Closing slide", Preview: "/slides/2.png"}, list.Slides[1])
}

func TestSlidePNG(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, body := do(t, app, "/slides/1.png")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestSlidePNG_NotFound(t *testing.T) {
	app := newTestApp(t, testDeck)
	for _, target := range []string{"/slides/0.png", "/slides/3.png", "/slides/abc.png"} {
		resp, body := do(t, app, target)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, target)
		eb := decodeError(t, body)
		assert.Equal(t, fiber.StatusNotFound, eb.Error.Code, target)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, testDeck)
	resp, body := do(t, app, "/nope")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", decodeError(t, body).Error.Message)
}

func TestBuildFailure(t *testing.T) {
	app := newTestApp(t, func(context.Context) (*pptx.Presentation, error) {
		return nil, errors.New("asset unreadable")
	})
	resp, body := do(t, app, "/deck.pptx")

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	eb := decodeError(t, body)
	assert.Equal(t, fiber.StatusInternalServerError, eb.Error.Code)
	assert.Equal(t, "Internal Server Error", eb.Error.Message)
}
