package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/benoitkugler/okgrad/cssgen"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/highlight"
	"github.com/benoitkugler/okgrad/pdfexport"
	"github.com/benoitkugler/okgrad/raster"
	"github.com/benoitkugler/okgrad/svggen"
	"github.com/benoitkugler/okgrad/urlstate"
	"github.com/gin-gonic/gin"
)

// maxImportSize bounds the body of import requests.
const maxImportSize = 1 << 20

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// queryState reads the gradient of the query string. Malformed fields
// take their default, but non finite numbers and a feather above the
// configured maximum are rejected with 400. It writes the error response
// itself and reports whether to go on.
func (srv *Server) queryState(c *gin.Context) (gradstate.State, bool) {
	s := urlstate.Initial(c.Request.URL.RawQuery)
	if err := gradstate.CheckFinite(s); err != nil {
		badRequest(c, err)
		return s, false
	}
	if s.Feather > srv.cfg.MaxFeather {
		badRequest(c, fmt.Errorf("feather %s exceeds the maximum of %s",
			gradstate.FormatNumber(s.Feather), gradstate.FormatNumber(srv.cfg.MaxFeather)))
		return s, false
	}
	return s, true
}

// seed reads the "seed" parameter: a number, "random", or nothing for 0.
func seed(c *gin.Context) (int, error) {
	v := c.Query("seed")
	switch v {
	case "":
		return 0, nil
	case "random":
		return svggen.RandomSeed(), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q", v)
	}
	return n, nil
}

func (srv *Server) dimension(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return srv.cfg.DefaultImageSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	if n > srv.cfg.MaxImageSize {
		return 0, fmt.Errorf("%s %d exceeds the maximum of %d", key, n, srv.cfg.MaxImageSize)
	}
	return n, nil
}

// imageParams reads the parameters shared by the image routes.
func (srv *Server) imageParams(c *gin.Context) (w, h, sd int, err error) {
	if w, err = srv.dimension(c, "width"); err != nil {
		return
	}
	if h, err = srv.dimension(c, "height"); err != nil {
		return
	}
	sd, err = seed(c)
	return
}

// send writes data, as an attachment when the download parameter is set.
func send(c *gin.Context, contentType, ext string, data []byte) {
	if d := c.Query("download"); d == "1" || d == "true" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gradient."+ext))
	}
	c.Data(http.StatusOK, contentType, data)
}

func (srv *Server) handleSVG(c *gin.Context) {
	sd, err := seed(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	start := time.Now()
	code := svggen.Generate(s, svggen.Options{Seed: sd})
	srv.metrics.observe("svg", start)
	send(c, "image/svg+xml; charset=utf-8", "svg", []byte(code))
}

func (srv *Server) handleCSS(c *gin.Context) {
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	start := time.Now()
	code := cssgen.Generate(s)
	srv.metrics.observe("css", start)
	send(c, "text/css; charset=utf-8", "css", []byte(code+"\n"))
}

func background(c *gin.Context) bool {
	v := c.Query("background")
	return v == "1" || v == "true"
}

func (srv *Server) handlePNG(c *gin.Context) {
	w, h, sd, err := srv.imageParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	start := time.Now()
	img := raster.Render(s, raster.Options{Width: w, Height: h, Seed: sd, Background: background(c)})
	var buf bytes.Buffer
	if err = raster.EncodePNG(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	srv.metrics.observe("png", start)
	send(c, "image/png", "png", buf.Bytes())
}

func (srv *Server) handlePDF(c *gin.Context) {
	w, h, sd, err := srv.imageParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	start := time.Now()
	var buf bytes.Buffer
	err = pdfexport.Write(&buf, s, pdfexport.Options{Width: w, Height: h, Seed: sd, Background: background(c)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	srv.metrics.observe("pdf", start)
	send(c, "application/pdf", "pdf", buf.Bytes())
}

// handleCode returns the generated code as a highlighted HTML page.
func (srv *Server) handleCode(c *gin.Context) {
	sd, err := seed(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	lang := highlight.Lang(c.DefaultQuery("lang", string(highlight.SVG)))
	var code string
	switch lang {
	case highlight.SVG:
		code = svggen.Generate(s, svggen.Options{Seed: sd})
	case highlight.CSS:
		code = cssgen.Generate(s)
	default:
		badRequest(c, fmt.Errorf("%w: %q", highlight.ErrUnknownLang, lang))
		return
	}
	var buf bytes.Buffer
	if err = highlight.Write(&buf, code, lang, highlight.HTML, c.Query("style")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func stateResponse(s gradstate.State) gin.H {
	return gin.H{"state": s, "query": urlstate.Encode(s)}
}

func (srv *Server) handleGetState(c *gin.Context) {
	s, ok := srv.queryState(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateResponse(s))
}

// bindState reads a JSON state over the defaults and validates it.
// It writes the error response itself and reports whether to go on.
func bindState(c *gin.Context) (gradstate.State, bool) {
	s := gradstate.Default()
	s.ColorStops = nil
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return s, false
	}
	if s.ColorStops == nil {
		s.ColorStops = gradstate.DefaultColorStops()
	}
	if err := gradstate.Validate(s); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return s, false
	}
	return s, true
}

// handlePostState converts a JSON state into its shareable query string
// and generated code.
func (srv *Server) handlePostState(c *gin.Context) {
	s, ok := bindState(c)
	if !ok {
		return
	}
	sd, err := seed(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query": urlstate.Encode(s),
		"svg":   svggen.Generate(s, svggen.Options{Seed: sd}),
		"css":   cssgen.Generate(s),
	})
}

func isSVG(contentType string, body []byte) bool {
	if strings.Contains(contentType, "svg") || strings.Contains(contentType, "xml") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

// handleImport reads back a generated SVG document or CSS declaration.
func (srv *Server) handleImport(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	var (
		partial gradstate.Partial
		resp    = gin.H{}
	)
	if isSVG(c.ContentType(), body) {
		var imported svggen.Imported
		imported, err = svggen.Parse(bytes.NewReader(body))
		partial = imported.State
		resp["seed"] = imported.Options.Seed
	} else {
		partial, err = cssgen.Parse(string(body))
	}
	switch {
	case errors.Is(err, svggen.ErrNotGradient), errors.Is(err, cssgen.ErrNotGradient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		badRequest(c, err)
		return
	}
	s := partial.Apply(gradstate.Default())
	if err = gradstate.CheckFinite(s); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	resp["state"] = s
	resp["query"] = urlstate.Encode(s)
	c.JSON(http.StatusOK, resp)
}

func (srv *Server) handleCreateSession(c *gin.Context) {
	// the body may be chunked: read it to know whether it holds a state
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	var (
		initial gradstate.State
		ok      bool
	)
	if len(bytes.TrimSpace(body)) > 0 {
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		initial, ok = bindState(c)
	} else {
		initial, ok = srv.queryState(c)
	}
	if !ok {
		return
	}
	id, store, err := srv.sessions.create(initial)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	srv.metrics.sessions.Set(float64(srv.sessions.len()))
	resp := stateResponse(store.State())
	resp["id"] = id
	c.JSON(http.StatusCreated, resp)
}

func (srv *Server) sessionStore(c *gin.Context) (*gradstate.Store, bool) {
	store, err := srv.sessions.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return store, true
}

func (srv *Server) handleGetSession(c *gin.Context) {
	store, ok := srv.sessionStore(c)
	if !ok {
		return
	}
	resp := stateResponse(store.State())
	resp["id"] = c.Param("id")
	c.JSON(http.StatusOK, resp)
}

func (srv *Server) handleDeleteSession(c *gin.Context) {
	if err := srv.sessions.delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	srv.metrics.sessions.Set(float64(srv.sessions.len()))
	c.Status(http.StatusNoContent)
}

func (srv *Server) handleSessionAction(c *gin.Context) {
	store, ok := srv.sessionStore(c)
	if !ok {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	action, err := req.toAction()
	if err != nil {
		badRequest(c, err)
		return
	}
	s, err := store.Dispatch(action)
	if errors.Is(err, gradstate.ErrTooFewStops) {
		resp := stateResponse(s)
		resp["error"] = err.Error()
		c.JSON(http.StatusConflict, resp)
		return
	} else if err != nil {
		badRequest(c, err)
		return
	}
	resp := stateResponse(s)
	resp["id"] = c.Param("id")
	c.JSON(http.StatusOK, resp)
}
