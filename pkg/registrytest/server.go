// Package registrytest provides an in-process fake registry backed by
// httptest, implementing the endpoints the client consumes. Test suites
// configure its fixtures and assert on what it recorded.
package registrytest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parcelreg/parcel/internal/models"
)

// Package is a fixture archive served by details/download.
type Package struct {
	Version string
	Archive []byte
}

// Published records one accepted publish request.
type Published struct {
	PackageName string
	Version     string
	Description string
	FileName    string
	Archive     []byte
	APIKey      string
}

// Server is a fake registry. Exported fixture fields must be set before
// the first request; recorded state is read through accessors.
type Server struct {
	*httptest.Server

	// Fixtures.
	Email          string
	Password       string
	SessionToken   string
	APIKey         string
	SearchResults  []models.SearchResult
	Packages       map[string]Package
	PublishMessage string

	// RejectAPIToken makes the api-token exchange fail, for tests of
	// the login flow's no-partial-credential guarantee.
	RejectAPIToken bool

	mu           sync.Mutex
	requestCount int
	published    []Published
}

// New starts a fake registry with sane default fixtures.
func New() *Server {
	s := &Server{
		Email:          "dev@example.com",
		Password:       "hunter2",
		SessionToken:   "session-token-1",
		APIKey:         "api-key-1",
		Packages:       map[string]Package{},
		PublishMessage: "package published",
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ginzap.Ginzap(zap.NewNop(), time.RFC3339, true))
	engine.Use(s.countRequests)

	engine.POST("/auth/login", s.login)
	engine.POST("/user/api-token", s.apiToken)
	engine.POST("/packages/publish", s.publish)
	engine.GET("/packages/search", s.search)
	engine.GET("/packages/details/:name", s.details)
	engine.GET("/packages/download/:name/:version", s.download)

	s.Server = httptest.NewServer(engine)
	return s
}

// RequestCount reports how many requests the server has seen. Used to
// assert that precondition failures make no network call.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

// PublishedPackages returns the publish requests accepted so far.
func (s *Server) PublishedPackages() []Published {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Published(nil), s.published...)
}

func (s *Server) countRequests(c *gin.Context) {
	s.mu.Lock()
	s.requestCount++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}
	if body.Email != s.Email || body.Password != s.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": s.SessionToken})
}

func (s *Server) apiToken(c *gin.Context) {
	if s.RejectAPIToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "api token creation disabled"})
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+s.SessionToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"api_token": s.APIKey})
}

func (s *Server) publish(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.APIKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	file, err := c.FormFile("package")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing package file"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	archive, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.published = append(s.published, Published{
		PackageName: c.PostForm("packageName"),
		Version:     c.PostForm("version"),
		Description: c.PostForm("description"),
		FileName:    file.Filename,
		Archive:     archive,
		APIKey:      s.APIKey,
	})
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": s.PublishMessage})
}

func (s *Server) search(c *gin.Context) {
	results := s.SearchResults
	if results == nil {
		results = []models.SearchResult{}
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) details(c *gin.Context) {
	pkg, ok := s.Packages[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": pkg.Version})
}

func (s *Server) download(c *gin.Context) {
	pkg, ok := s.Packages[c.Param("name")]
	if !ok || pkg.Version != c.Param("version") {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.Data(http.StatusOK, "application/zip", pkg.Archive)
}
