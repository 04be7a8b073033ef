package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"listingbot/config"
)

// Version is the dashboard-visible bot version
const Version = "2.2.2"

// Server is the authenticated, CORS-enabled admin API consumed by the
// external dashboard.
type Server struct {
	cfg           *config.Config
	store         Store
	discord       Discord
	newTicketAuth TicketAuthFactory
	engine        *gin.Engine
	httpServer    *http.Server
	startedAt     time.Time
}

// NewServer builds the server and registers every route
func NewServer(cfg *config.Config, store Store, discord Discord, newTicketAuth TicketAuthFactory) *Server {
	s := &Server{
		cfg:           cfg,
		store:         store,
		discord:       discord,
		newTicketAuth: newTicketAuth,
		startedAt:     time.Now(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())
	s.engine = engine
	s.registerRoutes()

	return s
}

// registerRoutes binds every (method, path) pair. Registration is explicit
// so the route table is the startup contract; gin panics on duplicates.
func (s *Server) registerRoutes() {
	authed := s.requireAPIKey

	s.engine.GET("/auth/actions", authed, s.handleAuthActions)
	s.engine.GET("/auth/bots", authed, s.handleAuthBots)
	s.engine.GET("/auth/users", authed, s.handleAuthUsers)

	s.engine.GET("/bot/ai-credits", authed, s.handleAICredits)
	s.engine.GET("/bot/listings", authed, s.handleListings)
	s.engine.GET("/bot/owner", authed, s.handleOwner)
	s.engine.GET("/bot/tickets", authed, s.handleTickets)
	s.engine.GET("/bot/extend", authed, s.handleExtendHosting)
	s.engine.GET("/bot/payment", authed, s.handlePayment)
	s.engine.GET("/ai/credits/add", authed, s.handleAddAICredits)

	s.engine.GET("/customer", authed, s.handleCustomerCheck)
	s.engine.GET("/seller", authed, s.handleSellerCheck)
	s.engine.GET("/roles", authed, s.handleRoles)
	s.engine.GET("/channels", authed, s.handleChannels)
	s.engine.GET("/server/members", authed, s.handleServerMembers)

	s.engine.GET("/get/email", authed, s.handleGetEmail)
	s.engine.GET("/api/domain", authed, s.handleDomain)
	s.engine.GET("/stats", authed, s.handleStats)
	s.engine.GET("/transcript/:name", authed, s.handleTranscript)
	s.engine.GET("/initialize/website/ticket/open", authed, s.handleWebsiteTicketOpen)

	s.engine.POST("/users/info", authed, s.handleUsersInfo)
}

// Handler exposes the route table; used by tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving on the given port in the background
func (s *Server) Start(port int) {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Admin API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Admin API server error: %v", err)
		}
	}()
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// fail logs an unexpected handler error and answers with a generic 500
func (s *Server) fail(c *gin.Context, err error) {
	log.WithError(err).Errorf("Handler error on %s %s", c.Request.Method, c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
