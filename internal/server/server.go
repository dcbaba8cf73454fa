// Package server exposes the portal client as a small REST API, so other
// systems can list, fetch and issue invoices without speaking the portal's
// dispatch protocol themselves.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/portal"
)

// Portal is the slice of the portal client the handlers use. It is an
// interface so tests can stub the portal away.
type Portal interface {
	GetInvoice(ctx context.Context, invoiceUUID string) (model.Invoice, error)
	GetBasicInvoices(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error)
	GetBasicInvoicesIssuedToMe(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error)
	GetInvoiceHTML(ctx context.Context, invoiceUUID string, signed, injectPrintScript bool) (string, error)
	GetInvoiceXML(ctx context.Context, invoiceUUID string, signed bool) ([]byte, error)
	GetUserInformation(ctx context.Context) (model.UserInformation, error)
	UpdateUserInformation(ctx context.Context, patch model.Record) (model.UserInformation, error)
	GetCompanyInformation(ctx context.Context, taxOrIdentityNumber string) (model.CompanyInformation, error)
	CreateDraftInvoice(ctx context.Context, draft model.Record) (string, error)
	DeleteDraftInvoice(ctx context.Context, invoice model.BasicInvoice, reason string) (bool, error)
	SendSMSCode(ctx context.Context) (model.SMSCode, error)
	SignInvoices(ctx context.Context, code, operationID string, invoices []model.BasicInvoice) (bool, error)
}

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	portal Portal
}

// NewServer creates a new API server around a connected portal client
func NewServer(config *Config, p Portal) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		portal: p,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/invoices", s.handleListInvoices)
		v1.POST("/invoices", s.handleCreateDraft)
		v1.GET("/invoices/:uuid", s.handleGetInvoice)
		v1.DELETE("/invoices/:uuid", s.handleDeleteDraft)
		v1.GET("/invoices/:uuid/html", s.handleInvoiceHTML)
		v1.GET("/invoices/:uuid/xml", s.handleInvoiceXML)

		v1.GET("/user", s.handleGetUser)
		v1.PATCH("/user", s.handleUpdateUser)
		v1.GET("/companies/:number", s.handleGetCompany)

		v1.POST("/sign/sms-code", s.handleSendSMSCode)
		v1.POST("/sign", s.handleSign)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListInvoices(c *gin.Context) {
	filter := portal.ListFilter{
		ApprovalStatus: c.Query("status"),
		HourlyInterval: model.HourlySearchInterval(c.Query("interval")),
	}
	if start := c.Query("start"); start != "" {
		filter.StartDate = start
	}
	if end := c.Query("end"); end != "" {
		filter.EndDate = end
	}

	var invoices []model.BasicInvoice
	var err error
	if c.Query("issued-to-me") == "true" {
		invoices, err = s.portal.GetBasicInvoicesIssuedToMe(c.Request.Context(), filter)
	} else {
		invoices, err = s.portal.GetBasicInvoices(c.Request.Context(), filter)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "count": len(invoices)})
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	invoice, err := s.portal.GetInvoice(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (s *Server) handleCreateDraft(c *gin.Context) {
	var draft model.Record
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON invoice draft"})
		return
	}

	uuid, err := s.portal.CreateDraftInvoice(c.Request.Context(), draft)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uuid": uuid})
}

func (s *Server) handleDeleteDraft(c *gin.Context) {
	reason := c.Query("reason")
	if reason == "" {
		reason = "silindi"
	}

	invoice := model.BasicInvoice{"uuid": c.Param("uuid")}
	deleted, err := s.portal.DeleteDraftInvoice(c.Request.Context(), invoice, reason)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleInvoiceHTML(c *gin.Context) {
	html, err := s.portal.GetInvoiceHTML(c.Request.Context(), c.Param("uuid"), signedParam(c), false)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleInvoiceXML(c *gin.Context) {
	xml, err := s.portal.GetInvoiceXML(c.Request.Context(), c.Param("uuid"), signedParam(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml", xml)
}

func (s *Server) handleGetUser(c *gin.Context) {
	info, err := s.portal.GetUserInformation(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var patch model.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	info, err := s.portal.UpdateUserInformation(c.Request.Context(), patch)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleGetCompany(c *gin.Context) {
	company, err := s.portal.GetCompanyInformation(c.Request.Context(), c.Param("number"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) handleSendSMSCode(c *gin.Context) {
	sms, err := s.portal.SendSMSCode(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"oid": sms.OperationID, "phone_number": sms.PhoneNumber})
}

type signRequest struct {
	Code        string   `json:"code" binding:"required"`
	OperationID string   `json:"oid" binding:"required"`
	UUIDs       []string `json:"uuids" binding:"required"`
}

func (s *Server) handleSign(c *gin.Context) {
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code, oid and uuids are required"})
		return
	}

	invoices := make([]model.BasicInvoice, len(req.UUIDs))
	for i, uuid := range req.UUIDs {
		invoices[i] = model.BasicInvoice{"uuid": uuid}
	}

	signed, err := s.portal.SignInvoices(c.Request.Context(), req.Code, req.OperationID, invoices)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signed": signed})
}

func signedParam(c *gin.Context) bool {
	return c.DefaultQuery("signed", "true") == "true"
}

// renderError maps typed client errors onto HTTP status codes.
func (s *Server) renderError(c *gin.Context, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}

	var tokenErr *model.MissingTokenError
	var credsErr *model.MissingCredentialsError
	if errors.As(err, &tokenErr) || errors.As(err, &credsErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		switch apiErr.Code {
		case model.ErrInvoiceNotFound, model.ErrBasicInvoiceNotFound,
			model.ErrUserInformationNotFound, model.ErrCompanyInformationNotFound,
			model.ErrSavedPhoneNumberNotFound, model.ErrInvoiceXMLFileNotFound:
			status = http.StatusNotFound
		case model.ErrSessionTimeout, model.ErrInvalidAccessToken:
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": apiErr.Message, "code": apiErr.Code.String()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
