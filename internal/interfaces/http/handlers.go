package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/credihub/proposal-flow/internal/application/service"
	"github.com/credihub/proposal-flow/internal/bank"
	"github.com/credihub/proposal-flow/internal/domain/entity"
	"github.com/credihub/proposal-flow/internal/repository"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	flowService service.FlowService
	registry    *bank.Registry
	logger      Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(flowService service.FlowService, registry *bank.Registry, logger Logger) *Handlers {
	return &Handlers{
		flowService: flowService,
		registry:    registry,
		logger:      logger,
	}
}

// ErrorResponse represents an error payload
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StartFlowRequest is the body of the start endpoint
type StartFlowRequest struct {
	BankCode string `json:"bankCode" binding:"required"`
}

// FlowSummaryResponse reflects the flow progress of one proposal. The raw
// validationResult and bankResponse are only present on start responses.
type FlowSummaryResponse struct {
	Success            bool                     `json:"success"`
	ProposalID         int64                    `json:"proposalId"`
	ClientName         string                   `json:"clientName"`
	ProductName        string                   `json:"productName"`
	RequestedAmount    float64                  `json:"requestedAmount"`
	CurrentStatus      string                   `json:"currentStatus"`
	FlowStep           string                   `json:"flowStep"`
	ValidationScore    int                      `json:"validationScore"`
	ValidationEligible bool                     `json:"validationEligible"`
	Errors             []string                 `json:"errors"`
	Warnings           []string                 `json:"warnings"`
	Recommendations    []string                 `json:"recommendations"`
	Timestamp          string                   `json:"timestamp"`
	ValidationResult   *entity.ValidationResult `json:"validationResult,omitempty"`
	BankResponse       *entity.BankResponse     `json:"bankResponse,omitempty"`
}

// CancelFlowResponse acknowledges a cancellation
type CancelFlowResponse struct {
	Message string `json:"message"`
}

// SupportedBanksResponse lists the known bank codes
type SupportedBanksResponse struct {
	Banks []string `json:"banks"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "proposal-flow",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// StartFlow handles POST /authorization-flow/start/:proposalId
func (h *Handlers) StartFlow(c *gin.Context) {
	proposalID, ok := h.proposalID(c)
	if !ok {
		return
	}

	var req StartFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid start request body", "proposal_id", proposalID, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bankCode is required"})
		return
	}

	summary, err := h.flowService.Start(c.Request.Context(), proposalID, req.BankCode)
	if err != nil {
		h.respondFlowError(c, proposalID, "start flow", err)
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetSummary handles GET /authorization-flow/:proposalId/summary
func (h *Handlers) GetSummary(c *gin.Context) {
	proposalID, ok := h.proposalID(c)
	if !ok {
		return
	}

	summary, err := h.flowService.GetSummary(c.Request.Context(), proposalID)
	if err != nil {
		h.respondFlowError(c, proposalID, "get summary", err)
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// CancelFlow handles DELETE /authorization-flow/:proposalId/cancel
func (h *Handlers) CancelFlow(c *gin.Context) {
	proposalID, ok := h.proposalID(c)
	if !ok {
		return
	}

	message, err := h.flowService.Cancel(c.Request.Context(), proposalID)
	if err != nil {
		h.respondFlowError(c, proposalID, "cancel flow", err)
		return
	}

	c.JSON(http.StatusOK, CancelFlowResponse{Message: message})
}

// SupportedBanks handles GET /bank-integration/supported-banks
func (h *Handlers) SupportedBanks(c *gin.Context) {
	c.JSON(http.StatusOK, SupportedBanksResponse{Banks: h.registry.SupportedBanks()})
}

// BankProposalStatus handles GET /bank-integration/status/:bankCode/:externalId
func (h *Handlers) BankProposalStatus(c *gin.Context) {
	bankCode := c.Param("bankCode")
	externalID := c.Param("externalId")

	adapter := h.registry.Resolve(bankCode)

	status, err := adapter.GetProposalStatus(c.Request.Context(), externalID)
	if err != nil {
		h.logger.Error("Failed to fetch bank proposal status",
			"bank_code", bankCode, "external_id", externalID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch proposal status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// proposalID parses the proposal id path parameter, answering 400 on failure.
func (h *Handlers) proposalID(c *gin.Context) (int64, bool) {
	idStr := c.Param("proposalId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid proposal ID", "id", idStr, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid proposal ID"})
		return 0, false
	}
	return id, true
}

// respondFlowError maps a flow service error onto an HTTP status.
func (h *Handlers) respondFlowError(c *gin.Context, proposalID int64, operation string, err error) {
	if errors.Is(err, repository.ErrProposalNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "proposal not found"})
		return
	}

	h.logger.Error("Flow operation failed", "operation", operation, "proposal_id", proposalID, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: operation + " failed"})
}

// toSummaryResponse converts the service summary to the API response.
func toSummaryResponse(summary *service.Summary) FlowSummaryResponse {
	return FlowSummaryResponse{
		Success:            true,
		ProposalID:         summary.ProposalID,
		ClientName:         summary.ClientName,
		ProductName:        summary.ProductName,
		RequestedAmount:    summary.RequestedAmount,
		CurrentStatus:      string(summary.CurrentStatus),
		FlowStep:           summary.FlowStep.String(),
		ValidationScore:    summary.ValidationScore,
		ValidationEligible: summary.ValidationEligible,
		Errors:             summary.Errors,
		Warnings:           summary.Warnings,
		Recommendations:    summary.Recommendations,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		ValidationResult:   summary.ValidationResult,
		BankResponse:       summary.BankResponse,
	}
}
