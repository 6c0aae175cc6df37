package handlers

import (
	"context"
	"net/http"
	"strconv"

	traceRepo "folio/database/repository/trace"
	"folio/models"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatService processes one conversational turn.
type ChatService interface {
	HandleTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// ChatHandler exposes the dialogue orchestrator over HTTP.
type ChatHandler struct {
	svc    ChatService
	traces traceRepo.TurnTraceRepository
	logger *zap.Logger
}

func NewChatHandler(svc ChatService, traces traceRepo.TurnTraceRepository, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, traces: traces, logger: logger}
}

// HandleChat processes POST /api/chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	resp, err := h.svc.HandleTurn(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("chat turn failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", "Please try again later.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTraces processes GET /api/chat/:sessionID/traces.
func (h *ChatHandler) GetTraces(c *gin.Context) {
	if h.traces == nil {
		utils.JSONError(c, http.StatusNotFound, "Trace archive disabled", "No DATABASE_URL configured.")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	traces, err := h.traces.GetBySessionID(c.Request.Context(), c.Param("sessionID"), limit)
	if err != nil {
		h.logger.Error("failed to load traces", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load traces", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"traces": traces})
}
