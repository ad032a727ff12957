package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgInvalidQuery = "Invalid user query"
	msgDispatchFail = "Could not fetch response, try again later"
	msgSuccess      = "Success"
)

// AgentRequest is the body of POST /agent_response.
type AgentRequest struct {
	DisplayName     string `json:"display_name"`
	Age             int    `json:"age"`
	UserInput       string `json:"user_input"`
	AuthToken       string `json:"auth_token,omitempty"`
	ResumptionToken string `json:"resumption_token,omitempty"`
	UseStructuring  bool   `json:"use_structuring"`
}

type AgentResponse struct {
	contractx.ResponseEnvelope
	Message string `json:"message"`
}

// AgentResponse runs one conversational turn.
// POST /agent_response
func (h *Handler) AgentResponse(c echo.Context) error {
	logger := h.logger.With().Str("request_id", requestID(c)).Logger()
	logger.Info().Msg("query on agent response")

	var req AgentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("invalid request body")
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msgInvalidBody})
	}

	if strings.TrimSpace(req.UserInput) == "" {
		logger.Error().Str("display_name", req.DisplayName).Msg("invalid user query")
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msgInvalidQuery})
	}

	session := contractx.SessionContext{
		DisplayName:     req.DisplayName,
		Age:             req.Age,
		ResumptionToken: strings.TrimSpace(req.ResumptionToken),
		AuthToken:       req.AuthToken,
	}

	// Client disconnects must not abort a turn that may already have touched the cart.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), h.config.AgentTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx)

	env, err := h.dispatcher.Respond(ctx, session, req.UserInput, req.UseStructuring)
	if err != nil {
		logger.Error().Err(err).Object("session", session).Msg("error fetching agent response")
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": msgDispatchFail})
	}

	logger.Info().Msg("successfully fetched agent response")
	return c.JSON(http.StatusOK, AgentResponse{ResponseEnvelope: env, Message: msgSuccess})
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
