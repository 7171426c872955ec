package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dr-failover-lambda/internal/logging"
	"dr-failover-lambda/pkg/lambda"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxEventSize mirrors the synchronous Lambda invocation payload limit
const maxEventSize = 6 << 20

// DRHandler acknowledges disaster recovery invocations
type DRHandler struct {
	logger *logrus.Logger
	body   string
}

// NewDRHandler creates a new DR handler
func NewDRHandler(logger *logrus.Logger) (*DRHandler, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	body, err := json.Marshal(lambda.AckMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to encode acknowledgment body: %w", err)
	}

	return &DRHandler{
		logger: logger,
		body:   string(body),
	}, nil
}

// Handle is the Lambda entry point. The event and context never change the result.
func (h *DRHandler) Handle(ctx context.Context, event lambda.Event) (lambda.Response, error) {
	inv := lambda.InvocationFromContext(ctx)

	h.logger.WithFields(logrus.Fields{
		"invocation_id": inv.ID,
		"function_arn":  inv.FunctionARN,
		"event_bytes":   len(event),
	}).Info("DR Lambda executed")

	// TODO: update the Route53 failover record set once the hosted zone and health check are provisioned.
	return lambda.Response{
		StatusCode: lambda.AckStatusCode,
		Body:       h.body,
	}, nil
}

// Invoke handles POST /invoke on the local harness, using the request body as the event
func (h *DRHandler) Invoke(c *gin.Context) {
	var event lambda.Event
	if c.Request.Body != nil {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventSize))
		if err != nil {
			h.logger.WithError(err).Warn("Failed to read event body, invoking with empty event")
		} else {
			event = raw
		}
	}

	resp, err := h.Handle(c.Request.Context(), event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
