package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/careerdesk/internal/domain/intent"
	"github.com/okian/careerdesk/pkg/logger"
)

// maxBodyBytes bounds an inbound webhook body.
const maxBodyBytes = 1 << 20

// Resolver turns an intent name and its parameters into a reply.
type Resolver interface {
	Resolve(ctx context.Context, name string, raw map[string]any) string
}

// webhookRequest keeps only the fields the webhook reads from a Dialogflow
// ES or CX fulfillment request.
type webhookRequest struct {
	QueryResult struct {
		Intent struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		Parameters json.RawMessage `json:"parameters"`
	} `json:"queryResult"`
	FulfillmentInfo struct {
		Tag string `json:"tag"`
	} `json:"fulfillmentInfo"`
	SessionInfo struct {
		Parameters json.RawMessage `json:"parameters"`
	} `json:"sessionInfo"`
}

func (r webhookRequest) intentName() string {
	switch {
	case r.QueryResult.Intent.DisplayName != "":
		return r.QueryResult.Intent.DisplayName
	case r.FulfillmentInfo.Tag != "":
		return r.FulfillmentInfo.Tag
	default:
		return intent.UnknownName
	}
}

// parameters returns the ES parameters, else the CX session parameters.
// Anything that is not a JSON object reads as no parameters.
func (r webhookRequest) parameters() map[string]any {
	for _, raw := range []json.RawMessage{r.QueryResult.Parameters, r.SessionInfo.Parameters} {
		if len(raw) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err == nil && m != nil {
			return m
		}
	}
	return map[string]any{}
}

func (r webhookRequest) isCX() bool {
	return r.QueryResult.Intent.DisplayName == "" && r.FulfillmentInfo.Tag != ""
}

type webhookResponse struct {
	FulfillmentText     string               `json:"fulfillmentText"`
	Source              string               `json:"source,omitempty"`
	FulfillmentResponse *fulfillmentResponse `json:"fulfillment_response,omitempty"`
}

type fulfillmentResponse struct {
	Messages []responseMessage `json:"messages"`
}

type responseMessage struct {
	Text textMessage `json:"text"`
}

type textMessage struct {
	Text []string `json:"text"`
}

func newWebhookResponse(text, source string, cx bool) webhookResponse {
	resp := webhookResponse{FulfillmentText: text, Source: source}
	if cx {
		resp.FulfillmentResponse = &fulfillmentResponse{
			Messages: []responseMessage{{Text: textMessage{Text: []string{text}}}},
		}
	}
	return resp
}

// WebhookHandler serves the fulfillment endpoint.
type WebhookHandler struct {
	resolver Resolver
	source   string
	logger   logger.Logger
}

// NewWebhookHandler creates a webhook handler answering with the given
// source tag.
func NewWebhookHandler(resolver Resolver, source string, log logger.Logger) *WebhookHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WebhookHandler{resolver: resolver, source: source, logger: log}
}

// HandleWebhook handles POST requests from the conversational agent. Any
// body, even one that is not JSON, gets a 200 reply.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const op = "api.webhook"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	ctx := r.Context()
	var req webhookRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil && len(body) > 0 {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		h.logger.Warn(ctx, "unreadable webhook body, treating as empty",
			logger.Error(WrapKind(op, ErrBadRequest, err)))
		req = webhookRequest{}
	}

	name := req.intentName()
	reply := h.resolver.Resolve(ctx, name, req.parameters())
	writeJSON(w, http.StatusOK, newWebhookResponse(reply, h.source, req.isCX()))
}
