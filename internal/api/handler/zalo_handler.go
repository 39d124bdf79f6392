package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-saas/internal/api/metrics"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/infrastructure/zalo"
)

type ZaloHandler struct {
	service   ports.ZaloService
	appSecret string
}

func NewZaloHandler(service ports.ZaloService, appSecret string) *ZaloHandler {
	return &ZaloHandler{service: service, appSecret: appSecret}
}

// webhookPayload mirrors the wire format of OA event deliveries. Timestamp
// arrives as a decimal string of milliseconds.
type webhookPayload struct {
	AppID     string `json:"app_id"`
	EventName string `json:"event_name"`
	Timestamp string `json:"timestamp"`
	Sender    struct {
		ID string `json:"id"`
	} `json:"sender"`
	Follower struct {
		ID string `json:"id"`
	} `json:"follower"`
	Message struct {
		MsgID string `json:"msg_id"`
		Text  string `json:"text"`
	} `json:"message"`
}

type sendZaloMessageRequest struct {
	ZaloUserID string `json:"zalo_user_id" validate:"required"`
	Text       string `json:"text"         validate:"required"`
}

// Webhook receives OA event deliveries. The raw body is verified against the
// X-ZEvent-Signature header before parsing; a bad MAC is rejected without
// touching the payload.
//
// @Summary      Receive chat platform events
// @Tags         zalo
// @Accept       json
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /zalo/webhook [post]
func (h *ZaloHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	mac := c.Request().Header.Get("X-ZEvent-Signature")
	if !zalo.VerifySignature(body, mac, h.appSecret) {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "bad_signature").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if payload.EventName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing event_name")
	}

	event := ports.WebhookEvent{
		AppID:     payload.AppID,
		EventName: payload.EventName,
		SenderID:  payload.Sender.ID,
		Text:      payload.Message.Text,
	}
	if event.SenderID == "" {
		event.SenderID = payload.Follower.ID
	}
	if ms, err := strconv.ParseInt(payload.Timestamp, 10, 64); err == nil {
		event.Timestamp = time.UnixMilli(ms)
	} else {
		event.Timestamp = time.Now()
	}
	// Follow and unfollow deliveries carry no msg_id, so those events key
	// on the sender and timestamp instead.
	event.EventID = payload.Message.MsgID
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("%s:%s:%s", payload.EventName, event.SenderID, payload.Timestamp)
	}

	if err := h.service.HandleWebhook(c.Request().Context(), event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(payload.EventName, "error").Inc()
		return err
	}
	metrics.WebhookEventsTotal.WithLabelValues(payload.EventName, "ok").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "ok"})
}

// ListFollowers returns the OA followers recorded for the acting user's tenant.
//
// @Summary      List chat followers
// @Tags         zalo
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listResponse[domain.Follower]
// @Failure      401    {object}  errorResponse
// @Router       /zalo/followers [get]
func (h *ZaloHandler) ListFollowers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page := queryPage(c)
	followers, total, err := h.service.ListFollowers(c.Request().Context(), actor, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(followers, total, page))
}

// SendMessage delivers a free-form text message to a follower.
//
// @Summary      Send a chat message
// @Tags         zalo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendZaloMessageRequest  true  "Recipient and text"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /zalo/messages [post]
func (h *ZaloHandler) SendMessage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendZaloMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SendMessage(c.Request().Context(), actor, req.ZaloUserID, req.Text); err != nil {
		metrics.ZaloSendsTotal.WithLabelValues("text", "error").Inc()
		return err
	}
	metrics.ZaloSendsTotal.WithLabelValues("text", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "sent"})
}
