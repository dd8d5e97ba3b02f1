package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"expenis/internal/config"
	apperrors "expenis/internal/errors"
	"expenis/internal/middleware"
	"expenis/internal/models"
	"expenis/internal/services"
)

// SessionHandler handles the QR pairing flow between the web app and the bot.
type SessionHandler struct {
	sessionService services.SessionServicer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService services.SessionServicer) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SessionResponse represents a pairing session in the response
type SessionResponse struct {
	SessionID string `json:"session_id"`
	QRCode    string `json:"qr_code,omitempty"`
	Status    string `json:"status,omitempty"`
}

// CreateSession creates a pending pairing session and returns its id together
// with a QR code encoding the bot deep link, as a base64 PNG data URL.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sessionID, err := h.sessionService.CreateSession()
	if err != nil {
		respondWithError(c, err)
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", config.Get().BotName, sessionID)
	png, err := qrcode.Encode(link, qrcode.Low, 256)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		SessionID: sessionID,
		QRCode:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

// Auth reports the session status. Once the session is confirmed in the bot it
// issues the auth cookie so the web app can poll this endpoint until paired.
func (h *SessionHandler) Auth(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if session.Status == models.SessionStatusConfirmed && session.UserID != nil {
		token, err := middleware.GenerateAccessToken(*session.UserID)
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}

		cfg := config.Get()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(cfg.CookieName, token, int(cfg.TokenTTL.Seconds()), "/", cfg.CookieDomain, !cfg.Dev, true)
	}

	c.JSON(http.StatusOK, SessionResponse{
		SessionID: session.ID,
		Status:    string(session.Status),
	})
}
