package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	clientRepo "salonassist/database/repository/client"
	sessionRepo "salonassist/database/repository/session"
	"salonassist/models"
	"salonassist/services/session"
	"salonassist/utils"
)

// SessionHandler exposes session context resolution to the conversational
// layer.
type SessionHandler struct {
	Manager session.Manager
}

func NewSessionHandler(manager session.Manager) *SessionHandler {
	return &SessionHandler{Manager: manager}
}

// ResolveSessionHandler returns the client's current-day conversation
// context, creating client and context on first contact.
func (h *SessionHandler) ResolveSessionHandler(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	phone, err := models.NormalizePhone(input.Phone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionCtx, err := h.Manager.Resolve(c.Request.Context(), phone, time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sessionCtx})
}

// AppendSummaryHandler persists a note onto the session's rolling digest.
func (h *SessionHandler) AppendSummaryHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Manager.AppendSummary(c.Request.Context(), sessionID, input.Note); err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", sessionID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to append summary", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID})
}

// UpdateClientHandler records profile details learned in conversation.
func (h *SessionHandler) UpdateClientHandler(c *gin.Context) {
	phone, err := models.NormalizePhone(c.Param("phone"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	var input struct {
		Name        string `json:"name"`
		Preferences string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Manager.UpdateClientProfile(c.Request.Context(), phone, input.Name, input.Preferences); err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "client not found", phone)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update client", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"phone": phone})
}
