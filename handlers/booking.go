package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salonassist/models"
	"salonassist/services/scheduling"
	"salonassist/utils"
)

// BookingHandler exposes the scheduling engine to the conversational and
// transport layers.
type BookingHandler struct {
	Engine scheduling.Engine
}

func NewBookingHandler(engine scheduling.Engine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// CheckAvailabilityHandler returns open slots for a service on a date.
// An empty list is a normal response, not an error.
func (h *BookingHandler) CheckAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	serviceID := c.Query("serviceId")
	if date == "" || serviceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date and serviceId are required")
		return
	}
	maxResults := 0
	if raw := c.Query("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "max must be an integer")
			return
		}
		maxResults = n
	}

	slots, err := h.Engine.FindAvailable(c.Request.Context(), date, serviceID, maxResults)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "serviceId": serviceID, "slots": slots})
}

// BookAppointmentHandler commits a booking at the requested start time.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	var input struct {
		Phone     string `json:"phone" binding:"required"`
		ServiceID string `json:"serviceId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Start     string `json:"start" binding:"required"` // "HH:MM"
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
	start, err := models.ParseClock(input.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Engine.Book(c.Request.Context(), phone, input.ServiceID, input.Date, start)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler frees an appointment's interval.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	id := c.Param("appointmentID")
	if err := h.Engine.Cancel(c.Request.Context(), id); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": id})
}

// ListServicesHandler returns the service catalog.
func (h *BookingHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Engine.ListServices(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListUpcomingHandler returns a client's upcoming appointments.
func (h *BookingHandler) ListUpcomingHandler(c *gin.Context) {
	phone, err := models.NormalizePhone(c.Param("phone"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	fromDate := c.Query("from")
	if fromDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "from date is required")
		return
	}
	appts, err := h.Engine.ListUpcoming(c.Request.Context(), phone, fromDate)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// respondBookingError maps the engine's typed errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrUnknownClient),
		errors.Is(err, scheduling.ErrUnknownService),
		errors.Is(err, scheduling.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, scheduling.ErrInvalidSlot):
		utils.JSONError(c, http.StatusBadRequest, "invalid slot", err.Error())
	case errors.Is(err, scheduling.ErrSlotConflict):
		utils.JSONError(c, http.StatusConflict, "slot conflict", err.Error())
	case errors.Is(err, scheduling.ErrAlreadyCancelled):
		utils.JSONError(c, http.StatusConflict, "already cancelled", err.Error())
	case errors.Is(err, scheduling.ErrStorageTimeout):
		utils.JSONError(c, http.StatusGatewayTimeout, "storage timeout, please retry", err.Error())
	case errors.Is(err, scheduling.ErrStorageUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "storage unavailable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
