package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/middleware"
	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/booking"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// SlotHandler exposes the booking engine over HTTP.
type SlotHandler struct {
	Booking booking.BookingService
}

// NewSlotHandler constructs a SlotHandler.
func NewSlotHandler(svc booking.BookingService) *SlotHandler {
	return &SlotHandler{Booking: svc}
}

// callerID pulls the authenticated identity set by the JWT middleware.
func callerID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.ContextCallerID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Caller not authenticated"})
		return "", false
	}
	return id, true
}

// CreateSlotHandler handles POST /api/slots.
func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	trainerID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Warn("Invalid create slot request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Booking.CreateSlot(c.Request.Context(), trainerID, req.StartTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// CreateRecurringSlotsHandler handles POST /api/slots/recurring.
func (h *SlotHandler) CreateRecurringSlotsHandler(c *gin.Context) {
	trainerID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateRecurringSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Warn("Invalid recurring slots request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slots, err := h.Booking.CreateRecurringSlots(c.Request.Context(), trainerID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots, "count": len(slots)})
}

// GetTrainerSlotsHandler handles GET /api/slots.
func (h *SlotHandler) GetTrainerSlotsHandler(c *gin.Context) {
	trainerID, ok := callerID(c)
	if !ok {
		return
	}

	slots, err := h.Booking.GetTrainerSlots(c.Request.Context(), trainerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// DeleteSlotHandler handles DELETE /api/slots/:id.
func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	trainerID, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("id")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	if err := h.Booking.DeleteSlot(c.Request.Context(), trainerID, slotID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// GetAvailableSlotsHandler handles GET /api/slots/available/:trainerId.
func (h *SlotHandler) GetAvailableSlotsHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	if trainerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing trainer ID in path"})
		return
	}

	slots, err := h.Booking.GetAvailableSlots(c.Request.Context(), trainerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// BookSlotHandler handles POST /api/slots/:id/book.
func (h *SlotHandler) BookSlotHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("id")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	session, err := h.Booking.BookSlot(c.Request.Context(), userID, slotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot booked", "session": session})
}

// GetUserBookingsHandler handles GET /api/bookings.
func (h *SlotHandler) GetUserBookingsHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	slots, err := h.Booking.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": slots})
}
