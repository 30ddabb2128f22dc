package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ajmal7799/FitStack-sub001/handlers"
	"github.com/ajmal7799/FitStack-sub001/middleware"
)

// Handlers bundles the handler set the routes need.
type Handlers struct {
	Slot         *handlers.SlotHandler
	Session      *handlers.SessionHandler
	Feedback     *handlers.FeedbackHandler
	Notification *handlers.NotificationHandler
}

// RegisterRoutes wires up the full HTTP surface.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	registerSlotRoutes(r, h)
	registerSessionRoutes(r, h)
	registerFeedbackRoutes(r, h)
	registerNotificationRoutes(r, h)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm FitStack"})
	})
}

// registerSlotRoutes covers slot management (trainer side) and browsing plus
// booking (trainee side).
func registerSlotRoutes(r *gin.Engine, h *Handlers) {
	trainer := r.Group("/api/slots")
	trainer.Use(middleware.JWTAuth("trainer"))
	{
		trainer.POST("", h.Slot.CreateSlotHandler)
		trainer.POST("/recurring", h.Slot.CreateRecurringSlotsHandler)
		trainer.GET("", h.Slot.GetTrainerSlotsHandler)
		trainer.DELETE("/:id", h.Slot.DeleteSlotHandler)
	}

	trainee := r.Group("/api")
	trainee.Use(middleware.JWTAuth("user"))
	{
		trainee.GET("/slots/available/:trainerId", h.Slot.GetAvailableSlotsHandler)
		trainee.POST("/slots/:id/book", h.Slot.BookSlotHandler)
		trainee.GET("/bookings", h.Slot.GetUserBookingsHandler)
	}
}

// registerSessionRoutes covers the session lifecycle; either participant may
// call these, identity is resolved against the session itself.
func registerSessionRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/sessions")
	api.Use(middleware.JWTAuth(""))
	{
		api.GET("", h.Session.ListSessionsHandler)
		api.GET("/:slotId", h.Session.GetSessionHandler)
		api.POST("/:slotId/join", h.Session.JoinSessionHandler)
		api.POST("/:slotId/end", h.Session.EndSessionHandler)
		api.POST("/:slotId/cancel", h.Session.CancelSessionHandler)
	}
}

func registerFeedbackRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/api/feedback", middleware.JWTAuth("user"), h.Feedback.SubmitFeedbackHandler)
	r.GET("/api/trainers/:id/feedback", h.Feedback.GetTrainerFeedbackHandler)
}

func registerNotificationRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/api/notifications", middleware.JWTAuth(""), h.Notification.ListNotificationsHandler)
}
