package handlers

import (
	"errors"
	"net/http"

	"motoschool/clients/schoolapi"
	"motoschool/config"
	"motoschool/models"
	"motoschool/services/checkout"
	"motoschool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the JSON endpoints of the checkout funnel.
type BookingHandler struct {
	Checkout checkout.Service
	Logger   *zap.Logger
}

func NewBookingHandler(svc checkout.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Checkout: svc, Logger: logger}
}

// sessionView is the client's picture of the funnel: the draft plus which
// steps are currently enabled.
type sessionView struct {
	SessionID   string              `json:"sessionId"`
	Draft       models.BookingDraft `json:"draft"`
	CurrentStep string              `json:"currentStep"`
	ReviewReady bool                `json:"reviewReady"`
	Steps       map[string]bool     `json:"steps"`
}

func newSessionView(sess *models.CheckoutSession) sessionView {
	steps := make(map[string]bool)
	for _, step := range []models.Step{
		models.StepCourse, models.StepLocation, models.StepDateAttendees,
		models.StepAccount, models.StepPersonalDetails, models.StepReview,
	} {
		steps[step.String()] = sess.Draft.StepEnabled(step)
	}
	// The password never leaves the server.
	view := sessionView{
		SessionID:   sess.SessionID,
		Draft:       sess.Draft,
		CurrentStep: sess.Draft.CurrentStep().String(),
		ReviewReady: sess.Draft.ReviewReady(),
		Steps:       steps,
	}
	view.Draft.Password = ""
	return view
}

// StartSession creates a checkout session and hands the client a signed
// session cookie.
func (h *BookingHandler) StartSession(c *gin.Context) {
	sess, err := h.Checkout.Start(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not start checkout", err.Error())
		return
	}

	ttl := config.SessionTTL()
	token, err := utils.SignSessionID(sess.SessionID, ttl)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not start checkout", err.Error())
		return
	}
	c.SetCookie(config.AppConfig.SessionCookieName, token, int(ttl.Seconds()), "/", "", config.IsProduction(), true)

	c.JSON(http.StatusOK, newSessionView(sess))
}

// sessionID resolves the caller's session id from the signed cookie.
func (h *BookingHandler) sessionID(c *gin.Context) (string, bool) {
	token, err := c.Cookie(config.AppConfig.SessionCookieName)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "No active checkout session", "start a session first")
		return "", false
	}
	id, err := utils.VerifySessionCookie(token)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid checkout session", err.Error())
		return "", false
	}
	return id, true
}

// GetSession returns the current funnel state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.Get(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// SelectCourse records the course choice and voids downstream selections.
func (h *BookingHandler) SelectCourse(c *gin.Context) {
	var input struct {
		CourseID string `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.SelectCourse(c.Request.Context(), id, input.CourseID)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// SelectLocation records the location choice, then refreshes availability
// for the new (course, location) pair. A failed refresh degrades to an
// empty calendar with a retry hint; it never fails the selection.
func (h *BookingHandler) SelectLocation(c *gin.Context) {
	var input struct {
		LocationID string `json:"location_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sess, err := h.Checkout.SelectLocation(ctx, id, input.LocationID)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	availabilityError := ""
	if _, err := h.Checkout.RefreshAvailability(ctx, id); err != nil {
		h.Logger.Warn("availability refresh failed", zap.String("sessionID", id), zap.Error(err))
		availabilityError = "Availability could not be loaded. Please try again."
	}

	view := newSessionView(sess)
	c.JSON(http.StatusOK, gin.H{
		"session":           view,
		"availabilityError": availabilityError,
	})
}

// Availability refreshes and returns the 6-week calendar grid. Upstream
// failure degrades to an empty grid plus a retry hint.
func (h *BookingHandler) Availability(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	availabilityError := ""
	if _, err := h.Checkout.RefreshAvailability(ctx, id); err != nil {
		if errors.Is(err, checkout.ErrSessionNotFound) || errors.Is(err, checkout.ErrStepLocked) {
			h.sessionError(c, err)
			return
		}
		h.Logger.Warn("availability refresh failed", zap.String("sessionID", id), zap.Error(err))
		availabilityError = "Availability could not be loaded. Please try again."
	}

	weeks, err := h.Checkout.Grid(ctx, id)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"weeks":             weeks,
		"availabilityError": availabilityError,
	})
}

// SelectDate records the chosen calendar cell. Unavailable cells are
// rejected outright.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.SelectDate(c.Request.Context(), id, input.Date)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// SetAttendees records the attendee count.
func (h *BookingHandler) SetAttendees(c *gin.Context) {
	var input struct {
		Count int `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.SetAttendees(c.Request.Context(), id, input.Count)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// SetDetails records the lead booker's personal details and attendee list.
func (h *BookingHandler) SetDetails(c *gin.Context) {
	var input struct {
		UserDetails models.UserDetails `json:"user_details"`
		Attendees   []models.Attendee  `json:"attendees"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.SetDetails(c.Request.Context(), id, input.UserDetails, input.Attendees)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// SetAccount records the optional account-creation choice.
func (h *BookingHandler) SetAccount(c *gin.Context) {
	var input struct {
		CreateAccount bool   `json:"create_account"`
		Password      string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	sess, err := h.Checkout.SetAccount(c.Request.Context(), id, input.CreateAccount, input.Password)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

// Pricing returns the running totals for the session.
func (h *BookingHandler) Pricing(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	totals, err := h.Checkout.Pricing(c.Request.Context(), id)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Submit finalizes the booking. Validation failures enumerate every missing
// field; an upstream failure keeps the draft so the user can retry.
func (h *BookingHandler) Submit(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	result, err := h.Checkout.Submit(c.Request.Context(), id)
	if err != nil {
		if verr := checkout.IsValidationError(err); verr != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Please complete the highlighted fields: " + verr.Error(),
				"fields": verr.Fields(),
			})
			return
		}
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.sessionError(c, err)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			utils.JSONError(c, http.StatusConflict, "Your booking is already being submitted", "please wait for it to finish")
		default:
			h.Logger.Error("booking submission failed", zap.String("sessionID", id), zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "We could not complete your booking", "your details are saved, please try again")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// CancelSession abandons the checkout and discards the draft.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.Checkout.Cancel(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not cancel checkout", err.Error())
		return
	}
	c.SetCookie(config.AppConfig.SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// sessionError maps checkout-service errors to responses.
func (h *BookingHandler) sessionError(c *gin.Context, err error) {
	if verr := checkout.IsValidationError(err); verr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  verr.Error(),
			"fields": verr.Fields(),
		})
		return
	}
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Checkout session not found or expired", "start a new checkout")
	case errors.Is(err, checkout.ErrStepLocked):
		utils.JSONError(c, http.StatusConflict, "Previous step is not complete", err.Error())
	case errors.Is(err, checkout.ErrDateUnavailable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "That date is not available", "pick an available date from the calendar")
	case errors.Is(err, checkout.ErrUnknownCourse), errors.Is(err, checkout.ErrUnknownLocation):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Selection is not available", err.Error())
	default:
		if schoolapi.IsNotFound(err) {
			utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			return
		}
		h.Logger.Error("checkout operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Something went wrong", "please try again")
	}
}
