package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/models"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	access       service.AccessService
	contacts     service.ContactService
	verification service.VerificationService
	panicSvc     service.PanicService
	alerts       service.AlertService
	location     service.LocationService
	logger       *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
}

func NewHandler(
	access service.AccessService,
	contacts service.ContactService,
	verification service.VerificationService,
	panicSvc service.PanicService,
	alerts service.AlertService,
	location service.LocationService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		access:       access,
		contacts:     contacts,
		verification: verification,
		panicSvc:     panicSvc,
		alerts:       alerts,
		location:     location,
		logger:       logger,
		validate:     validator.New(),
		cfg:          cfg,
	}
}

// serviceError сопоставляет ошибки сервисов с HTTP-статусами
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateContact):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateContact.Error()})
	case errors.Is(err, service.ErrContactNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrContactNotFound.Error()})
	case errors.Is(err, service.ErrInvalidNumber),
		errors.Is(err, service.ErrInvalidAccessCodeChange),
		errors.Is(err, service.ErrVerificationMismatch),
		errors.Is(err, service.ErrNoVerificationSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPanicBusy),
		errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSMSUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrSMSUnavailable.Error()})
	case errors.Is(err, service.ErrSendFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrSendFailed.Error()})
	case errors.Is(err, service.ErrLocationUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrLocationUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Check calculator input against the access code
// @Description Authorizes entry into the emergency panel on a match; otherwise evaluates the input as an arithmetic expression to keep the disguise.
// @Tags Gate
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body GateCheckRequest true "Gate check request"
// @Success 200 {object} GateCheckResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /gate/check [post]
func (h *Handler) gateCheck(c *gin.Context) {
	var input GateCheckRequest
	log := h.logger.WithField("method", "gateCheck")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorized, result, err := h.access.Check(c.Request.Context(), input.Digits)
	if err != nil {
		log.WithError(err).Error("Failed to check access code")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, GateCheckResponse{Authorized: authorized, Result: result})
}

// @Summary Change the access code
// @Description Requires the current code, a matching confirmation and exactly 4 digits. All-or-nothing.
// @Tags Gate
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body ChangeCodeRequest true "Change code request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Validation error or rejected change"
// @Router /gate/code [put]
func (h *Handler) changeAccessCode(c *gin.Context) {
	var input ChangeCodeRequest
	log := h.logger.WithField("method", "changeAccessCode")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.access.ChangeCode(c.Request.Context(), input.Current, input.Next, input.Confirm); err != nil {
		log.WithError(err).Warn("Access code change rejected")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List trusted contacts
// @Tags Contacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ContactResponse
// @Router /contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "listContacts").WithError(err).Error("Failed to list contacts")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToContactResponses(contacts))
}

// @Summary Add a contact
// @Description Inserts a verified contact directly. Duplicate numbers are rejected.
// @Tags Contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param contact body ContactRequest true "Contact request"
// @Success 201 {object} ContactResponse
// @Failure 409 {object} map[string]string "Duplicate number"
// @Router /contacts [post]
func (h *Handler) createContact(c *gin.Context) {
	var input ContactRequest
	log := h.logger.WithField("method", "createContact")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.AddOrUpdate(c.Request.Context(), &models.Contact{
		Name:     input.Name,
		Number:   input.Number,
		Verified: true,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to create contact")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToContactResponse(contact))
}

// @Summary Update a contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Contact ID"
// @Param contact body ContactRequest true "Contact request"
// @Success 200 {object} ContactResponse
// @Failure 404 {object} map[string]string "Contact not found"
// @Router /contacts/{id} [put]
func (h *Handler) updateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}
	log := h.logger.WithField("method", "updateContact").WithField("id", id)

	var input ContactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.AddOrUpdate(c.Request.Context(), &models.Contact{
		ID:       id,
		Name:     input.Name,
		Number:   input.Number,
		Verified: true,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update contact")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToContactResponse(contact))
}

// @Summary Remove a contact
// @Tags Contacts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Contact ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Contact not found"
// @Router /contacts/{id} [delete]
func (h *Handler) deleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact ID"})
		return
	}
	log := h.logger.WithField("method", "deleteContact").WithField("id", id)

	if err := h.contacts.Remove(c.Request.Context(), id); err != nil {
		log.WithError(err).Warn("Failed to remove contact")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List predefined emergency numbers
// @Tags Contacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} PredefinedContactResponse
// @Router /contacts/predefined [get]
func (h *Handler) listPredefined(c *gin.Context) {
	statuses, err := h.contacts.PredefinedList(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "listPredefined").WithError(err).Error("Failed to list predefined contacts")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToPredefinedResponses(statuses))
}

// @Summary Toggle a predefined emergency number
// @Description Adds the predefined number as a verified contact if absent, removes it if present.
// @Tags Contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body TogglePredefinedRequest true "Toggle request"
// @Success 200 {object} map[string]bool
// @Router /contacts/predefined/toggle [post]
func (h *Handler) togglePredefined(c *gin.Context) {
	var input TogglePredefinedRequest
	log := h.logger.WithField("method", "togglePredefined")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.contacts.TogglePredefined(c.Request.Context(), input.Number)
	if err != nil {
		log.WithError(err).Warn("Failed to toggle predefined contact")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// @Summary Publish the trusted contact snapshot
// @Description Snapshots the deduplicated trusted numbers into the active list read by the dispatch pipeline.
// @Tags Contacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} PublishResponse
// @Router /contacts/publish [post]
func (h *Handler) publishContacts(c *gin.Context) {
	numbers, err := h.contacts.Publish(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "publishContacts").WithError(err).Error("Failed to publish contacts")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PublishResponse{Numbers: numbers, Count: len(numbers)})
}

// @Summary Request a verification code
// @Description Sends a one-time 6-digit code to the target number via the SMS gateway.
// @Tags Verification
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body VerificationRequest true "Verification request"
// @Success 202 "Accepted"
// @Failure 503 {object} map[string]string "SMS capability unavailable"
// @Router /verification/request [post]
func (h *Handler) requestVerification(c *gin.Context) {
	var input VerificationRequest
	log := h.logger.WithField("method", "requestVerification")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.verification.RequestCode(c.Request.Context(), input.Number, input.Name, input.EditingID); err != nil {
		log.WithError(err).Warn("Failed to request verification code")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Submit a verification code
// @Description A match stores the verified contact; a mismatch keeps the session alive for a retry.
// @Tags Verification
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body VerificationSubmitRequest true "Submit request"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} map[string]string "Invalid verification code"
// @Router /verification/submit [post]
func (h *Handler) submitVerification(c *gin.Context) {
	var input VerificationSubmitRequest
	log := h.logger.WithField("method", "submitVerification")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.verification.SubmitCode(c.Request.Context(), input.Code)
	if err != nil {
		log.WithError(err).Warn("Verification submit rejected")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToContactResponse(contact))
}

// @Summary Cancel the verification session
// @Tags Verification
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /verification/cancel [post]
func (h *Handler) cancelVerification(c *gin.Context) {
	h.verification.Cancel()
	c.Status(http.StatusNoContent)
}

// @Summary Start the panic hold gesture
// @Description Begins the cancellable countdown. Expiry dispatches the emergency alert and starts tracking.
// @Tags Panic
// @Security ApiKeyAuth
// @Success 202 "Accepted"
// @Failure 409 {object} map[string]string "Countdown already in progress"
// @Router /panic/press [post]
func (h *Handler) panicPress(c *gin.Context) {
	if err := h.panicSvc.PressStart(); err != nil {
		h.logger.WithField("method", "panicPress").WithError(err).Warn("Press rejected")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Release the panic hold gesture
// @Description Cancels the pending countdown with zero side effects. Safe to call in any state.
// @Tags Panic
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /panic/release [post]
func (h *Handler) panicRelease(c *gin.Context) {
	h.panicSvc.PressEnd()
	c.Status(http.StatusNoContent)
}

// @Summary Get emergency panel status
// @Tags Panic
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatusResponse
// @Router /panic/status [get]
func (h *Handler) panicStatus(c *gin.Context) {
	status, err := h.panicSvc.Status(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "panicStatus").WithError(err).Error("Failed to get panic status")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatusResponse(status))
}

// @Summary Exit to the calculator disguise
// @Description Stops tracking if active and resets the session. Always succeeds.
// @Tags Panic
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /panic/exit [post]
func (h *Handler) panicExit(c *gin.Context) {
	if err := h.panicSvc.Exit(c.Request.Context()); err != nil {
		h.logger.WithField("method", "panicExit").WithError(err).Warn("Exit cleanup reported an error")
	}
	c.Status(http.StatusNoContent)
}

// @Summary Start continuous location tracking
// @Tags Tracking
// @Security ApiKeyAuth
// @Success 202 "Accepted"
// @Failure 409 {object} map[string]string "Location permission required"
// @Router /tracking/start [post]
func (h *Handler) startTracking(c *gin.Context) {
	if err := h.panicSvc.StartTracking(c.Request.Context()); err != nil {
		h.logger.WithField("method", "startTracking").WithError(err).Warn("Failed to start tracking")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Stop continuous location tracking
// @Description Idempotent; stopping without an active subscription is a no-op.
// @Tags Tracking
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /tracking/stop [post]
func (h *Handler) stopTracking(c *gin.Context) {
	if err := h.panicSvc.StopTracking(c.Request.Context()); err != nil {
		h.logger.WithField("method", "stopTracking").WithError(err).Warn("Failed to stop tracking")
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Request location permission
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} PermissionResponse
// @Failure 503 {object} map[string]string "Location unavailable"
// @Router /location/permission [post]
func (h *Handler) requestPermission(c *gin.Context) {
	state, err := h.location.RequestPermission(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "requestPermission").WithError(err).Warn("Permission request failed")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PermissionResponse{State: string(state)})
}

// @Summary Get the last known location
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} LocationResponse
// @Failure 404 {object} map[string]string "No location data"
// @Router /location/current [get]
func (h *Handler) currentLocation(c *gin.Context) {
	fix := h.location.LastFix()
	if fix == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location data"})
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(fix))
}

// @Summary Get alert history
// @Description Returns alert log entries, most recent first.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {array} AlertResponse
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.alerts.History(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithField("method", "listAlerts").WithError(err).Error("Failed to list alerts")
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(entries))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
