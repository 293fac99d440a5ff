package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/api/metrics"
	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

const scanTemplate = "scan.html"

// ScanHandler serves the kiosk page where identifiers are scanned.
type ScanHandler struct {
	service ports.ScanService
	log     zerolog.Logger
}

func NewScanHandler(service ports.ScanService, log zerolog.Logger) *ScanHandler {
	return &ScanHandler{service: service, log: log}
}

// scanRequest accepts every field name the kiosk has used; identifier wins.
type scanRequest struct {
	Identifier    string `json:"identifier" form:"identifier"`
	OfficerID     string `json:"officer_id" form:"officer_id"`
	RFIDTag       string `json:"rfid_tag" form:"rfid_tag"`
	StudentNumber string `json:"student_number" form:"student_number"`
}

func (r scanRequest) value() string {
	for _, v := range []string{r.Identifier, r.OfficerID, r.RFIDTag, r.StudentNumber} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type scanResponse struct {
	Message  string                  `json:"message"`
	Kind     string                  `json:"kind,omitempty"`
	Identity *domain.Identity        `json:"identity,omitempty"`
	LastLog  *domain.AttendanceEvent `json:"last_log,omitempty"`
}

type scanPage struct {
	Message string
	Error   bool
	LastLog *domain.AttendanceEvent
}

// Page handles GET /rfid_login/.
//
// @Summary      Scan form
// @Tags         scan
// @Produce      html,json
// @Success      200  {object}  scanResponse
// @Router       /rfid_login/ [get]
func (h *ScanHandler) Page(c echo.Context) error {
	return respond(c, http.StatusOK, scanTemplate, scanPage{}, scanResponse{})
}

// Scan handles POST /rfid_login/ and toggles time-in or time-out.
//
// @Summary      Record a scan
// @Tags         scan
// @Accept       json,x-www-form-urlencoded
// @Produce      html,json
// @Param        body  body      scanRequest  true  "Scanned identifier"
// @Success      200   {object}  scanResponse
// @Failure      404   {object}  scanResponse
// @Failure      409   {object}  scanResponse
// @Failure      422   {object}  scanResponse
// @Failure      500   {object}  errorResponse
// @Router       /rfid_login/ [post]
func (h *ScanHandler) Scan(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Scan(c.Request().Context(), req.value())
	if err != nil {
		code, reason, msg := scanFailure(err)
		metrics.ScanErrorsTotal.WithLabelValues(reason).Inc()
		if code == http.StatusInternalServerError {
			return err
		}
		h.log.Debug().Err(err).Str("reason", reason).Msg("scan rejected")
		return respond(c, code, scanTemplate,
			scanPage{Message: msg, Error: true},
			scanResponse{Message: msg})
	}

	metrics.ScansTotal.WithLabelValues(string(result.Kind)).Inc()
	identity := result.Identity
	return respond(c, http.StatusOK, scanTemplate,
		scanPage{Message: result.Message, LastLog: result.LastLog},
		scanResponse{
			Message:  result.Message,
			Kind:     string(result.Kind),
			Identity: &identity,
			LastLog:  result.LastLog,
		})
}

// scanFailure maps a scan error to status, metric reason and user message.
func scanFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrMalformedIdentifier):
		msg := strings.TrimPrefix(err.Error(), domain.ErrMalformedIdentifier.Error()+": ")
		return http.StatusUnprocessableEntity, "malformed", "Invalid identifier: " + msg
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, "unknown_identifier", "Invalid identifier"
	case errors.Is(err, domain.ErrScanInProgress):
		return http.StatusConflict, "in_progress", "Scan already in progress, please try again"
	case errors.Is(err, domain.ErrScanConflict):
		return http.StatusConflict, "conflict", "Scan already in progress, please try again"
	}
	return http.StatusInternalServerError, "internal", ""
}
