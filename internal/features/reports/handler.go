package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/pkg/notify"
	"github.com/tribunal-app/tribunal/internal/pkg/response"
	errs "github.com/tribunal-app/tribunal/pkg/errors"
)

// BanSyncer propagates an approved report to the external ban list. The
// call must be fire-and-forget: it is invoked after the state transition
// and its outcome never reaches the client.
type BanSyncer interface {
	Sync(report Report)
}

type Handler struct {
	store       *Store
	notifier    *notify.Dispatcher
	bans        BanSyncer
	profileBase string
}

func NewHandler(store *Store, notifier *notify.Dispatcher, bans BanSyncer, profileBase string) *Handler {
	return &Handler{
		store:       store,
		notifier:    notifier,
		bans:        bans,
		profileBase: profileBase,
	}
}

// Submit godoc
// @Summary File an abuse report
// @Description Submit a report against a user. Rate limited per source address.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body SubmitReportRequest true "Report details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	if err := ValidateSubmit(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	report := h.store.Add(*req.Target, *req.Reporter, req.Context, req.Reason, c.ClientIP())

	// Detached delivery: the 201 below never waits on the webhook.
	h.notifier.Send(notify.ChannelSubmissions, h.submitMessage(report, h.store.PendingCount()))

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Report submitted",
		"report_id": report.ID,
	})
}

// List godoc
// @Summary List reports
// @Description Returns the pending and actioned collections in order.
// @Tags reports
// @Produce json
// @Success 200 {object} map[string][]Report
// @Router /reports [get]
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pending":  h.store.Pending(),
		"actioned": h.store.Actioned(),
	})
}

// Action godoc
// @Summary Action a pending report
// @Description Approve or deny a pending report. Approval schedules ban-list sync.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body ActionReportRequest true "Decision"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/action [post]
func (h *Handler) Action(c *gin.Context) {
	var req ActionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	if err := ValidateAction(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_ACTION")
		return
	}

	report, err := h.store.Action(req.ReportID, Status(req.Action))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			response.NotFound(c, "Report not found", "REPORT_NOT_FOUND")
			return
		}
		response.BadRequest(c, err.Error(), "INVALID_ACTION")
		return
	}

	h.notifier.Send(notify.ChannelActions, h.actionMessage(report))

	if report.Status == StatusApproved && h.bans != nil {
		h.bans.Sync(report)
	}

	response.OK(c, fmt.Sprintf("Report %s", report.Status))
}

func (h *Handler) profileURL(userID int64) string {
	return fmt.Sprintf("%s/%d/profile", h.profileBase, userID)
}

func (h *Handler) submitMessage(report Report, pendingCount int) string {
	return fmt.Sprintf("New report filed against user %d (%s). %d report(s) pending review.",
		report.Target, h.profileURL(report.Target), pendingCount)
}

// actionMessage wording differs per decision so the actions channel can
// tell an approval from a denial at a glance.
func (h *Handler) actionMessage(report Report) string {
	var headline string
	if report.Status == StatusApproved {
		headline = fmt.Sprintf("Report %s approved. User %d is being added to the ban list.", report.ID, report.Target)
	} else {
		headline = fmt.Sprintf("Report %s denied. No action taken against user %d.", report.ID, report.Target)
	}

	return fmt.Sprintf("%s\nTarget: %s\nReporter: %s\nReport: %q (%s)",
		headline,
		h.profileURL(report.Target),
		h.profileURL(report.Reporter),
		report.Context, report.Reason)
}
