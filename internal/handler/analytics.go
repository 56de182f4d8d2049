package handler

import (
	"fmt"
	"net/http"
	"time"

	"foodcart360/internal/apierror"
	"foodcart360/internal/infra"
	"foodcart360/internal/service"
	"foodcart360/internal/worker"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	svc            service.AnalyticsService
	settings       service.SettingsService
	dispatcher     *worker.Dispatcher
	pdfStoragePath string
	reportEmail    string
}

func NewAnalyticsHandler(
	svc service.AnalyticsService,
	settings service.SettingsService,
	dispatcher *worker.Dispatcher,
	pdfStoragePath string,
	reportEmail string,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:            svc,
		settings:       settings,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		reportEmail:    reportEmail,
	}
}

// DailySummary godoc
// @Summary      Daily business summary
// @Description  Revenue, expenses, profit, order count, AOV, top items, payment breakdown and low-stock alerts for one day. Always recomputed, never cached.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Date YYYY-MM-DD (default: today)"
// @Success      200  {object} dto.DailySummaryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports/daily [get]
func (h *AnalyticsHandler) DailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	resp, err := h.svc.DailySummary(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RangeSummary godoc
// @Summary      Multi-day summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start query string true "Start date YYYY-MM-DD"
// @Param        end   query string true "End date YYYY-MM-DD"
// @Success      200   {object} dto.RangeSummaryResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/reports/range [get]
func (h *AnalyticsHandler) RangeSummary(c *gin.Context) {
	resp, err := h.svc.RangeSummary(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EmailDailyReport renders the day's summary as a PDF and enqueues an email
// to the configured report address. The send itself is asynchronous.
func (h *AnalyticsHandler) EmailDailyReport(c *gin.Context) {
	if h.reportEmail == "" {
		c.JSON(http.StatusBadRequest, apierror.New("no report email configured"))
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	summary, err := h.svc.DailySummary(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	cartName := "FoodCart360"
	currency := "INR"
	if profile, err := h.settings.GetProfile(c.Request.Context()); err == nil {
		cartName = profile.CartName
	}
	if settings, err := h.settings.GetSettings(c.Request.Context()); err == nil {
		currency = settings.Currency
	}

	pdfPath, err := infra.GenerateDailyReportPDF(summary, cartName, currency, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("report PDF generation failed"))
		return
	}

	job := worker.EmailJobPayload{
		ToEmail: h.reportEmail,
		Subject: fmt.Sprintf("%s — daily report %s", cartName, date),
		Body:    fmt.Sprintf("Attached is the report for %s.\nRevenue: %s %s, profit: %s %s.", date, currency, summary.Revenue, currency, summary.Profit),
		PDFPath: pdfPath,
	}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to enqueue report email"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true, "to": h.reportEmail, "date": date})
}
