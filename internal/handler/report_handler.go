package handler

import (
	"net/http"
	"strconv"

	"github.com/4ugusta/chaibooks-backend/internal/middleware"
	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/service"
	"github.com/4ugusta/chaibooks-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	reports.Use(middleware.RequireAuth())
	{
		reports.GET("/sales", h.GetSalesReport)
		reports.GET("/purchases", h.GetPurchaseReport)
		reports.GET("/gst", h.GetGSTReport)
		reports.GET("/profit-loss", h.GetProfitLoss)
		reports.GET("/outstanding", h.GetCustomerOutstanding)
		reports.GET("/top-items", h.GetTopItems)
	}

	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.RequireAuth())
	{
		dashboard.GET("", h.GetDashboard)
	}
}

// GetSalesReport returns sales totals grouped by period
// @Summary      Sales report
// @Description  Sums stored sale invoice totals per day, week, or month
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        group_by    query     string  false  "Group by period: day, week, month (default: month)"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD, default: financial year start)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD, default: today)"
// @Success      200         {object}  response.Response{data=[]service.PeriodSummaryResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/sales [get]
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	h.periodReport(c, model.InvoiceTypeSale)
}

// GetPurchaseReport returns purchase totals grouped by period
// @Summary      Purchase report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        group_by    query     string  false  "Group by period: day, week, month (default: month)"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=[]service.PeriodSummaryResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) GetPurchaseReport(c *gin.Context) {
	h.periodReport(c, model.InvoiceTypePurchase)
}

func (h *ReportHandler) periodReport(c *gin.Context, invoiceType string) {
	groupBy := c.DefaultQuery("group_by", "month")

	data, err := h.reportService.GetPeriodSummary(c.Request.Context(), invoiceType, groupBy,
		c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetGSTReport returns output versus input tax for the range
// @Summary      GST summary
// @Description  Output tax on sales against input tax on purchases, with the net liability
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.GSTReportResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/gst [get]
func (h *ReportHandler) GetGSTReport(c *gin.Context) {
	data, err := h.reportService.GetGSTReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetProfitLoss returns the gross profit for the range
// @Summary      Profit and loss
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.ProfitLossResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	data, err := h.reportService.GetProfitLoss(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetCustomerOutstanding returns customers ranked by balance due
// @Summary      Customer outstanding
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows (default 20)"
// @Success      200    {object}  response.Response{data=[]service.CustomerOutstandingResponse}
// @Failure      500    {object}  response.Response
// @Router       /api/reports/outstanding [get]
func (h *ReportHandler) GetCustomerOutstanding(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	data, err := h.reportService.GetCustomerOutstanding(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetTopItems returns the best-moving items for the range
// @Summary      Top items
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        type        query     string  false  "Invoice type (sale, purchase; default sale)"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        limit       query     int     false  "Maximum rows (default 10)"
// @Success      200         {object}  response.Response{data=[]service.TopItemResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/top-items [get]
func (h *ReportHandler) GetTopItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	data, err := h.reportService.GetTopItems(c.Request.Context(), c.Query("type"),
		c.Query("start_date"), c.Query("end_date"), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetDashboard returns the home screen summary
// @Summary      Dashboard
// @Description  Month-to-date sales, purchases, collections, low stock, and top debtors
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	data, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}
