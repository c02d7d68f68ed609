// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	monthlyUseCase *dashboard.GetMonthlyDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(monthlyUseCase *dashboard.GetMonthlyDashboardUseCase) *DashboardController {
	return &DashboardController{
		monthlyUseCase: monthlyUseCase,
	}
}

// GetMonthly handles GET /dashboard requests.
// Optional query parameters: year, month, navigate (prev|next).
func (c *DashboardController) GetMonthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := dashboard.GetMonthlyDashboardInput{
		UserID:   userID,
		Navigate: ctx.Query("navigate"),
	}

	year, err := optionalInt(ctx, "year")
	if err != nil {
		handleError(ctx, err)
		return
	}
	month, err := optionalInt(ctx, "month")
	if err != nil {
		handleError(ctx, err)
		return
	}
	input.Year, input.Month = year, time.Month(month)

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyDashboardResponse(output))
}

// optionalInt parses an integer query parameter, returning 0 when absent.
func optionalInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"query parameter "+name+" must be an integer",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return value, nil
}
