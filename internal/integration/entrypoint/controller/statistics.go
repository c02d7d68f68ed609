// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/dto"
)

// StatisticsController handles statistics endpoints.
type StatisticsController struct {
	getUseCase     *statistics.GetStatisticsUseCase
	compareUseCase *statistics.ComparePeriodsUseCase
	trendUseCase   *statistics.GetTrendUseCase
	topUseCase     *statistics.GetTopCategoriesUseCase
	exportUseCase  *statistics.ExportStatisticsUseCase
	resolver       *statistics.Resolver
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(
	getUseCase *statistics.GetStatisticsUseCase,
	compareUseCase *statistics.ComparePeriodsUseCase,
	trendUseCase *statistics.GetTrendUseCase,
	topUseCase *statistics.GetTopCategoriesUseCase,
	exportUseCase *statistics.ExportStatisticsUseCase,
	resolver *statistics.Resolver,
) *StatisticsController {
	return &StatisticsController{
		getUseCase:     getUseCase,
		compareUseCase: compareUseCase,
		trendUseCase:   trendUseCase,
		topUseCase:     topUseCase,
		exportUseCase:  exportUseCase,
		resolver:       resolver,
	}
}

// Get handles GET /statistics requests.
// Query parameters: period (week|month|year), year, month, date, navigate.
func (c *StatisticsController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	selector, err := c.parseSelector(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), statistics.GetStatisticsInput{
		UserID:   userID,
		Selector: selector,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(result))
}

// Compare handles GET /statistics/compare requests.
func (c *StatisticsController) Compare(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	selector, err := c.parseSelector(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	comparison, err := c.compareUseCase.Execute(ctx.Request.Context(), statistics.ComparePeriodsInput{
		UserID:   userID,
		Selector: selector,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparisonResponse(comparison))
}

// Trend handles GET /statistics/trend requests.
// Query parameters: date (reference day, default today), window (months).
func (c *StatisticsController) Trend(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	reference, err := c.parseDate(ctx.Query("date"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	window, err := optionalInt(ctx, "window")
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), statistics.GetTrendInput{
		UserID:    userID,
		Reference: reference,
		Window:    window,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output))
}

// TopCategories handles GET /statistics/top-categories requests.
// Query parameters: the period selector plus type (income|expense) and limit.
func (c *StatisticsController) TopCategories(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	selector, err := c.parseSelector(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	limit, err := optionalInt(ctx, "limit")
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.topUseCase.Execute(ctx.Request.Context(), statistics.GetTopCategoriesInput{
		UserID:   userID,
		Selector: selector,
		Type:     entity.TransactionType(strings.ToLower(ctx.Query("type"))),
		Limit:    limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTopCategoriesResponse(output))
}

// Export handles GET /statistics/export requests.
// Query parameters: the period selector plus format (json|csv, default json).
func (c *StatisticsController) Export(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	selector, err := c.parseSelector(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	format := statistics.ExportFormat(strings.ToLower(ctx.DefaultQuery("format", string(statistics.ExportFormatJSON))))
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), statistics.ExportStatisticsInput{
		UserID:   userID,
		Selector: selector,
		Format:   format,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Data)
}

// parseSelector builds a period selector from query parameters. Missing
// values default to the current period of the requested kind.
func (c *StatisticsController) parseSelector(ctx *gin.Context) (statistics.Selector, error) {
	kind := statistics.Kind(strings.ToLower(ctx.DefaultQuery("period", string(statistics.KindMonth))))

	selector, err := c.resolver.Current(kind)
	if err != nil {
		return statistics.Selector{}, err
	}

	switch kind {
	case statistics.KindWeek:
		anchor, err := c.parseDate(ctx.Query("date"))
		if err != nil {
			return statistics.Selector{}, err
		}
		if !anchor.IsZero() {
			selector = statistics.NewWeekSelector(anchor)
		}
	case statistics.KindMonth, statistics.KindYear:
		year, err := optionalInt(ctx, "year")
		if err != nil {
			return statistics.Selector{}, err
		}
		if year != 0 {
			selector.Year = year
		}
		if kind == statistics.KindMonth {
			month, err := optionalInt(ctx, "month")
			if err != nil {
				return statistics.Selector{}, err
			}
			if ctx.Query("month") != "" {
				selector.Month = time.Month(month)
			}
		}
	}

	switch ctx.Query("navigate") {
	case "":
	case "prev":
		selector = selector.Previous()
	case "next":
		selector = selector.Next()
	default:
		return statistics.Selector{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidNavigation,
			"invalid navigation "+ctx.Query("navigate"),
			domainerror.ErrInvalidNavigation,
		)
	}

	return selector, nil
}

// parseDate parses a YYYY-MM-DD query value in the resolver's location.
// An empty value yields the zero time.
func (c *StatisticsController) parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation(time.DateOnly, value, c.resolver.Location())
	if err != nil {
		return time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid date "+value,
			domainerror.ErrInvalidDateFormat,
		)
	}
	return date, nil
}
