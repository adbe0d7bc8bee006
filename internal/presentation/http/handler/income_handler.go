package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/application/service"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/response"
	"github.com/sangkips/trimtally-api/pkg/pagination"
	"github.com/sangkips/trimtally-api/pkg/utils"
)

// IncomeHandler handles income ledger HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// List handles listing income entries with optional date filtering
func (h *IncomeHandler) List(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.incomeService.ListEntries(scopedContext(c), rng, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Income entries retrieved successfully", result)
}

// Create handles recording a new income entry
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.IncomeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.incomeService.CreateEntry(c.Request.Context(), &service.CreateEntryInput{
		RecordedBy:   *userID,
		Source:       req.Source,
		UnitsServed:  *req.UnitsServed,
		IsOwnerEntry: resolveOwnerEntry(c, req.IsOwnerEntry),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Income entry recorded successfully", entry)
}

// Get handles fetching a single income entry
func (h *IncomeHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.incomeService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income entry retrieved successfully", entry)
}

// Update handles updating an income entry
func (h *IncomeHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	var req request.IncomeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.incomeService.UpdateEntry(c.Request.Context(), &service.UpdateEntryInput{
		ID:           id,
		Source:       req.Source,
		UnitsServed:  *req.UnitsServed,
		IsOwnerEntry: resolveOwnerEntry(c, req.IsOwnerEntry),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income entry updated successfully", entry)
}

// Delete handles deleting an income entry
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.incomeService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income entry deleted successfully", nil)
}

// resolveOwnerEntry returns the explicit flag when the client sent one.
// When omitted, shop owners record owner entries and everyone else records
// employee entries.
func resolveOwnerEntry(c *gin.Context, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	for _, role := range GetUserRoles(c) {
		if role == "owner" {
			return true
		}
	}
	return false
}

// parseDateRange reads the shared date_from/date_to query filter. On a
// malformed bound it writes a 400 and reports false.
func parseDateRange(c *gin.Context) (repository.DateRange, bool) {
	var q request.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid date filter")
		return repository.DateRange{}, false
	}

	from, err := q.ParseFrom()
	if err != nil {
		response.BadRequest(c, "Invalid date_from")
		return repository.DateRange{}, false
	}
	to, err := q.ParseTo()
	if err != nil {
		response.BadRequest(c, "Invalid date_to")
		return repository.DateRange{}, false
	}

	return repository.DateRange{From: from, To: to}, true
}
