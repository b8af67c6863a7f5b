package assignment

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/services"
	"github.com/sahilchouksey/classtrack/utils/response"
	"github.com/sahilchouksey/classtrack/utils/validation"
)

// AssignmentHandler handles assignment-related requests
type AssignmentHandler struct {
	service   *services.AssignmentService
	validator *validation.Validator
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(service *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// AssignmentRequest represents the request body for creating or updating an
// assignment. DueDate is a bare calendar date.
type AssignmentRequest struct {
	CourseID    uint   `json:"course_id" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Priority    string `json:"priority" validate:"required,oneof=high medium low"`
	// Omitted or invalid points fall back to 0 in the service layer.
	Points *int `json:"points"`
}

func (r AssignmentRequest) toInput() services.AssignmentInput {
	return services.AssignmentInput{
		CourseID:    r.CourseID,
		Title:       validation.SanitizeString(r.Title),
		Description: validation.SanitizeString(r.Description),
		DueDate:     validation.SanitizeString(r.DueDate),
		Priority:    validation.SanitizeString(r.Priority),
		Points:      r.Points,
	}
}

// serviceError maps domain errors onto the response envelope.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return response.NotFound(c, nf.Error())
	}
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return response.ValidationError(c, ve)
	}
	return response.InternalServerError(c, fallback)
}

// validationFailed renders struct-tag validation errors with per-field
// messages.
func validationFailed(c *fiber.Ctx, err error) error {
	if fields := validation.FormatValidationErrors(err); len(fields) > 0 {
		return response.FieldValidationError(c, fields)
	}
	return response.ValidationError(c, err)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// ListAssignments handles GET /api/assignments. The query string drives the
// shared filter/sort rules: ?course_id= &status= &search= &sort=.
func (h *AssignmentHandler) ListAssignments(c *fiber.Ctx) error {
	var opts services.FilterOptions
	if courseID, err := strconv.ParseUint(c.Query("course_id"), 10, 64); err == nil {
		opts.CourseID = uint(courseID)
	}
	opts.Status = c.Query("status")
	opts.Search = c.Query("search")

	assignments, err := h.service.List(c.Context(), opts, c.Query("sort"))
	if err != nil {
		return serviceError(c, err, "Failed to fetch assignments")
	}
	return response.Success(c, assignments)
}

// ListWeek handles GET /api/assignments/week: incomplete assignments due
// within the next seven days.
func (h *AssignmentHandler) ListWeek(c *fiber.Ctx) error {
	assignments, err := h.service.ListDueThisWeek(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to fetch assignments due this week")
	}
	return response.Success(c, assignments)
}

// GetAssignment handles GET /api/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	assignment, err := h.service.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch assignment")
	}
	return response.Success(c, assignment)
}

// CreateAssignment handles POST /api/assignments
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return validationFailed(c, err)
	}

	assignment, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return serviceError(c, err, "Failed to create assignment")
	}
	return response.Created(c, assignment)
}

// UpdateAssignment handles PUT /api/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return validationFailed(c, err)
	}

	assignment, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return serviceError(c, err, "Failed to update assignment")
	}
	return response.Success(c, assignment)
}

// ToggleComplete handles PATCH /api/assignments/:id/complete
func (h *AssignmentHandler) ToggleComplete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	assignment, err := h.service.ToggleComplete(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to toggle assignment completion")
	}
	return response.Success(c, assignment)
}

// DeleteAssignment handles DELETE /api/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete assignment")
	}
	return response.SuccessWithMessage(c, "Assignment deleted successfully", nil)
}

// GetHistory handles GET /api/assignments/:id/history
func (h *AssignmentHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	entries, err := h.service.History(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch assignment history")
	}
	return response.Success(c, entries)
}
