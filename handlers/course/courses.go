package course

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/classtrack/services"
	"github.com/sahilchouksey/classtrack/utils/response"
	"github.com/sahilchouksey/classtrack/utils/validation"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	service   *services.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CourseRequest represents the request body for creating or updating a course
type CourseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Code     string `json:"code" validate:"required,min=1,max=50"`
	Color    string `json:"color" validate:"required,min=1,max=20"`
	Credits  int    `json:"credits" validate:"gte=0"`
	Semester string `json:"semester" validate:"required,min=1,max=50"`
}

func (r CourseRequest) toInput() services.CourseInput {
	return services.CourseInput{
		Name:     validation.SanitizeString(r.Name),
		Code:     validation.SanitizeString(r.Code),
		Color:    validation.SanitizeString(r.Color),
		Credits:  r.Credits,
		Semester: validation.SanitizeString(r.Semester),
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

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.List(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to fetch courses")
	}
	return response.Success(c, courses)
}

// GetCourse handles GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	course, err := h.service.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to fetch course")
	}
	return response.Success(c, course)
}

// CreateCourse handles POST /api/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return validationFailed(c, err)
	}

	course, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return serviceError(c, err, "Failed to create course")
	}
	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return validationFailed(c, err)
	}

	course, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return serviceError(c, err, "Failed to update course")
	}
	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/courses/:id. Deleting a course removes
// its assignments and their history in the same transaction.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return serviceError(c, err, "Failed to delete course")
	}
	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
