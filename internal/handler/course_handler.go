package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/model"
	"github.com/stemsi/course-service/internal/response"
	"github.com/stemsi/course-service/internal/service"
	"github.com/stemsi/course-service/internal/validator"
)

// CourseNotFoundMessage is the body of every 404 from the courses API.
const CourseNotFoundMessage = "The course with the given ID was not found"

type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// List godoc
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// Get godoc
// GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		response.Text(c, http.StatusNotFound, CourseNotFoundMessage)
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Create godoc
// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CourseInput
	if err := validator.Bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Update godoc
// PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		response.Text(c, http.StatusNotFound, CourseNotFoundMessage)
		return
	}

	// An unknown id is reported before anything wrong with the body.
	if _, err := h.courseService.Get(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	var req model.CourseInput
	if err := validator.Bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Delete godoc
// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		response.Text(c, http.StatusNotFound, CourseNotFoundMessage)
		return
	}

	course, err := h.courseService.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) fail(c *gin.Context, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.Text(c, http.StatusNotFound, CourseNotFoundMessage)
	case errors.As(err, &verr):
		response.Text(c, http.StatusBadRequest, verr.Message)
	default:
		h.log.Error().
			Err(err).
			Str("request_id", response.RequestID(c)).
			Msg("Course operation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ParseID reads the leading decimal integer of raw: leading whitespace and an
// optional sign, then as many digits as are present. "12abc" yields 12 and
// "1.5" yields 1. It reports false when no digits lead the string or the
// value does not fit an int; such ids match no course.
func ParseID(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}
