package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/model"
	"github.com/stemsi/exstem-scheduler/internal/response"
	"github.com/stemsi/exstem-scheduler/internal/service"
	"github.com/stemsi/exstem-scheduler/internal/validator"
)

type SectionHandler struct {
	sectionService  *service.SectionService
	defaultCapacity int
	log             zerolog.Logger
}

// NewSectionHandler creates a SectionHandler. defaultCapacity is applied to
// sections created or updated without an explicit capacity.
func NewSectionHandler(sectionService *service.SectionService, defaultCapacity int, log zerolog.Logger) *SectionHandler {
	return &SectionHandler{
		sectionService:  sectionService,
		defaultCapacity: defaultCapacity,
		log:             log.With().Str("component", "section_handler").Logger(),
	}
}

// GetAll godoc
// GET /api/v1/sections?term=&course_id=&professor=&room_id=&weekday=
func (h *SectionHandler) GetAll(c *gin.Context) {
	var q model.SectionListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sections, err := h.sectionService.List(c.Request.Context(), service.SectionFilter{
		Term:      model.Term(q.Term),
		CourseID:  q.CourseID,
		Professor: q.Professor,
		RoomID:    q.RoomID,
		Weekday:   model.Weekday(q.Weekday),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sections": sections, "total": len(sections)})
}

// GetByID godoc
// GET /api/v1/sections/:id
func (h *SectionHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	section, err := h.sectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// Create godoc
// POST /api/v1/sections
func (h *SectionHandler) Create(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), draft)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// Update godoc
// PUT /api/v1/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), id, draft)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// Delete godoc
// DELETE /api/v1/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.sectionService.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "section deactivated successfully"})
}

func (h *SectionHandler) bindDraft(c *gin.Context) (model.ClassSectionDraft, bool) {
	var req model.SectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return model.ClassSectionDraft{}, false
	}

	draft, err := req.Draft(h.defaultCapacity)
	if err != nil {
		field := "schedule"
		if req.Schedule == "" {
			field = "schedule_end"
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			field: "o horário de início deve ser anterior ao horário de fim",
		})
		return model.ClassSectionDraft{}, false
	}
	return draft, true
}
