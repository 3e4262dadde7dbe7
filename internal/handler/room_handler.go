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

type RoomHandler struct {
	roomService *service.RoomService
	log         zerolog.Logger
}

func NewRoomHandler(roomService *service.RoomService, log zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		log:         log.With().Str("component", "room_handler").Logger(),
	}
}

// GetAll godoc
// GET /api/v1/rooms?number=&min_capacity=&max_capacity=
func (h *RoomHandler) GetAll(c *gin.Context) {
	var q model.RoomListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rooms, err := h.roomService.List(c.Request.Context(), service.RoomFilter{
		Number:      q.Number,
		MinCapacity: q.MinCapacity,
		MaxCapacity: q.MaxCapacity,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

// GetByID godoc
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// GetAvailability godoc
// GET /api/v1/rooms/:id/availability?term=2025/2&weekday=monday
func (h *RoomHandler) GetAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var q model.AvailabilityQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	availability, err := h.roomService.Availability(c.Request.Context(), id, model.Term(q.Term), model.Weekday(q.Weekday))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"availability": availability})
}

// Create godoc
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), req.Draft())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// Update godoc
// PUT /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.RoomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, req.Draft())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// Delete godoc
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.roomService.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "room deactivated successfully"})
}
