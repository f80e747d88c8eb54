package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/pixelclub/pixels-backend/internal/middleware"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/service"
)

type ExcuseHandler struct {
	svc service.ExcuseService
}

func NewExcuseHandler(svc service.ExcuseService) *ExcuseHandler {
	return &ExcuseHandler{svc: svc}
}

type ExcuseResponse struct {
	ID        uint64 `json:"id"`
	EventID   uint64 `json:"eventId"`
	MemberUID string `json:"memberUid"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toExcuseResponse(ex *model.ExcusedAbsence) ExcuseResponse {
	return ExcuseResponse{
		ID:        ex.ID,
		EventID:   ex.EventID,
		MemberUID: ex.MemberUID,
		Reason:    ex.Reason,
		Status:    string(ex.Status),
		CreatedAt: ex.CreatedAt.Format(time.RFC3339),
	}
}

type ExcuseRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Request files an excused-absence request for the authenticated member.
func (h *ExcuseHandler) Request(c echo.Context) error {
	eventID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ExcuseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "reason is required"))
	}
	ex, err := h.svc.Request(c.Request().Context(), eventID, appmw.UID(c), req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toExcuseResponse(ex))
}

type ExcuseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved denied"`
}

func (h *ExcuseHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ExcuseStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid status"))
	}
	ex, err := h.svc.SetStatus(c.Request().Context(), id, model.ExcuseStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "excuse not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toExcuseResponse(ex))
}

func (h *ExcuseHandler) ListByEvent(c echo.Context) error {
	eventID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	list, err := h.svc.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch excuses"))
	}
	return c.JSON(http.StatusOK, toExcuseResponses(list))
}

func (h *ExcuseHandler) ListMine(c echo.Context) error {
	list, err := h.svc.ListByMember(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch excuses"))
	}
	return c.JSON(http.StatusOK, toExcuseResponses(list))
}

func toExcuseResponses(list []model.ExcusedAbsence) []ExcuseResponse {
	resp := make([]ExcuseResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toExcuseResponse(&list[i]))
	}
	return resp
}
