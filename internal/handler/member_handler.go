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

type MemberHandler struct {
	svc service.MemberService
}

func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type MemberResponse struct {
	UID         string `json:"uid"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
	PixelDelta  int64  `json:"pixelDelta"`
	PixelCached int64  `json:"pixelCached"`
	CreatedAt   string `json:"createdAt"`
}

func toMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		UID:         m.UID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		IsAdmin:     m.IsAdmin,
		PixelDelta:  m.PixelDelta,
		PixelCached: m.PixelCached,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *MemberHandler) Me(c echo.Context) error {
	member, err := h.svc.Get(c.Request().Context(), appmw.UID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "member not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch member"))
	}
	return c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch members"))
	}
	resp := make([]MemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, toMemberResponse(&members[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type SetAdminRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

func (h *MemberHandler) SetAdmin(c echo.Context) error {
	var req SetAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.SetAdmin(c.Request().Context(), c.Param("uid"), req.IsAdmin); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "member not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update member"))
	}
	return c.NoContent(http.StatusNoContent)
}

type SetDeltaRequest struct {
	PixelDelta int64 `json:"pixelDelta"`
}

func (h *MemberHandler) SetDelta(c echo.Context) error {
	var req SetDeltaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	member, err := h.svc.SetDelta(c.Request().Context(), c.Param("uid"), req.PixelDelta)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "member not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update member"))
	}
	return c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h *MemberHandler) Recompute(c echo.Context) error {
	member, err := h.svc.Recompute(c.Request().Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "member not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to recompute"))
	}
	return c.JSON(http.StatusOK, toMemberResponse(member))
}

type MergeRequest struct {
	SourceUID string `json:"sourceUid" validate:"required"`
	DestUID   string `json:"destUid" validate:"required"`
}

func (h *MemberHandler) Merge(c echo.Context) error {
	var req MergeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "sourceUid and destUid are required"))
	}
	member, err := h.svc.Merge(c.Request().Context(), req.SourceUID, req.DestUID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "member not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toMemberResponse(member))
}
