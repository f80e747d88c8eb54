package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/service"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load settings"))
	}
	return c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	CurrentSemesterID *uint64 `json:"currentSemesterId"`
	LeadershipOn      *bool   `json:"isLeadershipOn"`
	ClearSemester     bool    `json:"clearSemester"`
}

func (h *SettingsHandler) Update(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ctx := c.Request().Context()
	if req.ClearSemester {
		if err := h.svc.SetCurrentSemester(ctx, nil); err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update settings"))
		}
	} else if req.CurrentSemesterID != nil {
		if err := h.svc.SetCurrentSemester(ctx, req.CurrentSemesterID); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "semester not found"))
			}
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update settings"))
		}
	}
	if req.LeadershipOn != nil {
		if err := h.svc.SetLeadershipOn(ctx, *req.LeadershipOn); err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update settings"))
		}
	}
	return h.Get(c)
}

type SemesterRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (h *SettingsHandler) CreateSemester(c echo.Context) error {
	var req SemesterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}
	sem, err := h.svc.CreateSemester(c.Request().Context(), req.Name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, sem)
}

func (h *SettingsHandler) ListSemesters(c echo.Context) error {
	list, err := h.svc.ListSemesters(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch semesters"))
	}
	if list == nil {
		list = []model.Semester{}
	}
	return c.JSON(http.StatusOK, list)
}
