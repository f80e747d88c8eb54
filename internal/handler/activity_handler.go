package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/service"
)

type ActivityHandler struct {
	svc      service.ActivityService
	settings service.SettingsService
}

func NewActivityHandler(svc service.ActivityService, settings service.SettingsService) *ActivityHandler {
	return &ActivityHandler{svc: svc, settings: settings}
}

type ActivityRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Type       string `json:"type" validate:"required"`
	Pixels     int64  `json:"pixels" validate:"gte=0"`
	SemesterID uint64 `json:"semesterId"`
}

type MultiplierEntry struct {
	MemberUID  string `json:"memberUid"`
	Multiplier int64  `json:"multiplier"`
}

type ActivityResponse struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Pixels      int64             `json:"pixels"`
	SemesterID  uint64            `json:"semesterId"`
	Multipliers []MultiplierEntry `json:"multipliers"`
}

func toActivityResponse(a *model.Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Type:        string(a.Type),
		Pixels:      a.Pixels,
		SemesterID:  a.SemesterID,
		Multipliers: make([]MultiplierEntry, 0, len(a.Multipliers)),
	}
	for _, m := range a.Multipliers {
		resp.Multipliers = append(resp.Multipliers, MultiplierEntry{
			MemberUID:  m.MemberUID,
			Multiplier: m.Multiplier,
		})
	}
	return resp
}

func (h *ActivityHandler) toInput(c echo.Context, req *ActivityRequest) (service.ActivityInput, error) {
	semesterID := req.SemesterID
	if semesterID == 0 {
		id, ok, err := h.settings.ActiveSemester(c.Request().Context())
		if err != nil {
			return service.ActivityInput{}, err
		}
		if !ok {
			return service.ActivityInput{}, errors.New("no semester given and none active")
		}
		semesterID = id
	}
	return service.ActivityInput{
		Name:       req.Name,
		Type:       model.ActivityType(req.Type),
		Pixels:     req.Pixels,
		SemesterID: semesterID,
	}, nil
}

func (h *ActivityHandler) Create(c echo.Context) error {
	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid activity"))
	}
	in, err := h.toInput(c, &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toActivityResponse(a))
}

func (h *ActivityHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid activity"))
	}
	in, err := h.toInput(c, &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "activity not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toActivityResponse(a))
}

func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "activity not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete activity"))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ActivityHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "activity not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch activity"))
	}
	return c.JSON(http.StatusOK, toActivityResponse(a))
}

func (h *ActivityHandler) List(c echo.Context) error {
	semesterID, err := strconv.ParseUint(c.QueryParam("semesterId"), 10, 64)
	if err != nil || semesterID == 0 {
		id, ok, serr := h.settings.ActiveSemester(c.Request().Context())
		if serr != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load settings"))
		}
		if !ok {
			return c.JSON(http.StatusOK, []ActivityResponse{})
		}
		semesterID = id
	}
	activities, err := h.svc.ListBySemester(c.Request().Context(), semesterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch activities"))
	}
	resp := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		resp = append(resp, toActivityResponse(&activities[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type MultiplierRequest struct {
	Multiplier int64 `json:"multiplier" validate:"gt=0"`
}

func (h *ActivityHandler) SetMultiplier(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req MultiplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "multiplier must be positive"))
	}
	a, err := h.svc.SetMultiplier(c.Request().Context(), id, c.Param("uid"), req.Multiplier)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "activity not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toActivityResponse(a))
}

func (h *ActivityHandler) RemoveMultiplier(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	a, err := h.svc.RemoveMultiplier(c.Request().Context(), id, c.Param("uid"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "activity not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to remove multiplier"))
	}
	return c.JSON(http.StatusOK, toActivityResponse(a))
}
