package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/service"
)

type EventHandler struct {
	svc      service.EventService
	settings service.SettingsService
}

func NewEventHandler(svc service.EventService, settings service.SettingsService) *EventHandler {
	return &EventHandler{svc: svc, settings: settings}
}

type EventRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Date       string `json:"date" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Pixels     int64  `json:"pixels" validate:"gte=0"`
	SemesterID uint64 `json:"semesterId"`
}

type EventResponse struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	Type       string   `json:"type"`
	Pixels     int64    `json:"pixels"`
	SemesterID uint64   `json:"semesterId"`
	Attendees  []string `json:"attendees"`
}

func toEventResponse(ev *model.Event) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		Name:       ev.Name,
		Date:       ev.Date.Format(time.RFC3339),
		Type:       string(ev.Type),
		Pixels:     ev.Pixels,
		SemesterID: ev.SemesterID,
		Attendees:  ev.AttendeeUIDs(),
	}
}

func (h *EventHandler) toInput(c echo.Context, req *EventRequest) (service.EventInput, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return service.EventInput{}, errors.New("invalid date")
	}
	semesterID := req.SemesterID
	if semesterID == 0 {
		// default to the active semester
		id, ok, err := h.settings.ActiveSemester(c.Request().Context())
		if err != nil {
			return service.EventInput{}, err
		}
		if !ok {
			return service.EventInput{}, errors.New("no semester given and none active")
		}
		semesterID = id
	}
	return service.EventInput{
		Name:       req.Name,
		Date:       date,
		Type:       model.EventType(req.Type),
		Pixels:     req.Pixels,
		SemesterID: semesterID,
	}, nil
}

func (h *EventHandler) Create(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid event"))
	}
	in, err := h.toInput(c, &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	ev, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toEventResponse(ev))
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid event"))
	}
	in, err := h.toInput(c, &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	ev, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete event"))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	ev, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch event"))
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

func (h *EventHandler) List(c echo.Context) error {
	semesterID, err := strconv.ParseUint(c.QueryParam("semesterId"), 10, 64)
	if err != nil || semesterID == 0 {
		id, ok, serr := h.settings.ActiveSemester(c.Request().Context())
		if serr != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load settings"))
		}
		if !ok {
			return c.JSON(http.StatusOK, []EventResponse{})
		}
		semesterID = id
	}
	events, err := h.svc.ListBySemester(c.Request().Context(), semesterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch events"))
	}
	resp := make([]EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type AttendeeRequest struct {
	MemberUID string `json:"memberUid" validate:"required"`
}

func (h *EventHandler) AddAttendee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req AttendeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "memberUid is required"))
	}
	ev, err := h.svc.AddAttendee(c.Request().Context(), id, req.MemberUID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

func (h *EventHandler) RemoveAttendee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	ev, err := h.svc.RemoveAttendee(c.Request().Context(), id, c.Param("uid"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "event not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to remove attendee"))
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
