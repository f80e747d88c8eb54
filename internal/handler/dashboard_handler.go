package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/pixelclub/pixels-backend/internal/middleware"
	"github.com/pixelclub/pixels-backend/internal/service"
)

// DashboardHandler serves the member-facing views: attendance log,
// leaderboard, and the CSV export used by admins.
type DashboardHandler struct {
	pixels  service.PixelService
	members service.MemberService
}

func NewDashboardHandler(pixels service.PixelService, members service.MemberService) *DashboardHandler {
	return &DashboardHandler{pixels: pixels, members: members}
}

type AttendanceEntry struct {
	EventID    uint64 `json:"eventId"`
	EventName  string `json:"eventName"`
	EventDate  string `json:"eventDate"`
	EventType  string `json:"eventType"`
	Attendance string `json:"attendance"`
	Points     int64  `json:"points"`
}

func (h *DashboardHandler) MyAttendance(c echo.Context) error {
	log, err := h.pixels.AttendanceLog(c.Request().Context(), appmw.UID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoSemester) {
			return c.JSON(http.StatusConflict, NewErrorResponse("no_semester", "no active semester is configured"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch attendance"))
	}
	resp := make([]AttendanceEntry, 0, len(log))
	for _, entry := range log {
		resp = append(resp, AttendanceEntry{
			EventID:    entry.Event.ID,
			EventName:  entry.Event.Name,
			EventDate:  entry.Event.Date.Format(time.RFC3339),
			EventType:  string(entry.Event.Type),
			Attendance: string(entry.Attendance),
			Points:     entry.Points,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UID       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Pixels    int64  `json:"pixels"`
}

func (h *DashboardHandler) Leaderboard(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	members, err := h.members.Leaderboard(c.Request().Context(), limit, appmw.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, NewErrorResponse("leaderboard_off", "leaderboard is disabled"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch leaderboard"))
	}
	resp := make([]LeaderboardEntry, 0, len(members))
	for i := range members {
		resp = append(resp, LeaderboardEntry{
			Rank:      i + 1,
			UID:       members[i].UID,
			FirstName: members[i].FirstName,
			LastName:  members[i].LastName,
			Pixels:    members[i].PixelCached,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) ExportLeaderboard(c echo.Context) error {
	members, err := h.members.Leaderboard(c.Request().Context(), 500, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to export leaderboard"))
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="leaderboard.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"rank", "uid", "first_name", "last_name", "email", "pixels"}); err != nil {
		return err
	}
	for i := range members {
		m := &members[i]
		row := []string{
			strconv.Itoa(i + 1),
			m.UID,
			m.FirstName,
			m.LastName,
			m.Email,
			fmt.Sprintf("%d", m.PixelCached),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
