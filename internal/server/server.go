package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pixelclub/pixels-backend/internal/config"
	"github.com/pixelclub/pixels-backend/internal/handler"
	appmw "github.com/pixelclub/pixels-backend/internal/middleware"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"github.com/pixelclub/pixels-backend/internal/service"
	"github.com/pixelclub/pixels-backend/internal/trigger"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	memberRepo := repository.NewMemberRepository(db)
	eventRepo := repository.NewEventRepository(db)
	excuseRepo := repository.NewExcuseRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	semesterRepo := repository.NewSemesterRepository(db)

	settingsSvc := service.NewSettingsService(settingsRepo, semesterRepo)
	pixelSvc := service.NewPixelService(memberRepo, eventRepo, excuseRepo, activityRepo, settingsSvc)
	router := trigger.NewRouter(pixelSvc)

	eventSvc := service.NewEventService(eventRepo, router)
	excuseSvc := service.NewExcuseService(excuseRepo, eventRepo, router)
	activitySvc := service.NewActivityService(activityRepo, router)
	memberSvc := service.NewMemberService(memberRepo, eventRepo, excuseRepo, activityRepo, settingsSvc, pixelSvc)

	verifier, err := appmw.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
	if err != nil {
		return nil, err
	}
	authSvc := service.NewAuthService(verifier, memberRepo, cfg.SessionSecret,
		time.Duration(cfg.SessionTTLHours)*time.Hour, cfg.AllowedEmailDomain)
	session := appmw.NewSessionMiddleware(authSvc)

	authHandler := handler.NewAuthHandler(authSvc)
	memberHandler := handler.NewMemberHandler(memberSvc)
	dashHandler := handler.NewDashboardHandler(pixelSvc, memberSvc)
	eventHandler := handler.NewEventHandler(eventSvc, settingsSvc)
	excuseHandler := handler.NewExcuseHandler(excuseSvc)
	activityHandler := handler.NewActivityHandler(activitySvc, settingsSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/auth/session", authHandler.CreateSession)

	api.GET("/me", memberHandler.Me, session.RequireSession)
	api.GET("/me/attendance", dashHandler.MyAttendance, session.RequireSession)
	api.GET("/me/excuses", excuseHandler.ListMine, session.RequireSession)
	api.GET("/leaderboard", dashHandler.Leaderboard, session.RequireSession)
	api.GET("/leaderboard/export", dashHandler.ExportLeaderboard, session.RequireAdmin)

	api.GET("/events", eventHandler.List, session.RequireSession)
	api.GET("/events/:id", eventHandler.Get, session.RequireSession)
	api.POST("/events", eventHandler.Create, session.RequireAdmin)
	api.PUT("/events/:id", eventHandler.Update, session.RequireAdmin)
	api.DELETE("/events/:id", eventHandler.Delete, session.RequireAdmin)
	api.POST("/events/:id/attendees", eventHandler.AddAttendee, session.RequireAdmin)
	api.DELETE("/events/:id/attendees/:uid", eventHandler.RemoveAttendee, session.RequireAdmin)

	api.POST("/events/:id/excuses", excuseHandler.Request, session.RequireSession)
	api.GET("/events/:id/excuses", excuseHandler.ListByEvent, session.RequireAdmin)
	api.PUT("/excuses/:id/status", excuseHandler.SetStatus, session.RequireAdmin)

	api.GET("/activities", activityHandler.List, session.RequireSession)
	api.GET("/activities/:id", activityHandler.Get, session.RequireSession)
	api.POST("/activities", activityHandler.Create, session.RequireAdmin)
	api.PUT("/activities/:id", activityHandler.Update, session.RequireAdmin)
	api.DELETE("/activities/:id", activityHandler.Delete, session.RequireAdmin)
	api.PUT("/activities/:id/multipliers/:uid", activityHandler.SetMultiplier, session.RequireAdmin)
	api.DELETE("/activities/:id/multipliers/:uid", activityHandler.RemoveMultiplier, session.RequireAdmin)

	api.GET("/members", memberHandler.List, session.RequireAdmin)
	api.PUT("/members/:uid/admin", memberHandler.SetAdmin, session.RequireAdmin)
	api.PUT("/members/:uid/delta", memberHandler.SetDelta, session.RequireAdmin)
	api.POST("/members/:uid/recompute", memberHandler.Recompute, session.RequireAdmin)
	api.POST("/members/merge", memberHandler.Merge, session.RequireAdmin)

	api.GET("/settings", settingsHandler.Get, session.RequireSession)
	api.PUT("/settings", settingsHandler.Update, session.RequireAdmin)
	api.GET("/semesters", settingsHandler.ListSemesters, session.RequireSession)
	api.POST("/semesters", settingsHandler.CreateSemester, session.RequireAdmin)

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
