package server

import (
	"context"
	"net/http"

	"nutriplan/internal/handlers"
	applog "nutriplan/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/login", handlers.Login)
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/signup", handlers.Signup)
	applog.Debug(context.Background(), "route registered", "path", "/signup")
	mux.HandleFunc("/logout", handlers.Logout)
	applog.Debug(context.Background(), "route registered", "path", "/logout")

	protect := func(path string, h http.HandlerFunc) {
		mux.Handle(path, handlers.RequireAuthentication(h))
		applog.Debug(context.Background(), "route registered", "path", path, "protected", true)
	}
	protect("/app/api/profile", handlers.ProfileResource)
	protect("/app/api/plans", handlers.PlanResource)
	protect("/app/api/plans/", handlers.PlanResource)
	protect("/app/api/menus", handlers.MenuResource)
	protect("/app/api/menus/", handlers.MenuResource)
	protect("/app/api/analysis", handlers.Analysis)
	protect("/app/api/progress", handlers.ProgressResource)
	protect("/app/api/progress/", handlers.ProgressResource)
	protect("/app", handlers.Dashboard)
	protect("/app/calendar", handlers.Dashboard)

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
