package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	getcatalog "github.com/PareasySys/sysquote-sub002/http-server/catalog/get"
	getgantt "github.com/PareasySys/sysquote-sub002/http-server/gantt/get"
	generate_excel "github.com/PareasySys/sysquote-sub002/http-server/generate-report/generate-excel"
	getplans "github.com/PareasySys/sysquote-sub002/http-server/plans/get"
	getquote "github.com/PareasySys/sysquote-sub002/http-server/quotes/get"
	savequote "github.com/PareasySys/sysquote-sub002/http-server/quotes/save"
	upquote "github.com/PareasySys/sysquote-sub002/http-server/quotes/update"
	saverequirements "github.com/PareasySys/sysquote-sub002/http-server/requirements/save"
	getresources "github.com/PareasySys/sysquote-sub002/http-server/resources/get"
	saveresource "github.com/PareasySys/sysquote-sub002/http-server/resources/save"
	upresources "github.com/PareasySys/sysquote-sub002/http-server/resources/update"
	"github.com/PareasySys/sysquote-sub002/internal/config"
	"github.com/PareasySys/sysquote-sub002/internal/middleware/auth"
	generate_excel2 "github.com/PareasySys/sysquote-sub002/internal/service/generate-excel"
	"github.com/PareasySys/sysquote-sub002/internal/service/schedule"
	"github.com/PareasySys/sysquote-sub002/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, gantt *schedule.Service, excel *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())

	// справочники
	router.Get("/api/plans", getplans.GetPlans(log, storage))
	router.Get("/api/catalog/machines", getcatalog.GetMachines(log, storage))
	router.Get("/api/catalog/software", getcatalog.GetSoftware(log, storage))
	router.Get("/api/resources", getresources.GetResources(log, storage))

	// КП
	router.Post("/api/quotes", savequote.SaveQuote(log, storage))
	router.Route("/api/quotes/{quoteID}", func(r chi.Router) {
		r.Get("/", getquote.GetQuote(log, storage))
		r.Put("/weekends", upquote.UpdateWeekends(log, storage))
		r.Put("/items", upquote.UpdateItems(log, storage))

		r.Get("/gantt", getgantt.GetGantt(log, gantt, cfg.GanttTimeout))
		r.Get("/gantt/latest", getgantt.GetLatestGantt(log, gantt))
		r.Get("/gantt/excel", generate_excel.GenerateGanttExcel(log, excel, cfg.GanttTimeout))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(auth.DefaultRealm, cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/resources", saveresource.SaveResourceAdmin(log, storage))
	adminRouter.Put("/resources", upresources.UpdateResourcesAdmin(log, storage))
	adminRouter.Put("/requirements", saverequirements.SaveRequirementsAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	mountFrontend(router, cfg, log)

	return router
}

// mountFrontend отдаёт собранный SPA, если каталог задан и существует.
func mountFrontend(router chi.Router, cfg config.Config, log *slog.Logger) {
	frontendDir := cfg.FrontendDir
	if frontendDir == "" {
		return
	}
	if info, err := os.Stat(frontendDir); err != nil || !info.IsDir() {
		log.Warn("Папка фронтенда не найдена, отдаём только API", slog.String("path", frontendDir))
		return
	}

	index := filepath.Join(frontendDir, "index.html")
	fileServer := http.FileServer(http.Dir(frontendDir))

	router.Handle("/assets/*", fileServer)

	router.With(auth.BasicAuth(auth.DefaultRealm, cfg.AdminLogin, cfg.AdminPass)).Handle("/admin/*",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		}),
	)

	// SPA fallback: существующий файл отдаём как есть, остальное отдаёт index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
