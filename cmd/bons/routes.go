package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"bons-travail/http-server/auth/bootstrap"
	"bons-travail/http-server/auth/login"
	"bons-travail/http-server/auth/me"
	"bons-travail/http-server/dashboard/pareto"
	generate_excel "bons-travail/http-server/generate-report/generate-excel"
	getoptions "bons-travail/http-server/options/get"
	saveoptions "bons-travail/http-server/options/save"
	getparts "bons-travail/http-server/spare-parts/get"
	removeparts "bons-travail/http-server/spare-parts/remove"
	saveparts "bons-travail/http-server/spare-parts/save"
	"bons-travail/http-server/spare-parts/upload"
	getusers "bons-travail/http-server/users/get"
	saveusers "bons-travail/http-server/users/save"
	getorders "bons-travail/http-server/work-orders/get"
	removeorders "bons-travail/http-server/work-orders/remove"
	saveorders "bons-travail/http-server/work-orders/save"
	updateorders "bons-travail/http-server/work-orders/update"
	"bons-travail/internal/config"
	"bons-travail/internal/middleware/auth"
	"bons-travail/internal/service/policy"
)

func routes(cfg *config.Config, log *slog.Logger, svc *services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(api chi.Router) {
		// первый менеджер и вход
		api.Get("/auth/bootstrap", bootstrap.Status(log, svc.auth))
		api.Post("/auth/bootstrap", bootstrap.Bootstrap(log, svc.auth))
		api.Post("/auth/login", login.Login(log, svc.auth))

		// пароль менеджера вводится заново при каждом создании
		api.With(auth.ManagerBasicAuth(log, svc.auth)).Post("/users", saveusers.CreateUser(log, svc.auth))

		api.Group(func(r chi.Router) {
			r.Use(auth.Session(svc.auth))

			r.Get("/auth/me", me.Me())
			r.With(auth.RequirePage(policy.PageUsers)).Get("/users", getusers.GetUsers(log, svc.auth))

			r.Route("/work-orders", func(r chi.Router) {
				r.Use(auth.RequirePage(policy.WorkOrderPages...))

				r.Get("/", getorders.GetWorkOrders(log, svc.workOrders))
				r.Get("/{code}", getorders.GetWorkOrder(log, svc.workOrders))
				r.Put("/{code}", updateorders.UpdateWorkOrder(log, svc.workOrders))
				r.With(auth.RequirePage(policy.PageProduction)).Post("/", saveorders.SaveWorkOrder(log, svc.workOrders))
				r.With(auth.RequirePage(policy.PageProduction)).Delete("/{code}", removeorders.DeleteWorkOrder(log, svc.workOrders))
			})

			r.Route("/spare-parts", func(r chi.Router) {
				r.With(auth.RequirePage(policy.PageProduction, policy.PagePDR)).Get("/", getparts.GetSpareParts(log, svc.inventory))
				r.With(auth.RequirePage(policy.PageProduction, policy.PagePDR)).Get("/{code}", getparts.GetSparePart(log, svc.inventory))

				r.Group(func(r chi.Router) {
					r.Use(auth.RequirePage(policy.PagePDR))

					r.Post("/import", upload.ImportSpareParts(log, svc.inventory))
					r.Put("/{code}", saveparts.UpsertSparePart(log, svc.inventory))
					r.Delete("/{code}", removeparts.DeleteSparePart(log, svc.inventory))
				})
			})

			r.Get("/options/{kind}", getoptions.GetOptions(log, svc.options))
			r.With(auth.RequirePage(policy.PageProduction)).Post("/options/{kind}", saveoptions.AppendOption(log, svc.options))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequirePage(policy.PageDashboard))

				r.Get("/dashboard/pareto", pareto.GetPareto(log, svc.dashboard))
				r.Get("/report/excel", generate_excel.GenerateReportExcel(log, svc.excel))
			})
		})
	})

	if cfg.StaticDir != "" {
		serveFrontend(router, log, cfg.StaticDir)
	}

	return router
}

// serveFrontend отдаёт собранный фронтенд, любой другой путь - index.html (SPA)
func serveFrontend(router *chi.Mux, log *slog.Logger, frontendDir string) {
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("Папка фронтенда не найдена", slog.String("path", frontendDir))
		return
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})
}
