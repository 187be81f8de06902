package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aekeus/ralph-test/internal/export"
	"github.com/aekeus/ralph-test/internal/subtask"
	"github.com/aekeus/ralph-test/internal/tag"
	"github.com/aekeus/ralph-test/internal/todo"
	"github.com/aekeus/ralph-test/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbConfig struct {
	dsn string
}

type config struct {
	addr              string
	requestTimeoutSec int
	db                dbConfig
}

type application struct {
	config         config
	db             *pgxpool.Pool
	todoService    todo.Service
	subtaskService subtask.Service
	tagService     tag.Service
	exportService  export.Service
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	// เครื่องมือส่วนตัว ไม่มี credential เปิด CORS กว้าง ๆ ได้
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(app.config.requestTimeoutSec) * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	todoHandler := todo.NewHandler(app.todoService)
	subtaskHandler := subtask.NewHandler(app.subtaskService)
	tagHandler := tag.NewHandler(app.tagService)
	exportHandler := export.NewHandler(app.exportService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.ListTodos)
			r.Post("/", todoHandler.CreateTodo)

			// ต้องมาก่อน /{id} ไม่งั้น "reorder" โดน parse เป็น id
			r.Put("/reorder", todoHandler.Reorder)

			// ใช้ชื่อ param เดียวกันทั้ง subtree (chi ไม่ยอมให้ {id} กับ {todoID} ปนกันที่ segment เดียวกัน)
			r.Get("/{todoID}", todoHandler.GetTodo)
			r.Put("/{todoID}", todoHandler.UpdateTodo)
			r.Delete("/{todoID}", todoHandler.DeleteTodo)

			r.Route("/{todoID}/subtasks", func(r chi.Router) {
				r.Get("/", subtaskHandler.List)
				r.Post("/", subtaskHandler.Create)
				r.Put("/{id}", subtaskHandler.Update)
				r.Delete("/{id}", subtaskHandler.Delete)
			})

			r.Route("/{todoID}/tags", func(r chi.Router) {
				r.Post("/", tagHandler.AddToTodo)
				r.Delete("/{tagID}", tagHandler.RemoveFromTodo)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Post("/", tagHandler.Create)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/json", exportHandler.JSON)
			r.Get("/csv", exportHandler.CSV)
		})

		r.Get("/stats", todoHandler.Stats)
	})

	return r
}

func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", app.config.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server...")
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	// ปล่อยให้ request ที่ค้างอยู่จบก่อน ภายใน 10 วิ
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
