// Command scour-fixture serves an in-memory search backend for demos and
// manual testing of scour.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/abelbrown/scour/internal/fixture"
)

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("SCOUR_FIXTURE_ADDR")
	if addr == "" {
		addr = "127.0.0.1:5000"
	}

	var (
		listen    = flag.String("addr", addr, "listen address")
		pageSize  = flag.Int("page-size", fixture.DefaultPageSize, "results per page")
		synth     = flag.Int("results", 23, "results generated per query")
		taskDelay = flag.Duration("task-delay", 2*time.Second, "simulated scrape time")
		quiet     = flag.Bool("quiet", false, "disable request logging")
	)
	flag.Parse()

	backend := fixture.New(
		fixture.WithPageSize(*pageSize),
		fixture.WithSynthesized(*synth),
		fixture.WithTaskDelay(*taskDelay),
	)

	r := chi.NewRouter()
	if !*quiet {
		r.Use(middleware.Logger)
	}
	r.Mount("/", backend.Handler())

	srv := &http.Server{
		Addr:              *listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("scour-fixture listening on http://%s (%d results/query, page size %d)", *listen, *synth, *pageSize)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}
