package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pettzin/ProjetoAstracode/internal/config"
	"github.com/pettzin/ProjetoAstracode/internal/logbook"
	"github.com/pettzin/ProjetoAstracode/internal/scheduler"
	"github.com/pettzin/ProjetoAstracode/internal/service"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=astra DBPWD=secret DBHOST=localhost:3306 GIN_MODE=release go run ./cmd/service
func main() {
	cfg := config.Load()

	sqlDB := service.CreateDatabase(cfg)
	db := service.SetupDatabaseWrapper(sqlDB)

	lb, err := logbook.New(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	service.SetupLogbook(lb)

	router := service.SetupHttpRouter(cfg)

	worker := &scheduler.Worker{
		Repo: &scheduler.Repo{DB: db},
		Log:  lb,
		Tick: cfg.SchedulerTick,
	}
	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
