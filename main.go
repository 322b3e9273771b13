package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if rep := dependencyStatus(cfg.YTDLPPath); rep.Found {
		log.Printf("✅ yt-dlp found at %s", rep.Path)
	} else {
		log.Printf("⚠️  yt-dlp (%s) not found on PATH; requests will fail until it is installed", cfg.YTDLPPath)
	}

	pool := NewPool(cfg.WorkerPoolSize)
	svc := NewService(cfg, pool, ExecRunner{})
	srv := NewServer(cfg, svc, pool)

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Routes(),
	}

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Println("🛑 Graceful shutdown initiated...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownGrace))
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server running on %s with %d workers", cfg.ListenAddr, cfg.WorkerPoolSize)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	pool.Close()
	log.Println("✅ Graceful shutdown completed")
}
