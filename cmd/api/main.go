package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"entrega.dev/internal/auth"
	"entrega.dev/internal/catalog"
	"entrega.dev/internal/httpapi"
	"entrega.dev/internal/obs"
)

var (
	version = "0.3.0"
	commit  = "unknown" // set via -ldflags at build time
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	secret := os.Getenv("ENTREGA_AUTH_SECRET")
	if secret == "" {
		log.Fatal("ENTREGA_AUTH_SECRET is required")
	}
	tokenTTL := auth.DefaultTokenTTL
	if raw := os.Getenv("ENTREGA_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("parse ENTREGA_TOKEN_TTL: %v", err)
		}
		tokenTTL = ttl
	}
	tokens, err := auth.NewTokenService(auth.SecurityConfig{
		SigningKey: []byte(secret),
		TokenTTL:   tokenTTL,
		Issuer:     "entrega",
	})
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	// Postgres when a DSN is set, in-memory stores otherwise. /readyz pings
	// the database in the former case.
	var (
		db         *sql.DB
		users      auth.UserStore
		products   catalog.ProductStore
		categories catalog.CategoryStore
	)
	if dsn := os.Getenv("ENTREGA_PG_DSN"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		users = auth.NewPGUsers(db)
		products = catalog.NewPGProducts(db)
		categories = catalog.NewPGCategories(db)
	} else {
		users = auth.NewInMemoryUsers()
		products = catalog.NewInMemoryProducts()
		categories = catalog.NewInMemoryCategories()
	}

	authn := auth.NewAuthenticator(users, tokens)
	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, tokens, authn, users, products, categories)

	addr := os.Getenv("ENTREGA_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting entrega-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
