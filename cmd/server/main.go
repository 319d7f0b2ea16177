package main

import (
	"database/sql"
	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/route"
	"eld-trip-service/internal/api"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres/Redis caches, ORS) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	geocodeCache, routeCache, closeCaches, err := buildCaches()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCaches()

	provider, err := route.NewORSRouteProvider(orsKey, geocodeCache, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider)

	// Timeouts are tuned for cold-cache trip planning (external API latency
	// dominates: three geocodes plus a directions call).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches selects the cache backend from the environment: Redis when
// REDIS_URL is set, Postgres when DATABASE_URL is set, SQLite otherwise.
func buildCaches() (ports.GeocodeCache, ports.RouteCache, func(), error) {
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build caches: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)

		log.Println("Using Redis caches")
		return cache.NewRedisGeocodeCache(client),
			cache.NewRedisRouteCache(client),
			func() { _ = client.Close() },
			nil
	}

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("build caches: %w", err)
		}
		if err := repositories.InitPostgresSchema(pg); err != nil {
			return nil, nil, nil, fmt.Errorf("build caches: %w", err)
		}

		log.Println("Using Postgres caches")
		return cache.NewSQLGeocodeCache(pg),
			cache.NewSQLRouteCache(pg),
			func() { _ = pg.Close() },
			nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	lite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build caches: %w", err)
	}
	if err := repositories.InitSchema(lite); err != nil {
		return nil, nil, nil, fmt.Errorf("build caches: %w", err)
	}

	log.Printf("Using SQLite caches path=%s", dbPath)
	return cache.NewSqliteGeocodeCache(lite),
		cache.NewSqliteRouteCache(lite),
		func() { _ = lite.Close() },
		nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
