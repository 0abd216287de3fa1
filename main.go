package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gkk99-backend/internal/api"
	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/content"
	"gkk99-backend/internal/database"
	"gkk99-backend/internal/models"
)

func main() {
	// Get database path from environment or default
	dbPath := os.Getenv("GKK99_DB_PATH")
	if dbPath == "" {
		dbPath = "./gkk99.db"
	}
	if !filepath.IsAbs(dbPath) {
		cwd, _ := os.Getwd()
		dbPath = filepath.Join(cwd, dbPath)
	}

	// Initialize database
	log.Printf("Initializing database at %s", dbPath)
	db, err := database.Open(database.Config{Path: dbPath})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Create default admin accounts if none exist
	if err := seedDefaultAccounts(db); err != nil {
		log.Printf("Warning: failed to seed default accounts: %v", err)
	}

	accountRepo := database.NewAccountRepo(db)
	sessionRepo := database.NewSessionRepo(db)
	contentRepo := database.NewContentRepo(db)
	auditRepo := database.NewAuditRepo(db)

	authSvc := auth.NewService(accountRepo, sessionRepo)
	contentSvc := content.NewService(contentRepo, accountRepo, sessionRepo)

	// Sweep expired sessions hourly
	go sweepSessions(sessionRepo)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	corsOrigin := os.Getenv("GKK99_CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// API routes
	handlers := api.NewHandlers(authSvc, contentSvc, auditRepo)
	handlers.RegisterRoutes(e.Group("/api"))

	// Get port from environment or default
	port := os.Getenv("GKK99_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting GKK99 admin backend on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

// seedDefaultAccounts creates the initial admin accounts if the table is empty
func seedDefaultAccounts(db *sql.DB) error {
	accountRepo := database.NewAccountRepo(db)

	count, err := accountRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist
	}

	log.Println("Creating default admin accounts - CHANGE THESE PASSWORDS!")

	defaults := []struct {
		username string
		password string
		role     models.Role
	}{
		{"admin", "gkk99admin2024", models.RoleMainAdmin},
		{"subadmin1", "gkk99sub2024", models.RoleSubAdmin},
		{"subadmin2", "gkk99sub2024", models.RoleSubAdmin},
	}

	for _, d := range defaults {
		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}
		account := &models.Account{
			Username:     d.username,
			PasswordHash: hash,
			Role:         d.role,
			IsActive:     true,
		}
		if err := accountRepo.Create(account); err != nil {
			return err
		}
	}

	return nil
}

// sweepSessions deletes expired session rows periodically
func sweepSessions(sessions *database.SessionRepo) {
	ticker := time.NewTicker(time.Hour)
	for range ticker.C {
		if n, err := sessions.DeleteExpired(); err != nil {
			log.Printf("session sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("session sweep removed %d expired sessions", n)
		}
	}
}
