// Package bootstrap loads configuration, wires the application together and
// owns the lifecycle of the HTTP server.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	httpHandler "github.com/Sujith0604/Blog/internal/handler/http"
	gormpersistence "github.com/Sujith0604/Blog/internal/infra/persistence/gorm"
	"github.com/Sujith0604/Blog/internal/infra/setup"
	"github.com/Sujith0604/Blog/internal/middleware"
	"github.com/Sujith0604/Blog/internal/service"
	"github.com/Sujith0604/Blog/internal/upload"
)

// Config holds everything read from the environment at startup. It is
// immutable after LoadConfig and handed to the constructors that need it.
type Config struct {
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string
	JWTExpiryHours int
	BcryptCost     int
	ServerPort     string
	LogLevel       string
	AppEnv         string
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigin     string
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file when one exists. Secrets have no defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		AppEnv:         os.Getenv("APP_ENV"),
		UploadDir:      os.Getenv("UPLOAD_DIR"),
		CORSOrigin:     os.Getenv("CORS_ALLOWED_ORIGIN"),
		JWTExpiryHours: 24,
		BcryptCost:     bcrypt.DefaultCost,
		MaxUploadBytes: 50 << 20,
	}

	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.JWTExpiryHours = n
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BcryptCost = n
		}
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:5173"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App bundles the application's components for startup and shutdown.
type App struct {
	Config     *Config
	Log        *logrus.Logger
	DB         *gorm.DB
	HttpServer *http.Server
}

// NewApp loads the configuration and wires every component together.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := newLogger(cfg)
	log.Info("Configuration loaded successfully")

	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	router, err := NewRouter(db, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("Router setup complete")

	app := &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		HttpServer: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: router,
		},
	}
	return app, nil
}

// NewRouter wires repositories, services and handlers over db and builds
// the gin engine with all routes and middlewares. Split out from NewApp so
// tests can run the full surface against a throwaway database.
func NewRouter(db *gorm.DB, cfg *Config, log *logrus.Logger) (*gin.Engine, error) {
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)

	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	postService := service.NewPostService(postRepo)

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}

	authHandler := httpHandler.NewAuthHandler(authService)
	postHandler := httpHandler.NewPostHandler(postService, uploads)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(corsMiddleware(cfg.CORSOrigin))
	router.Use(bodyLimitMiddleware(cfg.MaxUploadBytes))

	authRequired := middleware.Auth(authService)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.GET("/profile", authRequired, authHandler.Profile)

	router.POST("/createpost", authRequired, postHandler.Create)
	router.GET("/createpost", postHandler.List)
	router.PATCH("/createpost", authRequired, postHandler.Update)
	router.DELETE("/createpost/:id", authRequired, postHandler.Delete)
	router.GET("/singlepost/:id", postHandler.Get)

	router.Static("/uploads", uploads.Dir())

	return router, nil
}

// Start runs the HTTP server in a background goroutine.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	a.Log.Info("Application shutdown complete.")
}

func newLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	return log
}

// LoggerMiddleware records one log line per request with status, latency
// and origin, at a level matching the status class.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}

// corsMiddleware allows the configured frontend origin with credentials,
// matching how the browser client sends the token cookie.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// bodyLimitMiddleware caps the request body; oversized uploads fail inside
// the handlers when the reader hits the limit.
func bodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
