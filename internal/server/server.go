// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/parth10-05/verita/internal/cache"
	"github.com/parth10-05/verita/internal/config"
	"github.com/parth10-05/verita/internal/database"
	"github.com/parth10-05/verita/internal/mail"
	"github.com/parth10-05/verita/internal/middleware"
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"
	"github.com/parth10-05/verita/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const authCookieName = "token"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	commentRepo      repository.CommentRepository
	voteRepo         repository.VoteRepository
	tagRepo          repository.TagRepository
	notificationRepo repository.NotificationRepository
	adminLogRepo     repository.AdminLogRepository
	statsRepo        repository.StatsRepository

	authService         *service.AuthService
	userService         *service.UserService
	questionService     *service.QuestionService
	answerService       *service.AnswerService
	commentService      *service.CommentService
	voteService         *service.VoteService
	notificationService *service.NotificationService
	adminService        *service.AdminService
}

// NewServer creates a server instance, establishing its own database and
// Redis connections.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient(), mail.NewMailer(cfg)), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mailer mail.Mailer) *Server {
	s := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("verita-api"),
		userRepo:         repository.NewUserRepository(db),
		questionRepo:     repository.NewQuestionRepository(db),
		answerRepo:       repository.NewAnswerRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		voteRepo:         repository.NewVoteRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		adminLogRepo:     repository.NewAdminLogRepository(db),
		statsRepo:        repository.NewStatsRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo, s.questionRepo, s.answerRepo)
	s.authService = service.NewAuthService(s.userRepo, mailer, cfg)
	s.notificationService = service.NewNotificationService(s.notificationRepo, s.userRepo)
	s.questionService = service.NewQuestionService(
		s.questionRepo, s.answerRepo, s.commentRepo, s.voteRepo, s.tagRepo,
		s.notificationService, s.userService.IsAdmin)
	s.answerService = service.NewAnswerService(
		s.answerRepo, s.questionRepo, s.commentRepo, s.voteRepo,
		s.notificationService, s.userService.IsAdmin)
	s.commentService = service.NewCommentService(
		s.commentRepo, s.questionRepo, s.answerRepo,
		s.notificationService, s.userService.IsAdmin)
	s.voteService = service.NewVoteService(s.voteRepo, s.questionRepo, s.answerRepo)
	s.adminService = service.NewAdminService(
		s.userRepo, s.questionRepo, s.answerRepo, s.tagRepo, s.adminLogRepo,
		s.statsRepo, s.questionService, s.answerService, cfg.AdminSecret)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.AuthRequired(), s.Me)
	auth.Post("/forgot-password/send-otp", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "send_otp"), s.SendOTP)
	auth.Post("/forgot-password/verify-otp", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "verify_otp"), s.VerifyOTP)
	auth.Post("/forgot-password/reset-password", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "reset_password"), s.ResetPassword)

	// Public question routes (browse/search)
	questions := api.Group("/questions")
	questions.Get("/", s.GetQuestions)
	questions.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchQuestions)
	questions.Get("/:id/answers", s.GetQuestionAnswers)
	questions.Get("/:id", s.GetQuestion)

	// Public answer routes
	answers := api.Group("/answers")
	answers.Get("/question/:questionId", s.GetAnswersByQuestion)
	answers.Get("/:id", s.GetAnswer)

	// Public comment listings
	comments := api.Group("/comments")
	comments.Get("/questions/:questionId", s.GetQuestionComments)
	comments.Get("/answers/:answerId", s.GetAnswerComments)

	// Public tag routes
	tags := api.Group("/tags")
	tags.Get("/", s.GetTags)
	tags.Get("/popular", s.GetPopularTags)
	tags.Get("/:slug/questions", s.GetQuestionsByTag)

	// Public user profiles. Specific /:userId/:resource routes come before
	// the generic /:userId route.
	users := api.Group("/users")
	users.Get("/:userId/stats", s.GetUserStats)
	users.Get("/:userId/questions", s.GetUserQuestions)
	users.Get("/:userId/answers", s.GetUserAnswers)
	users.Get("/:userId", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protected.Put("/users/profile", s.UpdateMyProfile)

	protectedQuestions := protected.Group("/questions", s.UserRequired())
	protectedQuestions.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_question"), s.CreateQuestion)
	protectedQuestions.Put("/:id", s.UpdateQuestion)
	protectedQuestions.Delete("/:id", s.DeleteQuestion)

	protectedAnswers := protected.Group("/answers", s.UserRequired())
	protectedAnswers.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_answer"), s.CreateAnswer)
	protectedAnswers.Post("/:id/accept", s.AcceptAnswer)
	protectedAnswers.Delete("/:id/accept", s.UnacceptAnswer)
	protectedAnswers.Put("/:id", s.UpdateAnswer)
	protectedAnswers.Delete("/:id", s.DeleteAnswer)

	protectedComments := protected.Group("/comments", s.UserRequired())
	protectedComments.Post("/", middleware.RateLimit(
		s.redis, 20, 5*time.Minute, "create_comment"), s.CreateComment)
	protectedComments.Put("/:commentId", s.UpdateComment)
	protectedComments.Delete("/:commentId", s.DeleteComment)

	votes := protected.Group("/votes", s.UserRequired())
	votes.Post("/", s.CastVote)
	votes.Post("/questions/:questionId", s.VoteQuestion)
	votes.Get("/questions/:questionId", s.GetQuestionVote)
	votes.Post("/answers/:answerId", s.VoteAnswer)
	votes.Get("/answers/:answerId", s.GetAnswerVote)

	notifications := protected.Group("/notifications", s.UserRequired())
	notifications.Get("/", s.GetNotifications)
	notifications.Get("/unread-count", s.GetUnreadCount)
	notifications.Put("/read-all", s.MarkAllNotificationsRead)
	notifications.Put("/:id/read", s.MarkNotificationRead)
	notifications.Delete("/:id", s.DeleteNotification)

	// Admin bootstrap is open so the first admin can be created; the
	// handler itself is guarded by the shared admin secret.
	api.Post("/admin/create", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "admin_create"), s.CreateAdmin)

	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/dashboard", s.GetDashboardStats)
	admin.Get("/users", s.GetAllUsers)
	admin.Put("/users/:userId/ban", s.BanUser)
	admin.Put("/users/:userId/unban", s.UnbanUser)
	admin.Delete("/users/:userId", s.DeleteUser)
	admin.Get("/questions", s.GetAllQuestions)
	admin.Delete("/questions/:questionId", s.AdminDeleteQuestion)
	admin.Delete("/answers/:answerId", s.AdminDeleteAnswer)
	admin.Post("/tags", s.AdminCreateTag)
	admin.Put("/tags/:tagId", s.AdminUpdateTag)
	admin.Delete("/tags/:tagId", s.AdminDeleteTag)
	admin.Get("/logs", s.GetAdminLogs)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The service degrades without Redis (no rate limits, no unread cache)
	// but keeps serving, so a missing client does not fail readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The credential is the
// "token" cookie when present, else a Bearer Authorization header.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(authCookieName)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "verita-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "verita-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}
		if user.IsBanned {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("This account is banned"))
		}

		c.Locals("userID", user.ID)
		c.Locals("role", string(user.Role))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// UserRequired returns middleware that rejects guest-role accounts with 403.
// Must be placed after AuthRequired so that the role is available in locals.
func (s *Server) UserRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == string(models.RoleGuest) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("A full account is required"))
		}
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != string(models.RoleAdmin) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// Start starts the server and blocks until it shuts down.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Verita API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				"error", err, "path", c.Path())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
