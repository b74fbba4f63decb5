package server

import (
	"context"
	"net/http"
	"time"

	"fitcourse/internal/achievement"
	"fitcourse/internal/audit"
	"fitcourse/internal/auth"
	"fitcourse/internal/billing"
	"fitcourse/internal/comment"
	"fitcourse/internal/config"
	"fitcourse/internal/email"
	"fitcourse/internal/enrollment"
	"fitcourse/internal/nutrition"
	"fitcourse/internal/payment"
	"fitcourse/internal/program"
	"fitcourse/internal/progress"
	"fitcourse/internal/rating"
	"fitcourse/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	auditLog := audit.NewLog(cfg.AuditLogPath)

	userRepo := user.NewRepository(db)
	programRepo := program.NewRepository(db)
	enrollmentRepo := enrollment.NewRepository(db)
	ratingRepo := rating.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	progressRepo := progress.NewRepository(db)
	nutritionRepo := nutrition.NewRepository(db)

	userService := user.NewService(userRepo, auditLog, cfg.JWTSecret)
	programService := program.NewService(programRepo, userRepo, enrollmentRepo, ratingRepo)
	progressService := progress.NewService(progressRepo)

	stripeProvider := billing.NewStripeProvider(cfg.StripeSecretKey, cfg.StripePriceID, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	billingService := billing.NewService(stripeProvider, userRepo, paymentRepo, auditLog, emailService)

	userHandler := user.NewHandler(userService, emailService)
	programHandler := program.NewHandler(programService)
	enrollmentHandler := enrollment.NewHandler(enrollmentRepo, programRepo)
	commentHandler := comment.NewHandler(commentRepo, programRepo)
	ratingHandler := rating.NewHandler(ratingRepo, programRepo)
	billingHandler := billing.NewHandler(billingService)
	paymentHandler := payment.NewHandler(paymentRepo)
	progressHandler := progress.NewHandler(progressService)
	achievementHandler := achievement.NewHandler(progressRepo)
	nutritionHandler := nutrition.NewHandler(nutritionRepo)
	auditHandler := audit.NewHandler(auditLog)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	// The program catalog is readable by everyone; a valid token only
	// upgrades the view from teaser to full content.
	optionalAuth := auth.OptionalAuthMiddleware(cfg.JWTSecret)
	catalog := router.Group("/")
	catalog.Use(optionalAuth)
	{
		catalog.GET("/programs", programHandler.Browse)
		catalog.GET("/programs/:programID", programHandler.Detail)
		catalog.GET("/billing/plans", billingHandler.Plans)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/me/subscription", billingHandler.MySubscription)
		protected.GET("/me/enrollments", enrollmentHandler.ListMine)
		protected.GET("/me/payments", paymentHandler.ListMine)
		protected.GET("/me/progress", progressHandler.Summary)
		protected.GET("/me/achievements", achievementHandler.ListMine)

		protected.POST("/billing/checkout", billingHandler.CreateCheckout)
		protected.POST("/billing/confirm", billingHandler.Confirm)

		protected.POST("/programs/:programID/enroll", enrollmentHandler.Enroll)
		protected.POST("/programs/:programID/comments", commentHandler.Create)
		protected.GET("/programs/:programID/comments", commentHandler.List)
		protected.PUT("/programs/:programID/rating", ratingHandler.Rate)

		protected.POST("/workouts/:workoutID/complete", progressHandler.CompleteWorkout)

		protected.POST("/nutrition", nutritionHandler.CreateEntry)
		protected.GET("/nutrition", nutritionHandler.Day)
	}

	trainer := router.Group("/trainer")
	trainer.Use(authMiddleware, auth.RequireRole("trainer", "admin"))
	{
		trainer.GET("/programs", programHandler.ListMine)
		trainer.POST("/programs", programHandler.Create)
		trainer.PUT("/programs/:programID", programHandler.Update)
		trainer.POST("/programs/:programID/publish", programHandler.Publish)
		trainer.POST("/programs/:programID/unpublish", programHandler.Unpublish)
		trainer.POST("/programs/:programID/workouts", programHandler.AddWorkout)
		trainer.POST("/workouts/:workoutID/exercises", programHandler.AddExercise)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:userID/role", userHandler.ChangeRole)
		admin.POST("/users/:userID/subscription", billingHandler.Grant)
		admin.DELETE("/users/:userID/subscription", billingHandler.Revoke)
		admin.POST("/users/:userID/enrollments/:programID", enrollmentHandler.Grant)
		admin.DELETE("/users/:userID/enrollments/:programID", enrollmentHandler.Revoke)
		admin.GET("/payments", paymentHandler.ListAll)
		admin.GET("/audit", auditHandler.List)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
