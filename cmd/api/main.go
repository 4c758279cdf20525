package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/interview-api/internal/config"
	"github.com/yourusername/interview-api/internal/domain/entity"
	"github.com/yourusername/interview-api/internal/domain/repository"
	"github.com/yourusername/interview-api/internal/handler"
	"github.com/yourusername/interview-api/internal/middleware"
	memRepo "github.com/yourusername/interview-api/internal/repository/memory"
	pgRepo "github.com/yourusername/interview-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/interview-api/internal/repository/redis"
	"github.com/yourusername/interview-api/internal/service"
	"github.com/yourusername/interview-api/internal/service/scoring"
	"github.com/yourusername/interview-api/pkg/auth"
	"github.com/yourusername/interview-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Выбираем хранилище ОДИН раз на старте процесса: PostgreSQL, если он
	// сконфигурирован и доступен, иначе демо-режим в памяти. Сервисы не знают,
	// какая реализация активна, и никогда не переключаются на лету.
	var (
		sessionRepo  repository.SessionRepository
		questionRepo repository.QuestionRepository
		adminRepo    repository.AdminRepository
	)

	if cfg.Database.Host != "" {
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			os.Exit(1)
		}

		// Применяем миграции
		if err := database.MigrateDB(db); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}

		sessionRepo = pgRepo.NewSessionRepo(db)
		questionRepo = pgRepo.NewQuestionRepo(db)
		adminRepo = pgRepo.NewAdminRepo(db)
		log.Println("Хранилище: PostgreSQL")
	} else {
		memQuestionRepo := memRepo.NewQuestionRepo()
		seedDemoQuestions(memQuestionRepo)

		sessionRepo = memRepo.NewSessionRepo()
		questionRepo = memQuestionRepo
		adminRepo = memRepo.NewAdminRepo()
		log.Println("Хранилище: демо-режим в памяти (DATABASE_HOST не задан, данные не переживут перезапуск)")
	}

	// Кеш отчётов в Redis - опционален
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		cacheRepo, err = redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")
	} else {
		log.Println("Redis не сконфигурирован, кеш отчётов отключен")
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	questionService := service.NewQuestionService(questionRepo)
	interviewService := service.NewInterviewService(sessionRepo, questionService, scoring.NewEngine(), cacheRepo)
	authService := service.NewAuthService(adminRepo, jwtService)

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize EmailService: %v", err)
			os.Exit(1)
		}
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	interviewHandler := handler.NewInterviewHandler(interviewService, emailService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация администраторов
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Каталог вопросов
		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)

			questionWithID := questions.Group("/:id")
			questionWithID.Use(middleware.ExtractUintParam("id", "questionID")) // Применяем middleware
			{
				questionWithID.GET("", questionHandler.GetQuestion)

				adminQuestion := questionWithID.Group("")
				adminQuestion.Use(authMiddleware.RequireAuth())
				{
					adminQuestion.PUT("", questionHandler.UpdateQuestion)
					adminQuestion.DELETE("", questionHandler.DeleteQuestion)
				}
			}

			adminCreateQuestion := questions.Group("")
			adminCreateQuestion.Use(authMiddleware.RequireAuth())
			{
				adminCreateQuestion.POST("", questionHandler.CreateQuestion)
			}
		}

		// Сессии интервью
		interviews := api.Group("/interviews")
		{
			interviews.POST("", interviewHandler.CreateSession)

			// Список и экспорт - только для администраторов
			adminInterviews := interviews.Group("")
			adminInterviews.Use(authMiddleware.RequireAuth())
			{
				adminInterviews.GET("", interviewHandler.ListSessions)
				adminInterviews.GET("/export", interviewHandler.ExportSessions)
			}

			interviewWithID := interviews.Group("/:id")
			interviewWithID.Use(middleware.ExtractSessionID("id", "sessionID"))
			{
				interviewWithID.GET("", interviewHandler.GetSession)
				interviewWithID.PUT("/answer/:questionIndex", interviewHandler.SubmitAnswer)
				interviewWithID.PUT("/complete", interviewHandler.CompleteSession)
				interviewWithID.GET("/report", interviewHandler.GetReport)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 15
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// После получения сигнала SIGINT или SIGTERM завершаем работу
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}

// seedDemoQuestions наполняет in-memory каталог стартовым набором вопросов,
// чтобы демо-режим работал сразу после запуска
func seedDemoQuestions(repo repository.QuestionRepository) {
	demo := []entity.Question{
		{
			Title:              "Tell me about yourself and your background",
			Description:        "Opening question to learn about the candidate's experience and career path",
			Category:           entity.CategoryHR,
			Difficulty:         entity.DifficultyEasy,
			ExpectedKeywords:   entity.StringArray{"experience", "education", "skills"},
			EvaluationCriteria: "Clear structure, relevant highlights, confident delivery",
			IsActive:           true,
		},
		{
			Title:              "Why do you want to work for our company?",
			Description:        "Motivation question to gauge candidate's interest and research",
			Category:           entity.CategoryHR,
			Difficulty:         entity.DifficultyEasy,
			ExpectedKeywords:   entity.StringArray{"culture", "growth", "mission"},
			EvaluationCriteria: "Company-specific motivation, alignment with role",
			IsActive:           true,
		},
		{
			Title:              "Explain the difference between a process and a thread",
			Description:        "Operating systems fundamentals",
			Category:           entity.CategoryTechnical,
			Difficulty:         entity.DifficultyMedium,
			ExpectedKeywords:   entity.StringArray{"memory", "isolation", "scheduler", "shared"},
			EvaluationCriteria: "Correct definitions, understanding of memory isolation and scheduling",
			IsActive:           true,
		},
		{
			Title:              "How would you design a URL shortening service?",
			Description:        "System design question covering storage, hashing and scaling",
			Category:           entity.CategoryTechnical,
			Difficulty:         entity.DifficultyHard,
			ExpectedKeywords:   entity.StringArray{"hash", "database", "cache", "scale"},
			EvaluationCriteria: "Covers data model, collision handling, read-heavy optimization",
			IsActive:           true,
		},
		{
			Title:              "Describe a time you had a conflict with a teammate",
			Description:        "Behavioral question about conflict resolution",
			Category:           entity.CategoryBehavioral,
			Difficulty:         entity.DifficultyMedium,
			ExpectedKeywords:   entity.StringArray{"communication", "compromise", "resolution"},
			EvaluationCriteria: "Concrete situation, constructive resolution, lessons learned",
			IsActive:           true,
		},
	}

	for i := range demo {
		if err := repo.Create(&demo[i]); err != nil {
			log.Printf("Ошибка сидирования демо-вопроса %q: %v", demo[i].Title, err)
		}
	}
	log.Printf("Демо-каталог: загружено %d вопросов", len(demo))
}
