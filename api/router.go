// Package api 组装 chi 路由与全局中间件
package api

import (
	"net/http"
	"time"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/handlers"
	"aigc-studio-mock-api/pkg/metrics"
	customMiddleware "aigc-studio-mock-api/pkg/middleware"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Dependencies 路由依赖
type Dependencies struct {
	Config    *config.Config
	DB        database.DatabaseInterface
	Simulator *simulate.Simulator
	Signer    *utils.PresignSigner
	Tokens    utils.TokenSource
	Logger    *zap.Logger
}

// NewRouter 创建完整的 HTTP 路由
// 所有业务端点集中在一个 chi 路由器中管理
func NewRouter(deps Dependencies) *chi.Mux {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Signer == nil {
		deps.Signer = utils.NewPresignSigner(deps.Config.JWTSecret, deps.Config.StorageBaseURL, deps.Config.PresignTTL)
	}

	router := chi.NewRouter()

	// 设置全局中间件
	setupMiddleware(router, deps.Config, deps.Logger)

	// 设置路由
	setupRoutes(router, deps)

	return router
}

// setupMiddleware 设置全局中间件
func setupMiddleware(router *chi.Mux, cfg *config.Config, log *zap.Logger) {
	// 基础中间件
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	// Normalize path and restore scheme/host before logging and routing
	router.Use(customMiddleware.Normalize())
	router.Use(customMiddleware.RequestLogger(log))
	router.Use(customMiddleware.Recovery(cfg, log))

	// CORS中间件
	router.Use(customMiddleware.CORS(cfg))

	// 超时中间件
	router.Use(middleware.Timeout(30 * time.Second))

	// 压缩中间件
	router.Use(middleware.Compress(5))

	// 开发环境额外中间件
	if cfg.IsDevelopment() {
		router.Use(middleware.Heartbeat("/ping"))
	}
}

// setupRoutes 设置所有API路由
func setupRoutes(router *chi.Mux, deps Dependencies) {
	cfg, db, sim, log := deps.Config, deps.DB, deps.Simulator, deps.Logger

	// 创建处理器
	authHandler := handlers.NewAuthHandler(cfg, db, log)
	usersHandler := handlers.NewUsersHandler(cfg, db, log)
	orgsHandler := handlers.NewOrgsHandler(cfg, db, log)
	projectsHandler := handlers.NewProjectsHandler(cfg, db, log)
	chaptersHandler := handlers.NewChaptersHandler(cfg, db, sim, log)
	charactersHandler := handlers.NewCharactersHandler(cfg, db, log)
	assetsHandler := handlers.NewAssetsHandler(cfg, db, log)
	storageHandler := handlers.NewStorageHandler(cfg, db, deps.Signer, deps.Tokens, log)
	tasksHandler := handlers.NewTasksHandler(cfg, db, sim, log)
	agentsHandler := handlers.NewAgentsHandler(cfg, db, sim, log)
	notificationsHandler := handlers.NewNotificationsHandler(cfg, db, log)
	plansHandler := handlers.NewPlansHandler(cfg, db, log)
	paymentsHandler := handlers.NewPaymentsHandler(cfg, db, sim, log)
	apiKeysHandler := handlers.NewAPIKeysHandler(cfg, db, log)
	ttsHandler := handlers.NewTTSHandler(cfg, db, sim, log)

	// 健康检查与指标端点
	router.Get("/health", authHandler.HealthCheck)
	router.Handle("/metrics", metrics.Handler())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, "Not Found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed")
	})

	// API路由组
	router.Route("/api", func(r chi.Router) {
		// 公开路由（不需要认证）
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/token", authHandler.Token)
		})
		r.Get("/plans", plansHandler.ListPlans)
		r.Get("/plans/{plan_id}", plansHandler.GetPlan)
		r.Post("/payments/wechat/callback", paymentsHandler.HandleWechatCallback)

		// 需要认证的路由
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AuthMiddleware(db, log))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/organizations", orgsHandler.ListMyOrganizations)
			r.Patch("/users/me", usersHandler.UpdateMe)

			// 项目、场景、章节、分镜与角色
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectsHandler.ListProjects)
				r.Post("/", projectsHandler.CreateProject)

				r.Route("/{project_id}", func(r chi.Router) {
					r.Get("/", projectsHandler.GetProject)
					r.Patch("/", projectsHandler.UpdateProject)
					r.Delete("/", projectsHandler.DeleteProject)
					r.Get("/scenes", projectsHandler.ListScenes)

					r.Post("/storyboards:generate-images", projectsHandler.GenerateStoryboards(models.TaskGenerateStoryboardImages))
					r.Post("/storyboards:generate-keyframes", projectsHandler.GenerateStoryboards(models.TaskGenerateStoryboardKeyframes))
					r.Post("/storyboards:generate-videos", projectsHandler.GenerateStoryboards(models.TaskGenerateStoryboardVideos))

					r.Get("/chapters", chaptersHandler.ListChapters)
					r.Post("/chapters", chaptersHandler.CreateChapter)
					r.Route("/chapters/{chapter_id}", func(r chi.Router) {
						r.Patch("/", chaptersHandler.UpdateChapter)
						r.Delete("/", chaptersHandler.DeleteChapter)
						r.Post("/split", chaptersHandler.SplitChapter)
						r.Get("/storyboards", chaptersHandler.ListStoryboards)
						r.Patch("/storyboards/{storyboard_id}", chaptersHandler.UpdateStoryboard)
					})

					r.Get("/characters", charactersHandler.ListCharacters)
					r.Post("/characters", charactersHandler.CreateCharacter)
					r.Route("/characters/{character_id}", func(r chi.Router) {
						r.Get("/", charactersHandler.GetCharacter)
						r.Patch("/", charactersHandler.UpdateCharacter)
						r.Delete("/", charactersHandler.DeleteCharacter)
						r.Post("/import-portraits", charactersHandler.ImportPortraits)
					})
				})
			})

			// 素材库
			r.Route("/assets", func(r chi.Router) {
				r.Get("/", assetsHandler.ListAssets)
				r.Post("/", assetsHandler.CreateAsset)
				r.Patch("/{asset_id}", assetsHandler.UpdateAsset)
				r.Delete("/{asset_id}", assetsHandler.DeleteAsset)
			})

			// 任务
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", tasksHandler.ListTasks)
				r.Post("/", tasksHandler.CreateTask)
				r.Post("/text-to-image", tasksHandler.TextToImage)
				r.Post("/generate-character-images", tasksHandler.GenerateCharacterImages)
				r.Get("/{task_id}", tasksHandler.GetTask)
				r.Post("/{task_id}/retry", tasksHandler.RetryTask)
			})

			// 对象存储
			r.Route("/storage", func(r chi.Router) {
				r.With(customMiddleware.MaxBodySize(cfg.MaxUploadBytes)).Post("/upload", storageHandler.Upload)
				r.Get("/presign", storageHandler.Presign)
			})

			// 智能体
			r.Post("/agents/workflow/run", agentsHandler.RunWorkflow)
			r.Post("/agents/generate-characters", agentsHandler.GenerateCharacters)

			// 通知
			r.Get("/notifications", notificationsHandler.ListNotifications)
			r.Patch("/notifications/{notification_id}:read", notificationsHandler.MarkRead)

			// 订阅与支付
			r.Post("/plans/subscribe", plansHandler.Subscribe)
			r.Post("/payments/wechat/create", paymentsHandler.CreateWechatOrder)
			r.Get("/payments/wechat/status/{order_id}", paymentsHandler.GetWechatOrderStatus)

			// TTS
			r.Get("/tts/voices", ttsHandler.ListVoices)
			r.Post("/tts/synthesize", ttsHandler.Synthesize)

			// 管理员路由
			r.Group(func(r chi.Router) {
				r.Use(customMiddleware.RequireAdmin)

				r.Get("/users", usersHandler.ListUsers)
				r.Post("/users", usersHandler.CreateUser)
				r.Delete("/users/{user_id}", usersHandler.DeleteUser)

				r.Post("/plans", plansHandler.CreatePlan)
				r.Patch("/plans/{plan_id}", plansHandler.UpdatePlan)
				r.Delete("/plans/{plan_id}", plansHandler.DeletePlan)

				r.Route("/settings/api-keys", func(r chi.Router) {
					r.Get("/", apiKeysHandler.ListAPIKeys)
					r.Post("/", apiKeysHandler.CreateAPIKey)
					r.Patch("/{key_id}", apiKeysHandler.UpdateAPIKey)
					r.Delete("/{key_id}", apiKeysHandler.DeleteAPIKey)
				})
			})
		})
	})
}
