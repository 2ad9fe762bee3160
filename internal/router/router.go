package router

import (
	"time"

	"estapark/internal/config"
	"estapark/internal/handler"
	"estapark/internal/infra"
	"estapark/internal/middleware"
	"estapark/internal/repository"
	"estapark/internal/service"
	"estapark/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// worker handlers for the pool.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, placaCB *infra.CircuitBreaker, loc *time.Location) (*gin.Engine, worker.Handlers) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	placaClient := infra.NewPlacaClient(cfg.BrasilAPIURL, time.Duration(cfg.PlacaTimeoutSeconds)*time.Second)
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	sessaoRepo := repository.NewSessaoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	mensalistaRepo := repository.NewMensalistaRepository(db)
	configRepo := repository.NewConfigRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	configSvc := service.NewConfigService(configRepo, rdb)
	patioSvc := service.NewPatioService(sessaoRepo, caixaRepo, mensalistaRepo, configSvc, dispatcher, loc)
	mensalistaSvc := service.NewMensalistaService(mensalistaRepo, caixaRepo, configSvc, dispatcher, loc)
	caixaSvc := service.NewCaixaService(caixaRepo, dispatcher, loc)
	placaSvc := service.NewPlacaLookupService(placaClient, placaCB, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	patioH := handler.NewPatioHandler(patioSvc)
	historicoH := handler.NewHistoricoHandler(patioSvc)
	mensalistasH := handler.NewMensalistaHandler(mensalistaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	configH := handler.NewConfigHandler(configSvc)
	placaH := handler.NewPlacaHandler(placaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, placaCB))

	// Protected routes — single shared token, every terminal uses the same one
	tokenMW := middleware.TokenAuth(cfg.APIToken)
	v1 := r.Group("/v1", tokenMW)
	{
		patio := v1.Group("/patio")
		{
			patio.POST("/entrada", patioH.Entrada)
			patio.POST("/saida", patioH.Saida)
			patio.GET("", patioH.ListAtivas)
			patio.GET("/ativo", patioH.BuscarAtiva)
			patio.GET("/dashboard", patioH.Dashboard)
		}

		v1.GET("/historico", historicoH.List)
		v1.GET("/historico/:placa", historicoH.PorPlaca)
		v1.GET("/relatorio/resumo", historicoH.Resumo)

		mensalistas := v1.Group("/mensalistas")
		{
			mensalistas.POST("", mensalistasH.Upsert)
			mensalistas.GET("", mensalistasH.List)
			mensalistas.POST("/pagamento", mensalistasH.RegistrarPagamento)
			mensalistas.PATCH("/:id/ativo", mensalistasH.SetAtivo)
			mensalistas.POST("/lembretes", mensalistasH.EnviarLembretes)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.GET("/dashboard", caixaH.Dashboard)
			caixa.GET("/relatorio", caixaH.Relatorio)
			caixa.POST("/fechamento", caixaH.Fechar)
			caixa.GET("/fechamentos", caixaH.ListFechamentos)
			caixa.GET("/fechamentos/:id/pdf", caixaH.FechamentoPDF)
			caixa.POST("/turnos", caixaH.AbrirTurno)
			caixa.POST("/turnos/fechar", caixaH.FecharTurno)
			caixa.GET("/turnos/atual", caixaH.TurnoAtual)
		}

		v1.GET("/configuracoes", configH.Get)
		v1.PUT("/configuracoes", configH.Atualizar)

		v1.GET("/placa/:placa", placaH.Consultar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := worker.Handlers{
		Auditoria: worker.NewAuditoriaWorker(auditoriaRepo),
		Lembrete:  worker.NewLembreteWorker(mailer),
	}
	return r, handlers
}
