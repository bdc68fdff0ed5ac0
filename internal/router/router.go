package router

import (
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/config"
	"github.com/Imacx-maria/app-imacx-sub000/internal/handler"
	"github.com/Imacx-maria/app-imacx-sub000/internal/infra"
	"github.com/Imacx-maria/app-imacx-sub000/internal/middleware"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"
	"github.com/Imacx-maria/app-imacx-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// aggregator the worker pool and cron consume.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, phcCB *infra.CircuitBreaker) (*gin.Engine, service.StockAtualService) {
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
	phcClient := infra.NewPHCClient(cfg.PHCSidecarURL)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	materialRepo := repository.NewMaterialRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	paleteRepo := repository.NewPaleteRepository(db)
	stockRepo := repository.NewStockRepository(db)
	producaoRepo := repository.NewProducaoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	stockAtualSvc := service.NewStockAtualService(materialRepo, stockRepo, producaoRepo, rdb, dispatcher, cfg.StockCacheTTL())
	paleteSvc := service.NewPaleteService(paleteRepo)
	stockSvc := service.NewStockService(stockRepo, materialRepo, stockAtualSvc)
	batchStore := service.NewBatchStore()
	entradaSvc := service.NewEntradaService(batchStore, materialRepo, paleteRepo, stockRepo, paleteSvc, stockAtualSvc)
	encomendaSvc := service.NewEncomendaService(phcClient, phcCB, entradaSvc)
	catalogoSvc := service.NewCatalogoService(materialRepo, fornecedorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	entradasH := handler.NewEntradasHandler(entradaSvc, encomendaSvc)
	stocksH := handler.NewStocksHandler(stockSvc)
	paletesH := handler.NewPaletesHandler(paleteSvc)
	stockAtualH := handler.NewStockAtualHandler(stockAtualSvc, stockSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, phcCB))

	v1 := r.Group("/v1")
	{
		batches := v1.Group("/entradas/batches")
		{
			batches.POST("", entradasH.CriarBatch)
			batches.GET("/:id", entradasH.ObterBatch)
			batches.POST("/:id/linhas", entradasH.NovaLinha)
			batches.PATCH("/:id/linhas/:idx", entradasH.AtualizarLinha)
			batches.DELETE("/:id/linhas/:idx", entradasH.RemoverLinha)
			batches.POST("/:id/linhas/:idx/guardar", entradasH.GuardarLinha)
			batches.POST("/:id/guardar", entradasH.GuardarTudo)
			batches.POST("/:id/importar-ne", entradasH.ImportarNE)
		}

		stocks := v1.Group("/stocks")
		{
			stocks.GET("", stocksH.Listar)
			stocks.POST("", stocksH.Criar)
			stocks.PATCH("/:id", stocksH.Atualizar)
			stocks.DELETE("/:id", stocksH.Eliminar)
		}

		paletes := v1.Group("/paletes")
		{
			paletes.GET("", paletesH.Listar)
			paletes.POST("", paletesH.Criar)
			paletes.GET("/proximo-numero", paletesH.ProximoNumero)
			paletes.PUT("/:id", paletesH.Atualizar)
			paletes.DELETE("/:id", paletesH.Eliminar)
		}

		atual := v1.Group("/stock-atual")
		{
			atual.GET("", stockAtualH.ListarTodos)
			atual.GET("/:materialId", stockAtualH.Obter)
			atual.PATCH("/:materialId/minimo", stockAtualH.DefinirMinimo)
			atual.PATCH("/:materialId/critico", stockAtualH.DefinirCritico)
			atual.PATCH("/:materialId/correcao", stockAtualH.DefinirCorrecao)
			atual.POST("/:materialId/correcao/aplicar", stockAtualH.AplicarCorrecao)
		}

		v1.GET("/materiais", catalogoH.ListarMateriais)
		v1.GET("/fornecedores", catalogoH.ListarFornecedores)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, stockAtualSvc
}
