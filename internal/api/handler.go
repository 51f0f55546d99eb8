package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KDZFoundation/agrooptima/internal/config"
	"github.com/KDZFoundation/agrooptima/internal/engine"
	"github.com/KDZFoundation/agrooptima/internal/exporter"
	"github.com/KDZFoundation/agrooptima/internal/hierarchy"
	"github.com/KDZFoundation/agrooptima/internal/importer"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
	"github.com/KDZFoundation/agrooptima/internal/retriever"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// Handler API surface of the advisory engine.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	catalog   *ratecatalog.Catalog
	engine    *engine.Engine
	retriever *retriever.Retriever
	annotator *hierarchy.Annotator
	importer  *importer.Importer
	exporter  *exporter.Exporter
	logger    *zap.Logger

	// saveConfig persists PATCH /config changes; overridable in tests.
	saveConfig func(*config.AppConfig) error
}

// NewHandler wires the API over its collaborators. A nil logger disables
// logging.
func NewHandler(st *store.Store, cfg *config.AppConfig, catalog *ratecatalog.Catalog,
	ret *retriever.Retriever, ann *hierarchy.Annotator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:      st,
		cfg:        cfg,
		catalog:    catalog,
		engine:     engine.New(catalog, policyFromConfig(cfg.Policy)),
		retriever:  ret,
		annotator:  ann,
		importer:   importer.New(st, logger),
		exporter:   exporter.New(),
		logger:     logger,
		saveConfig: config.SaveConfig,
	}
}

// RegisterRoutes mounts all endpoints on the group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	router.GET("/rates", h.ListRates)

	router.GET("/farmers", h.ListFarmers)
	router.GET("/farmers/:id", h.GetFarmer)
	router.POST("/farmers", h.UpsertFarmer)

	router.GET("/farmers/:id/fields", h.ListFields)
	router.POST("/farmers/:id/fields", h.CreateField)
	router.PATCH("/fields/:fieldId", h.UpdateField)
	router.PUT("/fields/:fieldId/history", h.UpsertHistory)
	router.DELETE("/fields/:fieldId/history/:year", h.DeleteHistory)

	router.GET("/farmers/:id/report", h.GetReport)
	router.GET("/farmers/:id/report/export", h.ExportReport)
	router.GET("/farmers/:id/hierarchy", h.GetHierarchy)

	router.GET("/farmers/:id/documents", h.ListDocuments)
	router.POST("/farmers/:id/documents", h.IndexDocument)
	router.GET("/search", h.SearchChunks)

	router.GET("/import/templates", h.ListTemplates)
	router.GET("/import/log", h.ListImportLog)
	router.POST("/farmers/:id/import", h.Import)
}

func policyFromConfig(p config.PolicyConfig) engine.Policy {
	return engine.Policy{
		AreaTolerance:      p.AreaTolerance,
		AreaEpsilon:        p.AreaEpsilon,
		PointValuePLN:      p.PointValuePLN,
		EURToPLN:           p.EURToPLN,
		EntryAreaShare:     p.EntryAreaShare,
		EntryPointsPerHa:   p.EntryPointsPerHa,
		SchemeDensityLimit: p.SchemeDensityLimit,
	}
}
