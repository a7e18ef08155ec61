package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/civicgrid/waterworks/internal/asset"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/civicgrid/waterworks/internal/billing"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/config"
	"github.com/civicgrid/waterworks/internal/connection"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	"github.com/civicgrid/waterworks/internal/consumer"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	"github.com/civicgrid/waterworks/internal/dashboard"
	dashboarddomain "github.com/civicgrid/waterworks/internal/dashboard/domain"
	"github.com/civicgrid/waterworks/internal/maintenance"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	"github.com/civicgrid/waterworks/internal/network"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
	"github.com/civicgrid/waterworks/internal/observability"
	obsmiddleware "github.com/civicgrid/waterworks/internal/observability/logger"
	obsmetrics "github.com/civicgrid/waterworks/internal/observability/metrics"
	obstracing "github.com/civicgrid/waterworks/internal/observability/tracing"
	"github.com/civicgrid/waterworks/internal/payment"
	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	"github.com/civicgrid/waterworks/internal/providers/pdf"
	"github.com/civicgrid/waterworks/internal/tariff"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	tariff.Module,
	consumer.Module,
	connection.Module,
	billing.Module,
	payment.Module,
	dashboard.Module,
	network.Module,
	asset.Module,
	maintenance.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	tariffSvc      tariffdomain.Service
	consumerSvc    consumerdomain.Service
	connectionSvc  connectiondomain.Service
	billingSvc     billingdomain.Service
	paymentSvc     paymentdomain.Service
	dashboardSvc   dashboarddomain.Service
	networkSvc     networkdomain.Service
	assetSvc       assetdomain.Service
	maintenanceSvc maintenancedomain.Service
	pdfProvider    pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	TariffSvc      tariffdomain.Service
	ConsumerSvc    consumerdomain.Service
	ConnectionSvc  connectiondomain.Service
	BillingSvc     billingdomain.Service
	PaymentSvc     paymentdomain.Service
	DashboardSvc   dashboarddomain.Service
	NetworkSvc     networkdomain.Service
	AssetSvc       assetdomain.Service
	MaintenanceSvc maintenancedomain.Service
	PDFProvider    pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine: p.Gin,
		cfg:    p.Cfg,
		db:     p.DB,
		genID:  p.GenID,

		tariffSvc:      p.TariffSvc,
		consumerSvc:    p.ConsumerSvc,
		connectionSvc:  p.ConnectionSvc,
		billingSvc:     p.BillingSvc,
		paymentSvc:     p.PaymentSvc,
		dashboardSvc:   p.DashboardSvc,
		networkSvc:     p.NetworkSvc,
		assetSvc:       p.AssetSvc,
		maintenanceSvc: p.MaintenanceSvc,
		pdfProvider:    p.PDFProvider,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	// -------- Tariffs --------
	v1.GET("/tariffs", s.ListTariffs)
	v1.POST("/tariffs", s.CreateTariff)
	v1.GET("/tariffs/resolve", s.ResolveTariff)
	v1.GET("/tariffs/:id", s.GetTariffByID)
	v1.POST("/tariffs/:id/deactivate", s.DeactivateTariff)

	// -------- Consumers --------
	v1.GET("/consumers", s.ListConsumers)
	v1.POST("/consumers", s.CreateConsumer)
	v1.GET("/consumers/:id", s.GetConsumerByID)
	v1.PATCH("/consumers/:id", s.UpdateConsumer)
	v1.GET("/consumers/:id/bills", s.ListBillsByConsumer)
	v1.GET("/consumers/:id/payments", s.ListPaymentsByConsumer)

	// -------- Connections --------
	v1.GET("/connections", s.ListConnections)
	v1.POST("/connections", s.CreateConnection)
	v1.GET("/connections/:id", s.GetConnectionByID)
	v1.PATCH("/connections/:id", s.UpdateConnection)
	v1.GET("/connections/:id/bills", s.ListBillsByConnection)

	// -------- Bills --------
	v1.POST("/bills", s.CreateBill)
	v1.POST("/bills/preview", s.PreviewBill)
	v1.GET("/bills/:id", s.GetBillByID)
	v1.GET("/bills/:id/pdf", s.GetBillPDF)
	v1.GET("/bills/:id/payments", s.ListPaymentsByBill)

	// -------- Payments --------
	v1.POST("/payments", s.ApplyPayment)
	v1.GET("/payments/:id", s.GetPaymentByID)

	// -------- Dashboard --------
	v1.GET("/dashboard/summary", s.GetDashboardSummary)

	// -------- Network --------
	v1.GET("/sources", s.ListSources)
	v1.POST("/sources", s.CreateSource)
	v1.GET("/sources/:id", s.GetSourceByID)
	v1.PATCH("/sources/:id", s.UpdateSource)
	v1.DELETE("/sources/:id", s.DeleteSource)

	v1.GET("/treatment-plants", s.ListPlants)
	v1.POST("/treatment-plants", s.CreatePlant)
	v1.GET("/treatment-plants/:id", s.GetPlantByID)
	v1.PATCH("/treatment-plants/:id", s.UpdatePlant)
	v1.DELETE("/treatment-plants/:id", s.DeletePlant)

	v1.GET("/reservoirs", s.ListReservoirs)
	v1.POST("/reservoirs", s.CreateReservoir)
	v1.GET("/reservoirs/:id", s.GetReservoirByID)
	v1.PATCH("/reservoirs/:id", s.UpdateReservoir)
	v1.DELETE("/reservoirs/:id", s.DeleteReservoir)

	v1.GET("/pipelines", s.ListPipelines)
	v1.POST("/pipelines", s.CreatePipeline)
	v1.GET("/pipelines/:id", s.GetPipelineByID)
	v1.PATCH("/pipelines/:id", s.UpdatePipeline)
	v1.DELETE("/pipelines/:id", s.DeletePipeline)

	v1.GET("/valves", s.ListValves)
	v1.POST("/valves", s.CreateValve)
	v1.GET("/valves/:id", s.GetValveByID)
	v1.PATCH("/valves/:id", s.UpdateValve)
	v1.DELETE("/valves/:id", s.DeleteValve)

	// -------- Assets / Maintenance --------
	v1.GET("/assets", s.ListAssets)
	v1.POST("/assets", s.CreateAsset)
	v1.GET("/assets/:id", s.GetAssetByID)
	v1.PATCH("/assets/:id", s.UpdateAsset)
	v1.DELETE("/assets/:id", s.DeleteAsset)
	v1.GET("/assets/:id/maintenance", s.ListMaintenanceByAsset)

	v1.GET("/maintenance", s.ListMaintenance)
	v1.POST("/maintenance", s.CreateMaintenance)
	v1.GET("/maintenance/:id", s.GetMaintenanceByID)
	v1.POST("/maintenance/:id/status", s.UpdateMaintenanceStatus)
	v1.DELETE("/maintenance/:id", s.DeleteMaintenance)
}
