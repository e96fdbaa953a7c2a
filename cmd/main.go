package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/estatehq/sales-service/internal/app"
	"github.com/estatehq/sales-service/internal/config"
	"github.com/estatehq/sales-service/internal/controllers"
	"github.com/estatehq/sales-service/internal/middleware"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/routes"
	"github.com/estatehq/sales-service/internal/services"
	"github.com/estatehq/sales-service/internal/storage"
	"github.com/estatehq/sales-service/internal/utils"
)

func main() {
	utils.InitLogger("sales-service")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize sales-service:", err)
	}
	defer application.Close()

	projectRepo := repositories.NewProjectRepository(application.DB)
	buildingRepo := repositories.NewBuildingRepository(application.DB)
	floorRepo := repositories.NewFloorRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	leadRepo := repositories.NewLeadRepository(application.DB)

	if cfg.SeedTestData {
		if err := app.SeedTestData(context.Background(), projectRepo, buildingRepo, floorRepo, unitRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	var store storage.Store
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			utils.Logger.Fatal("Failed to initialize S3 storage:", err)
		}
		store = s3Store
	} else {
		localStore, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			utils.Logger.Fatal("Failed to initialize local storage:", err)
		}
		store = localStore
	}

	projectService := services.NewProjectService(projectRepo, buildingRepo, floorRepo, unitRepo)
	buildingService := services.NewBuildingService(buildingRepo, projectRepo, floorRepo)
	floorService := services.NewFloorService(floorRepo, unitRepo, buildingRepo)
	unitService := services.NewUnitService(unitRepo, floorRepo)
	leadService := services.NewLeadService(leadRepo, sgClient, twClient, services.LeadNotifierConfig{
		FromEmail:  cfg.SendgridFromEmail,
		SalesEmail: cfg.SalesTeamEmail,
		FromPhone:  cfg.TwilioFromPhone,
		SalesPhone: cfg.SalesTeamPhone,
		OrgName:    cfg.OrganizationName,
	})
	detectionService := services.NewDetectionService(cfg.OpenAIAPIKey, cfg.UploadDir)
	translationService := services.NewTranslationService(cfg.OpenAIAPIKey)
	digestService := services.NewDigestService(leadRepo, unitRepo)

	healthController := controllers.NewHealthController()
	projectController := controllers.NewProjectController(projectService)
	buildingController := controllers.NewBuildingController(buildingService, floorService)
	floorController := controllers.NewFloorController(floorService)
	unitController := controllers.NewUnitController(unitService)
	leadController := controllers.NewLeadController(leadService)
	aiController := controllers.NewAIController(detectionService, translationService)
	uploadController := controllers.NewUploadController(store)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Projects, projectController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectByID, projectController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectExplore, projectController.ExploreHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectBuild, buildingController.ListByProjectHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingByID, buildingController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingViewer, buildingController.ViewerHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuildingFloors, floorController.ListByBuildingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.FloorByID, floorController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Units, unitController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.UnitByID, unitController.GetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Leads, leadController.CreateHandler).Methods(http.MethodPost)

	if cfg.S3Bucket == "" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))),
		)
	}

	// Admin
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AdminAuth(cfg.JWTSecret))

	secured.HandleFunc(routes.AdminProjects, projectController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminProjectByID, projectController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AdminProjectByID, projectController.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.AdminBuildings, buildingController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminBuildingByID, buildingController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AdminBuildingByID, buildingController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.AdminFloorPositions, buildingController.BatchFloorPositionsHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.AdminFloors, floorController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminFloorByID, floorController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AdminFloorByID, floorController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.AdminFloorCopy, floorController.CopyLayoutHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.AdminUnits, unitController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminUnitByID, unitController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AdminUnitByID, unitController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.AdminUnitStatus, unitController.ChangeStatusHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.AdminLeads, leadController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AdminLeadStatus, leadController.UpdateStatusHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AdminLeadByID, leadController.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.AdminUpload, uploadController.UploadHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.AdminDetectApartments, aiController.DetectApartmentsHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminDetectFloors, aiController.DetectFloorsHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AdminTranslate, aiController.TranslateHandler).Methods(http.MethodPost)

	c := cron.New()
	if _, err := c.AddFunc("0 7 * * *", func() {
		digestService.Run(context.Background())
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule daily digest cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("sales-service failed to start:", err)
	}
}
