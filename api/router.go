// Package api provides the REST API for the Health Management System
//
// @title Health Management System API
// @version 1.0
// @description Personal health tracking API: metrics calculation, record history and report export
// @host localhost:8080
// @BasePath /api
// @schemes http
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/snehamhatre1409-sys/Health-Management-System/data"
	"github.com/snehamhatre1409-sys/Health-Management-System/export"
	"github.com/snehamhatre1409-sys/Health-Management-System/messaging"
	"github.com/snehamhatre1409-sys/Health-Management-System/service"
	"github.com/snehamhatre1409-sys/Health-Management-System/settings"
	"github.com/snehamhatre1409-sys/Health-Management-System/types"

	_ "github.com/snehamhatre1409-sys/Health-Management-System/api/docs"
)

// allowedOrigins collects the CORS allow-list, extended through the
// ALLOWED_IPS environment variable. Evaluated at route registration so
// values loaded from .env are picked up.
func allowedOrigins() []string {
	origins := []string{"http://localhost:3000", "http://localhost:8080"}
	additionalIPs := os.Getenv("ALLOWED_IPS")
	if additionalIPs != "" {
		ips := strings.Split(additionalIPs, ",")
		for _, ip := range ips {
			ip = strings.TrimSpace(ip)
			origins = append(origins, fmt.Sprintf("http://%s", ip))
		}
	}
	return origins
}

type Router struct {
	engine        *gin.Engine
	settingsStore *settings.Store
}

func NewRouter() *Router {
	settingsStore, err := settings.GetStore()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize settings store: %v", err))
	}

	router := &Router{
		engine:        gin.Default(),
		settingsStore: settingsStore,
	}
	return router
}

// RegisterRoutes configures all middleware and routes and returns the
// underlying handler
func (r *Router) RegisterRoutes() http.Handler {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins()
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	r.engine.Use(cors.New(config))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		api.POST("/auth/register", r.register)
		api.POST("/auth/login", r.login)

		api.POST("/metrics/calculate", r.calculateMetrics)

		api.GET("/sse", setupSSE)

		authorized := api.Group("", jwtAuthMiddleware())
		{
			authorized.POST("/records", r.saveRecord)
			authorized.GET("/records", r.getRecords)
			authorized.GET("/records/summary", r.getSummary)
			authorized.GET("/records/export/pdf", r.exportPDF)
			authorized.GET("/records/export/xlsx", r.exportXLSX)

			authorized.GET("/weight-tracking", r.getWeightTracking)

			authorized.GET("/settings", r.getSettings)
			authorized.POST("/settings", r.saveSettings)
		}
	}

	return r.engine
}

// SetupAndRunApiServer registers all routes and starts the server
func (r *Router) SetupAndRunApiServer() {
	r.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	println("Running API server on port " + port)
	r.engine.Run(":" + port)
}

func setupSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientChan := make(chan string, 10)
	messaging.AddSSEClient(clientChan)

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-clientChan:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			messaging.RemoveSSEClient(clientChan)
			return false
		}
	})
}

// @Summary Register a new account
// @Description Create a user with a unique username; the password is stored hashed
// @Tags auth
// @Accept json
// @Produce json
// @Param account body types.RegisterRequest true "Account to create"
// @Success 201 {object} types.User
// @Failure 400 {object} gin.H
// @Failure 409 {object} gin.H
// @Router /auth/register [post]
func (r *Router) register(c *gin.Context) {
	var request types.RegisterRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := service.ValidateCredentials(request.Username, request.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := data.CreateUser(request.Username, request.Password, request.Email)
	if err != nil {
		if errors.Is(err, data.ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary Log in
// @Description Verify credentials and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body types.LoginRequest true "Login credentials"
// @Success 200 {object} types.AuthResponse
// @Failure 400 {object} gin.H
// @Failure 401 {object} gin.H
// @Router /auth/login [post]
func (r *Router) login(c *gin.Context) {
	var request types.LoginRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := data.AuthenticateUser(request.Username, request.Password)
	if err != nil {
		if errors.Is(err, data.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	token, err := GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, Username: user.Username})
}

// @Summary Calculate health metrics
// @Description Run the metrics engine on a profile snapshot without persisting anything
// @Tags metrics
// @Accept json
// @Produce json
// @Param calculation body types.CalculationRequest true "Profile, optional goal and intake"
// @Success 200 {object} types.DerivedMetrics
// @Failure 400 {object} gin.H
// @Router /metrics/calculate [post]
func (r *Router) calculateMetrics(c *gin.Context) {
	var request types.CalculationRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	metrics, err := service.CalculateHealthMetrics(request.Profile, request.Goal, request.Intake)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// @Summary Save a health record
// @Description Compute metrics for a snapshot and append the result to the acting user's history
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body types.SaveRecordRequest true "Snapshot to compute and persist"
// @Success 201 {object} types.SaveRecordResponse
// @Failure 400 {object} gin.H
// @Failure 401 {object} gin.H
// @Router /records [post]
func (r *Router) saveRecord(c *gin.Context) {
	var request types.SaveRecordRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if request.Date == "" {
		request.Date = time.Now().Format("2006-01-02")
	}
	if err := service.ValidateDate(request.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := service.CalculateHealthMetrics(request.Profile, request.Goal, request.Intake)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	record := types.HealthRecord{
		Date:           request.Date,
		WeightKg:       request.Profile.WeightKg,
		HeightM:        request.Profile.HeightM,
		AgeYears:       request.Profile.AgeYears,
		Sex:            request.Profile.Sex,
		ActivityLevel:  request.Profile.ActivityLevel,
		BMI:            metrics.BMI,
		BMIStatus:      metrics.BMIStatus,
		BMR:            metrics.BMR,
		TDEE:           metrics.TDEE,
		WaterTargetL:   metrics.WaterTargetL,
		ProteinTargetG: metrics.ProteinTargetG,
	}

	recordID, err := data.InsertHealthRecord(user.ID, record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
		return
	}

	if r.settingsStore.GetWeightTracking() {
		if err := data.InsertWeightTracking(user.ID, request.Profile.WeightKg); err != nil {
			// The record itself is saved; tracking is best effort
			fmt.Printf("Warning: failed to insert weight tracking entry: %v\n", err)
		}
	}

	c.JSON(http.StatusCreated, types.SaveRecordResponse{RecordID: recordID, Metrics: metrics})
}

// @Summary Get record history
// @Description Return all records of the acting user in insertion order
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {array} types.HealthRecord
// @Failure 401 {object} gin.H
// @Router /records [get]
func (r *Router) getRecords(c *gin.Context) {
	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	records, err := data.GetHealthRecords(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}
	if records == nil {
		records = []types.HealthRecord{}
	}

	c.JSON(http.StatusOK, records)
}

// @Summary Get history summary
// @Description Latest record plus aggregates over the acting user's history
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.SummaryResponse
// @Failure 401 {object} gin.H
// @Router /records/summary [get]
func (r *Router) getSummary(c *gin.Context) {
	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	records, err := data.GetHealthRecords(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}

	summary := types.SummaryResponse{
		Username:    user.Username,
		RecordCount: len(records),
	}
	if len(records) > 0 {
		var totalWeight float64
		for _, record := range records {
			totalWeight += record.WeightKg
		}
		summary.MeanWeightKg = totalWeight / float64(len(records))
		latest := records[len(records)-1]
		summary.Latest = &latest
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary Export PDF summary
// @Description Fixed-layout medical summary of the acting user's latest record
// @Tags records
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /records/export/pdf [get]
func (r *Router) exportPDF(c *gin.Context) {
	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	records, err := data.GetHealthRecords(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No records to export"})
		return
	}

	output, err := export.GeneratePDFSummary(user.Username, records[len(records)-1])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="health_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", output)
}

// @Summary Export history workbook
// @Description Full record history of the acting user as an XLSX workbook
// @Tags records
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} gin.H
// @Router /records/export/xlsx [get]
func (r *Router) exportXLSX(c *gin.Context) {
	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	records, err := data.GetHealthRecords(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}

	output, err := export.GenerateHistoryXLSX(user.Username, records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="health_history.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", output)
}

// @Summary Get weight tracking entries
// @Description Weight time series of the acting user, oldest first
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} types.WeightEntry
// @Failure 401 {object} gin.H
// @Router /weight-tracking [get]
func (r *Router) getWeightTracking(c *gin.Context) {
	user, err := data.GetUserByUsername(actingUsername(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
		return
	}

	entries, err := data.GetWeightTracking(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve weight tracking"})
		return
	}
	if entries == nil {
		entries = []types.WeightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// @Summary Get application settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} settings.Settings
// @Router /settings [get]
func (r *Router) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, r.settingsStore.Load())
}

// @Summary Save application settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body types.SettingsRequest true "Settings to apply"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H
// @Router /settings [post]
func (r *Router) saveSettings(c *gin.Context) {
	var request types.SettingsRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := r.settingsStore.SetWeightTracking(request.WeightTracking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	messaging.BroadcastMessage(messaging.EventSettingsUpdated)
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}
