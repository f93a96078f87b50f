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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brigadeattend/internal/attendance"
	"brigadeattend/internal/auth"
	"brigadeattend/internal/config"
	"brigadeattend/internal/event"
	"brigadeattend/internal/httpmiddleware"
	"brigadeattend/internal/queue"
	"brigadeattend/internal/report"
	"brigadeattend/internal/roster"
	"brigadeattend/internal/session"
	"brigadeattend/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewMongo(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(context.Background()) }()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer func() { _ = redisClient.Close() }()

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "brigadeattend:counts")
	}

	attRepo := attendance.NewRepository(db.Attendance())
	attSvc := attendance.NewService(attRepo, nil)
	eventRepo := event.NewRepository(db.Events())
	rosterRepo := roster.NewRepository(db.Users(), db.Brigades())
	ctx := context.Background()

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	// CORS middleware
	r.Use(corsMiddleware())

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting
	r.Use(httpmiddleware.NewLimiter(cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Healthy(c.Request.Context())
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/v1/auth/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Username != cfg.AdminUsername || req.Password != cfg.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		tokens, err := auth.Issue(req.Username, "admin", cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"expires_at":    tokens.AccessExp.Unix(),
		})
	})

	authGroup := r.Group("/v1", auth.AdminAuth(cfg.JWTSigningKey, cfg.JWTIssuer))

	// Events

	authGroup.GET("/events", func(c *gin.Context) {
		events, err := eventRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	})

	authGroup.POST("/events", func(c *gin.Context) {
		var req struct {
			Name      string `json:"name" binding:"required"`
			StartDate string `json:"startDate" binding:"required"`
			EndDate   string `json:"endDate" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}

		ev, err := event.New(req.Name, start, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := eventRepo.Create(c.Request.Context(), ev)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"event": created})
	})

	authGroup.GET("/events/:id", func(c *gin.Context) {
		ev, err := eventRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": ev})
	})

	authGroup.PUT("/events/:id", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := eventRepo.UpdateName(c.Request.Context(), c.Param("id"), req.Name); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	authGroup.DELETE("/events/:id", func(c *gin.Context) {
		// Attendance records are kept unless purge=true is passed; reads
		// filter orphans, so stale records are harmless.
		if err := eventRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		var purged int64
		if c.Query("purge") == "true" {
			var err error
			if purged, err = attRepo.DeleteByEvent(c.Request.Context(), c.Param("id")); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true, "purgedRecords": purged})
	})

	authGroup.PUT("/events/:id/days/:date/sessions/:type", func(c *gin.Context) {
		var req struct {
			IsActive  *bool  `json:"isActive" binding:"required"`
			StartTime string `json:"startTime" binding:"required"`
			EndTime   string `json:"endTime" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, err := parseDate(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		s := event.Session{IsActive: *req.IsActive, StartTime: req.StartTime, EndTime: req.EndTime}
		if err := event.ValidateSession(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := eventRepo.UpdateSession(c.Request.Context(), c.Param("id"), date, c.Param("type"), s); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	authGroup.GET("/events/:id/status", func(c *gin.Context) {
		ev, err := eventRepo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		date := time.Now()
		if v := c.Query("date"); v != "" {
			if date, err = parseDate(v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
				return
			}
		}
		day := ev.FindDay(date)
		if day == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no session data for this date"})
			return
		}
		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"date": day.Date.In(session.Zone).Format("2006-01-02"),
			"fn": gin.H{
				"status":    session.EvaluateDay(day.Date, day.FNSession.StartTime, day.FNSession.EndTime, day.FNSession.IsActive, now),
				"window":    session.FormatTimeRange(day.FNSession.StartTime, day.FNSession.EndTime),
				"suspended": !day.FNSession.IsActive,
				"count":     day.FNSession.AttendanceCount,
			},
			"an": gin.H{
				"status":    session.EvaluateDay(day.Date, day.ANSession.StartTime, day.ANSession.EndTime, day.ANSession.IsActive, now),
				"window":    session.FormatTimeRange(day.ANSession.StartTime, day.ANSession.EndTime),
				"suspended": !day.ANSession.IsActive,
				"count":     day.ANSession.AttendanceCount,
			},
		})
	})

	// Users

	authGroup.GET("/users", func(c *gin.Context) {
		users, err := rosterRepo.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	})

	authGroup.POST("/users", func(c *gin.Context) {
		var req roster.User
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := rosterRepo.CreateUser(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": created})
	})

	authGroup.DELETE("/users/:id", func(c *gin.Context) {
		if err := rosterRepo.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	authGroup.POST("/users/import", func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		defer file.Close()

		users, skipped, err := report.ParseRoster(file, header.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(users) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no valid rows in file", "skipped": skipped})
			return
		}
		inserted, err := rosterRepo.CreateUsersBulk(c.Request.Context(), users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imported": inserted, "skipped": skipped})
	})

	authGroup.GET("/users/template", func(c *gin.Context) {
		f, err := report.RosterTemplate()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="brigade_leads_template.xlsx"`)
		c.Header("Content-Type", xlsxContentType)
		if err := f.Write(c.Writer); err != nil {
			log.Printf("template write failed: %v", err)
		}
	})

	authGroup.GET("/users/export", func(c *gin.Context) {
		users, err := rosterRepo.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		f, err := report.ExportUsers(users)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="brigade_leads.xlsx"`)
		c.Header("Content-Type", xlsxContentType)
		if err := f.Write(c.Writer); err != nil {
			log.Printf("user export write failed: %v", err)
		}
	})

	// Brigades

	authGroup.GET("/brigades", func(c *gin.Context) {
		brigades, err := rosterRepo.ListBrigades(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"brigades": brigades})
	})

	authGroup.POST("/brigades", func(c *gin.Context) {
		var req struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := rosterRepo.CreateBrigade(c.Request.Context(), roster.Brigade{Name: req.Name, Description: req.Description})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, roster.ErrDuplicateBrigade) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"brigade": created})
	})

	authGroup.DELETE("/brigades/:id", func(c *gin.Context) {
		if err := rosterRepo.DeleteBrigade(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	// Attendance

	authGroup.GET("/attendance", func(c *gin.Context) {
		var (
			records []attendance.Record
			err     error
		)
		if eventID := c.Query("eventId"); eventID != "" {
			records, err = attRepo.ListByEvent(c.Request.Context(), eventID)
		} else {
			records, err = attRepo.ListAll(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	})

	guardWindow := func(c *gin.Context, eventID string, date time.Time, st attendance.SessionType) bool {
		ev, err := eventRepo.Get(c.Request.Context(), eventID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return false
		}
		day := ev.FindDay(date)
		if day == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date is not part of this event"})
			return false
		}
		s, err := day.SessionFor(string(st))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return false
		}
		status := session.EvaluateDay(day.Date, s.StartTime, s.EndTime, s.IsActive, time.Now())
		if !status.CanMark {
			if !s.IsActive {
				c.JSON(http.StatusConflict, gin.H{"error": "session has been suspended by the administrator"})
				return false
			}
			c.JSON(http.StatusConflict, gin.H{
				"error":  "marking is only allowed during the session time window: " + session.FormatTimeRange(s.StartTime, s.EndTime),
				"status": status,
			})
			return false
		}
		return true
	}

	publishCount := func(eventID string, date time.Time, st attendance.SessionType) {
		msg := queue.EncodeCountJob(queue.CountJob{EventID: eventID, Date: date, SessionType: string(st)})
		if err := q.Publish(ctx, msg); err != nil {
			log.Printf("queue publish failed: %v", err)
		}
	}

	authGroup.POST("/attendance/mark", func(c *gin.Context) {
		var req struct {
			EventID     string `json:"eventId" binding:"required"`
			Date        string `json:"date" binding:"required"`
			UserID      string `json:"userId" binding:"required"`
			SessionType string `json:"sessionType" binding:"required"`
			IsPresent   *bool  `json:"isPresent" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		st := attendance.SessionType(req.SessionType)
		if !guardWindow(c, req.EventID, date, st) {
			return
		}

		claims := adminClaims(c)
		key := attendance.TupleKey{EventID: req.EventID, EventDate: date, UserID: req.UserID, SessionType: st}
		rec, created, err := attSvc.Mark(c.Request.Context(), key, *req.IsPresent, claims.Subject)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		publishCount(req.EventID, date, st)

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"record": rec, "created": created})
	})

	authGroup.POST("/attendance/bulk", func(c *gin.Context) {
		var req struct {
			EventID     string   `json:"eventId" binding:"required"`
			Date        string   `json:"date" binding:"required"`
			UserIDs     []string `json:"userIds" binding:"required"`
			SessionType string   `json:"sessionType" binding:"required"`
			IsPresent   *bool    `json:"isPresent" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		st := attendance.SessionType(req.SessionType)
		if !guardWindow(c, req.EventID, date, st) {
			return
		}

		claims := adminClaims(c)
		res, err := attSvc.MarkBulk(c.Request.Context(), req.EventID, date, st, req.UserIDs, *req.IsPresent, claims.Subject)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		publishCount(req.EventID, date, st)

		c.JSON(http.StatusOK, gin.H{"result": res})
	})

	authGroup.GET("/attendance/duplicates", func(c *gin.Context) {
		groups, err := attSvc.Duplicates(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"duplicates": groups, "count": len(groups)})
	})

	authGroup.POST("/attendance/duplicates/cleanup", func(c *gin.Context) {
		deleted, err := attSvc.CleanupDuplicates(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	})

	authGroup.GET("/attendance/export", func(c *gin.Context) {
		records, err := attRepo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		users, err := rosterRepo.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		events, err := eventRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		filter, labels, err := exportFilter(c, events)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rows := report.BuildRows(report.ApplyFilter(records, users, filter), users, events)
		if len(rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no data to export"})
			return
		}
		f, err := report.ExportAttendance(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+report.Filename(labels...)+`.xlsx"`)
		c.Header("Content-Type", xlsxContentType)
		if err := f.Write(c.Writer); err != nil {
			log.Printf("attendance export write failed: %v", err)
		}
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// exportFilter reads the export query parameters and builds both the filter
// and the labels the filename is assembled from.
func exportFilter(c *gin.Context, events []event.Event) (report.Filter, []string, error) {
	var f report.Filter

	eventLabel := "All Events"
	if v := c.Query("eventId"); v != "" {
		f.EventID = v
		eventLabel = "Unknown Event"
		for _, ev := range events {
			if ev.ID == v {
				eventLabel = ev.Name
				break
			}
		}
	}

	brigadeLabel := "All Brigades"
	if v := c.Query("brigade"); v != "" {
		f.Brigade = v
		brigadeLabel = v
	}

	statusLabel := "All Status"
	switch c.Query("status") {
	case "present":
		f.Status = "present"
		statusLabel = "Present"
	case "absent":
		f.Status = "absent"
		statusLabel = "Absent"
	case "":
	default:
		return f, nil, errors.New("status must be present or absent")
	}

	sessionLabel := "All Sessions"
	switch c.Query("session") {
	case "FN":
		f.Session = attendance.SessionFN
		sessionLabel = "Forenoon"
	case "AN":
		f.Session = attendance.SessionAN
		sessionLabel = "Afternoon"
	case "":
	default:
		return f, nil, errors.New("session must be FN or AN")
	}

	fromLabel := "No Start Date"
	if v := c.Query("from"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return f, nil, errors.New("invalid from date")
		}
		f.From = d
		fromLabel = v
	}

	toLabel := "No End Date"
	if v := c.Query("to"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return f, nil, errors.New("invalid to date")
		}
		f.To = d
		toLabel = v
	}

	return f, []string{eventLabel, brigadeLabel, statusLabel, sessionLabel, fromLabel, toLabel}, nil
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", v, session.Zone)
}

func adminClaims(c *gin.Context) auth.Claims {
	claimsAny, _ := c.Get(auth.ClaimsKey)
	claims, _ := claimsAny.(auth.Claims)
	if claims.Subject == "" {
		claims.Subject = "admin"
	}
	return claims
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, event.ErrNotFound), errors.Is(err, roster.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
