package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brigadeattend/internal/attendance"
	"brigadeattend/internal/config"
	"brigadeattend/internal/event"
	"brigadeattend/internal/queue"
	"brigadeattend/internal/store"
)

// Worker consumes count jobs and refreshes the denormalized per-session
// attendance counts stored on event days.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewMongo(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
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
	eventRepo := event.NewRepository(db.Events())

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for messages...")
	for msg := range messages {
		if msg.Type != queue.TypeCount {
			continue
		}

		job, err := queue.DecodeCountJob(msg)
		if err != nil {
			log.Printf("skipping bad message: %v", err)
			continue
		}

		start := time.Now()
		count, err := attRepo.CountPresent(ctx, job.EventID, job.Date, attendance.SessionType(job.SessionType))
		if err != nil {
			log.Printf("count %s %s %s failed: %v", job.EventID, job.Date.Format("2006-01-02"), job.SessionType, err)
			continue
		}

		if err := eventRepo.SetAttendanceCount(ctx, job.EventID, job.Date, job.SessionType, int(count)); err != nil {
			log.Printf("update count for event %s failed: %v", job.EventID, err)
			continue
		}

		log.Printf("event %s %s %s: %d present (%s)",
			job.EventID, job.Date.Format("2006-01-02"), job.SessionType, count, time.Since(start).Round(time.Millisecond))
	}

	log.Println("worker stopped")
}
