package cron

import (
	"context"
	"log"
	"time"

	"motoschool/config"
	"motoschool/services/content"

	"github.com/hibiken/asynq"
)

const TypeCacheWarm = "content:warm"

// InitCacheWarmer runs an async worker plus a periodic scheduler that keeps
// the settings, course list and menu caches warm from the upstream API.
func InitCacheWarmer(contentSvc content.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWarmerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCacheWarm, handleCacheWarmTask(contentSvc))

	go func() {
		log.Println("[CacheWarmer] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CacheWarmer] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CacheWarmer] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the warm task on the configured period.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)

	period := config.AppConfig.CacheWarmPeriod
	if period == "" {
		period = "10m"
	}
	if _, err := scheduler.Register("@every "+period, asynq.NewTask(TypeCacheWarm, nil)); err != nil {
		log.Printf("[CacheWarmer] failed to register periodic task: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[CacheWarmer] scheduler stopped: %v", err)
	}
}

func handleCacheWarmTask(contentSvc content.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		log.Println("[CacheWarmer] refreshing content caches")
		return contentSvc.WarmCaches(ctx)
	}
}
