package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Generated error reports and exports are transient; anything older than this
// gets removed by the nightly job.
const generatedFileTTL = 7 * 24 * time.Hour

// CleanupExpiredFiles removes a file once it is older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
	}
	return nil
}

// CleanupAllExpired sweeps the generated-files directory and drops stale
// cached list results.
func CleanupAllExpired(redisClient *redis.Client) error {
	files, err := os.ReadDir(generatedFilesDir)
	if err != nil {
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if err := CleanupExpiredFiles(filepath.Join(generatedFilesDir, file.Name()), generatedFileTTL); err != nil {
			fmt.Println("Error cleaning up file:", err)
		}
	}

	for _, resource := range []string{"users", "assets", "maintenance", "reservations"} {
		if err := InvalidateCache(redisClient, resource); err != nil {
			return fmt.Errorf("error cleaning up cache: %v", err)
		}
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()
	_, err := c.AddFunc("0 1 * * *", func() {
		if err := CleanupAllExpired(redisClient); err != nil {
			fmt.Println("Scheduled cleanup failed:", err)
		}
	})
	if err != nil {
		fmt.Println("Failed to schedule cleanup job:", err)
		return
	}
	c.Start()
}
