// Package main syncs the translation model bundle between object storage
// and local disk. The default mode pulls the bundle down so the inference
// runtime can load it without network access; -upload pushes a locally
// prepared bundle up for other instances to pull.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/pkg/gcs"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var upload = flag.Bool("upload", false, "Upload the local bundle instead of downloading")

// coreFiles must exist in a synced bundle for the runtime to load it.
var coreFiles = []string{"config.json", "tokenizer_config.json"}

// weightFiles lists the accepted weight formats; at least one must exist.
var weightFiles = []string{"model.safetensors", "pytorch_model.bin"}

func main() {
	flag.Parse()

	// 0. Load .env file for local runs if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: .env file not found or skipped (expected in production): %v", err)
	}

	// 1. Load configuration and initialize logging
	config.LoadConfig()
	cfg := config.GetConfig()
	if _, err := logger.Init(cfg.Debug); err != nil {
		log.Printf("Failed to initialize zap logger, falling back to std log: %v", err)
	}
	defer logger.Sync()

	if cfg.ModelBucket == "" {
		log.Fatalf("❌ MODEL_BUCKET is required")
	}

	// 2. Connect to the bucket
	ctx := context.Background()
	client, err := gcs.NewGCSClient(ctx, cfg.ModelBucket)
	if err != nil {
		log.Fatalf("❌ Failed to create storage client: %v", err)
	}
	defer client.Close()

	// 3. Run the requested direction
	start := time.Now()
	if *upload {
		fmt.Printf("🚀 Publishing model bundle %s to gs://%s/%s\n", cfg.ModelDir, cfg.ModelBucket, cfg.ModelPrefix)
		if err := verifyBundle(cfg.ModelDir); err != nil {
			log.Fatalf("❌ Local bundle incomplete: %v", err)
		}

		uploaded, bytes, err := publishBundle(ctx, client, cfg.ModelDir, cfg.ModelPrefix)
		if err != nil {
			log.Fatalf("❌ Publish failed: %v", err)
		}
		logger.Base().Info("✅ Model bundle published",
			zap.Int("uploaded", uploaded),
			zap.Int64("bytes", bytes),
			zap.Duration("elapsed", time.Since(start)),
		)
		return
	}

	fmt.Printf("🚀 Syncing model bundle %s from gs://%s to %s\n", cfg.ModelPrefix, cfg.ModelBucket, cfg.ModelDir)
	downloaded, skipped, bytes, err := syncBundle(ctx, client, cfg.ModelPrefix, cfg.ModelDir)
	if err != nil {
		log.Fatalf("❌ Sync failed: %v", err)
	}
	if err := verifyBundle(cfg.ModelDir); err != nil {
		log.Fatalf("❌ Bundle verification failed: %v", err)
	}

	logger.Base().Info("✅ Model bundle ready",
		zap.String("dir", cfg.ModelDir),
		zap.Int("downloaded", downloaded),
		zap.Int("skipped", skipped),
		zap.Int64("bytes", bytes),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// syncBundle downloads every object under prefix into dir, preserving the
// layout below the prefix. Objects already on disk with a matching size are
// skipped so reruns only fetch what changed.
func syncBundle(ctx context.Context, client *gcs.GCSClient, prefix, dir string) (downloaded, skipped int, total int64, err error) {
	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(objects) == 0 {
		return 0, 0, 0, fmt.Errorf("no objects found under prefix %q", prefix)
	}

	for _, obj := range objects {
		rel := strings.TrimPrefix(strings.TrimPrefix(obj.Name, prefix), "/")
		if rel == "" {
			continue
		}
		localPath := filepath.Join(dir, filepath.FromSlash(rel))

		if info, statErr := os.Stat(localPath); statErr == nil && info.Size() == obj.Size {
			logger.Base().Debug("object up to date", zap.String("object", obj.Name))
			skipped++
			continue
		}

		logger.Base().Info("downloading object",
			zap.String("object", obj.Name),
			zap.Int64("size", obj.Size),
		)
		written, err := client.DownloadToFile(ctx, obj.Name, localPath)
		if err != nil {
			return downloaded, skipped, total, fmt.Errorf("failed to download %s: %v", obj.Name, err)
		}
		downloaded++
		total += written
	}

	return downloaded, skipped, total, nil
}

// publishBundle uploads every regular file under dir to the bucket prefix.
func publishBundle(ctx context.Context, client *gcs.GCSClient, dir, prefix string) (uploaded int, total int64, err error) {
	err = filepath.WalkDir(dir, func(localPath string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, localPath)
		if err != nil {
			return err
		}

		file, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %v", localPath, err)
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %v", localPath, err)
		}

		objectPath := path.Join(prefix, filepath.ToSlash(rel))
		url, err := client.Upload(ctx, objectPath, file)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %v", localPath, err)
		}

		logger.Base().Info("uploaded object",
			zap.String("url", url),
			zap.Int64("size", info.Size()),
		)
		uploaded++
		total += info.Size()
		return nil
	})

	return uploaded, total, err
}

// verifyBundle checks that the files the inference runtime needs are present.
func verifyBundle(dir string) error {
	for _, name := range coreFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("missing %s: %v", name, err)
		}
	}

	for _, name := range weightFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no weight file found (looked for %s)", strings.Join(weightFiles, ", "))
}
