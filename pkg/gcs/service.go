package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

type GCSClient struct {
	client     *storage.Client
	bucketName string
}

func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %v", err)
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Name string
	Size int64
}

// ListObjects returns the objects under the given prefix with their sizes.
func (g *GCSClient) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	bucket := g.client.Bucket(g.bucketName)

	var objects []ObjectInfo
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %v", prefix, err)
		}
		// Directory placeholders have no content.
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		objects = append(objects, ObjectInfo{Name: attrs.Name, Size: attrs.Size})
	}

	return objects, nil
}

// DownloadToFile copies one object into localPath, creating parent
// directories as needed.
func (g *GCSClient) DownloadToFile(ctx context.Context, objectPath, localPath string) (int64, error) {
	bucket := g.client.Bucket(g.bucketName)
	obj := bucket.Object(objectPath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to open object %s: %v", objectPath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %v", localPath, err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %v", localPath, err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to copy content: %v", err)
	}

	return written, nil
}

// Upload writes content to objectPath and returns the public URL.
func (g *GCSClient) Upload(ctx context.Context, objectPath string, content io.Reader) (string, error) {
	bucket := g.client.Bucket(g.bucketName)
	obj := bucket.Object(objectPath)

	writer := obj.NewWriter(ctx)
	if _, err := io.Copy(writer, content); err != nil {
		return "", fmt.Errorf("failed to copy content: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, objectPath), nil
}

func (g *GCSClient) Close() error {
	return g.client.Close()
}
