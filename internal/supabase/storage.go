package supabase

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

type StorageClient struct {
	client  *storage.Client
	baseURL string
	log     *zap.Logger
}

// UploadTarget is the outcome of the signed-upload-URL fallback chain.
// Manual is set when the URL came from one of the fallback strategies
// and the client has to PUT the object itself.
type UploadTarget struct {
	URL    string
	Manual bool
}

func NewStorageClient(supabaseURL, serviceRoleKey string, log *zap.Logger) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		baseURL: baseURL,
		log:     log,
	}, nil
}

// EnsurePublicBucket flips the bucket public so GetPublicURL links work.
// Failures are logged only; the API keeps serving with signed paths.
func (s *StorageClient) EnsurePublicBucket(bucket string) {
	info, err := s.client.GetBucket(bucket)
	if err == nil && info.Public {
		return
	}
	if _, err := s.client.UpdateBucket(bucket, storage.BucketOptions{Public: true}); err != nil {
		s.log.Warn("failed to make bucket public", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	s.log.Info("bucket set to public", zap.String("bucket", bucket))
}

// CreateUploadURL mints a signed upload URL for the given path. The
// primary call is retried with linear backoff; when it keeps failing we
// fall back to a signed download URL rewritten into its upload form, and
// finally to a hand-built upload-sign URL. The fallbacks exist because
// the hosted storage API intermittently refuses signed upload requests.
func (s *StorageClient) CreateUploadURL(bucket, path string) (UploadTarget, error) {
	const maxAttempts = 3

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := s.client.CreateSignedUploadUrl(bucket, path)
		if err == nil && resp.Url != "" {
			return UploadTarget{URL: resp.Url}, nil
		}
		lastErr = err
		if attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	s.log.Warn("signed upload URL failed after retries",
		zap.String("bucket", bucket), zap.String("path", path), zap.Error(lastErr))

	// Fallback 1: signed download URL rewritten into the upload form.
	signed, err := s.client.CreateSignedUrl(bucket, path, 3600)
	if err == nil && signed.SignedURL != "" {
		uploadURL := strings.Replace(signed.SignedURL, "/object/sign/", "/object/upload/sign/", 1)
		return UploadTarget{URL: uploadURL, Manual: true}, nil
	}
	s.log.Warn("signed URL fallback failed",
		zap.String("bucket", bucket), zap.String("path", path), zap.Error(err))

	// Fallback 2: hand-built upload-sign URL.
	direct := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s",
		s.baseURL, bucket, url.PathEscape(path))
	return UploadTarget{URL: direct, Manual: true}, nil
}

func (s *StorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

func (s *StorageClient) Remove(bucket string, paths []string) error {
	_, err := s.client.RemoveFile(bucket, paths)
	return err
}
