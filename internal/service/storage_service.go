package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageService renders and stores certificate documents. It writes to MinIO
// when configured and falls back to the local filesystem otherwise.
type StorageService struct {
	cfg    config.StorageConfig
	client *minio.Client
}

func NewStorageService(cfg config.StorageConfig) (*StorageService, error) {
	s := &StorageService{cfg: cfg}

	if cfg.Type == "minio" {
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio client: %w", err)
		}
		s.client = client

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		exists, err := client.BucketExists(ctx, cfg.MinioBucket)
		if err != nil {
			return nil, fmt.Errorf("check bucket: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("create bucket: %w", err)
			}
		}
	}

	return s, nil
}

type CertificateDocument struct {
	CertificateID    string
	VerificationCode string
	StudentName      string
	CourseTitle      string
	Grade            *float64
	IssueDate        time.Time
}

func (d CertificateDocument) GradeDisplay() string {
	if d.Grade == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", *d.Grade)
}

var certificateTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Certificate of Completion</title></head>
<body>
<div class="certificate">
  <h1>Certificate of Completion</h1>
  <p>This certifies that</p>
  <h2>{{.StudentName}}</h2>
  <p>has successfully completed the course</p>
  <h3>{{.CourseTitle}}</h3>
  {{if .GradeDisplay}}<p>Final grade: {{.GradeDisplay}}</p>{{end}}
  <p>Issued on {{.IssueDate.Format "January 2, 2006"}}</p>
  <p class="meta">Certificate ID: {{.CertificateID}}</p>
  <p class="meta">Verification code: {{.VerificationCode}}</p>
</div>
</body>
</html>
`))

// UploadCertificate renders the certificate and stores it, returning the URL
// or path of the stored document.
func (s *StorageService) UploadCertificate(ctx context.Context, certificateID string, doc CertificateDocument) (string, error) {
	var buf bytes.Buffer
	if err := certificateTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}

	objectName := fmt.Sprintf("certificates/%s.html", certificateID)

	if s.client != nil {
		_, err := s.client.PutObject(ctx, s.cfg.MinioBucket, objectName,
			bytes.NewReader(buf.Bytes()), int64(buf.Len()),
			minio.PutObjectOptions{ContentType: "text/html"})
		if err != nil {
			return "", fmt.Errorf("upload certificate: %w", err)
		}

		scheme := "http"
		if s.cfg.MinioUseSSL {
			scheme = "https"
		}
		url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinioEndpoint, s.cfg.MinioBucket, objectName)
		logger.Log.Info("certificate stored",
			zap.String("certificateId", certificateID),
			zap.String("url", url),
		)
		return url, nil
	}

	path := filepath.Join(s.cfg.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create certificate dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write certificate: %w", err)
	}
	return "/" + filepath.ToSlash(path), nil
}
