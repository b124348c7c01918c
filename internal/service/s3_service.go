package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"vidtube/config"
	"vidtube/internal/model"
	"vidtube/internal/util"
)

// S3API : методы клиента S3, которые использует сервис
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Service : хранилище изображений профиля (AWS S3 или локальный MinIO)
type S3Service struct {
	client    S3API
	bucket    string
	keyPrefix string
	baseURL   string
}

func NewS3Service(ctx context.Context, cfg *config.S3Config) (*S3Service, error) {
	var client *s3.Client

	if cfg.Local {
		client = s3.New(s3.Options{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
			BaseEndpoint: aws.String(cfg.Endpoint),
			UsePathStyle: true,
		})

		if err := createBucketIfNotExists(ctx, client, cfg.Bucket); err != nil {
			return nil, util.LogError(ctx, "[S3Service] ошибка создания бакета", err)
		}
	} else {
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, util.LogError(ctx, "[S3Service] ошибка загрузки AWS config", err)
		}
		client = s3.NewFromConfig(awsCfg)
	}

	return NewS3ServiceWithClient(client, cfg), nil
}

func NewS3ServiceWithClient(client S3API, cfg *config.S3Config) *S3Service {
	return &S3Service{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
		baseURL:   publicBaseURL(cfg),
	}
}

// publicBaseURL : префикс публичных ссылок, если он не задан явно
func publicBaseURL(cfg *config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Local:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// createBucketIfNotExists создает бакет если он не существует
func createBucketIfNotExists(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})

	if err == nil {
		return nil // Бакет уже существует
	}

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})

	if err != nil {
		return util.LogError(ctx, "[S3Service] ошибка создания бакета", err)
	}

	slog.Info("[S3Service] бакет успешно создан", slog.String("bucket", bucket))
	return nil
}

// Upload : загружает локальный файл и удаляет его с диска при любом исходе.
// Пустой путь означает отсутствие файла: (nil, nil).
func (s *S3Service) Upload(ctx context.Context, localPath string) (*model.Media, error) {
	if localPath == "" {
		return nil, nil
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			util.Logger(ctx).Warn("[S3Service] не удалось удалить временный файл",
				slog.String("path", localPath),
				slog.String("err", err.Error()),
			)
		}
	}()

	file, err := os.Open(localPath)
	if err != nil {
		return nil, util.LogError(ctx, "[S3Service] ошибка открытия файла", err)
	}
	defer file.Close()

	key := path.Join(s.keyPrefix, uuid.New().String()+strings.ToLower(filepath.Ext(localPath)))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(util.ContentType(localPath)),
	})
	if err != nil {
		return nil, util.LogError(ctx, "[S3Service] не удалось загрузить объект", err)
	}

	return &model.Media{
		URL:      s.baseURL + "/" + key,
		PublicID: key,
	}, nil
}

// Delete : удаление объекта
func (s *S3Service) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return util.LogError(ctx, "[S3Service] не удалось удалить объект", err)
	}
	return nil
}
