package aws

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
)

const s3Scheme = "s3://"

// objectGetter é o subconjunto do cliente S3 usado aqui.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3RepositoryImpl busca planilhas em buckets S3, com cache de config e clientes por profile.
type S3RepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]objectGetter
	mu          sync.Mutex

	loadConfig func(ctx context.Context, profile string) (aws.Config, error)
	newClient  func(cfg aws.Config) objectGetter
}

// NewS3Repository cria a fonte de arquivos em s3://bucket/key.
func NewS3Repository() repository.SourceRepository {
	return &S3RepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]objectGetter),
		loadConfig:  loadDefaultConfig,
		newClient: func(cfg aws.Config) objectGetter {
			return s3.NewFromConfig(cfg)
		},
	}
}

func loadDefaultConfig(ctx context.Context, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

func (r *S3RepositoryImpl) Supports(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// Fetch baixa o objeto inteiro. O nome devolvido é a base da key, usada para detectar o formato.
func (r *S3RepositoryImpl) Fetch(ctx context.Context, profile, location string) (string, []byte, error) {
	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return "", nil, err
	}

	client, err := r.getClient(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("error downloading %s: %w", location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", nil, fmt.Errorf("error reading %s: %w", location, err)
	}
	return path.Base(key), data, nil
}

// ParseS3URI separa "s3://bucket/path/to/key" em bucket e key.
func ParseS3URI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, s3Scheme) {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing s3:// prefix", uri)
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if !found || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid S3 URI %q: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}

func (r *S3RepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	cfg, err := r.loadConfig(ctx, profile)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *S3RepositoryImpl) getClient(ctx context.Context, profile string) (objectGetter, error) {
	r.mu.Lock()
	if client, ok := r.clientCache[profile]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	client := r.newClient(cfg)

	r.mu.Lock()
	r.clientCache[profile] = client
	r.mu.Unlock()

	return client, nil
}
