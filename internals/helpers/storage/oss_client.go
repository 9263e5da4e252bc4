package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"cftl_backend/internals/configs"
)

const deleteBatchSize = 1000

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSSService(cfg configs.AppConfig) (*OSSService, error) {
	endpoint := normalizeEndpoint(cfg.OSSEndpoint)
	if endpoint == "" || cfg.OSSAccessKey == "" || cfg.OSSSecretKey == "" || cfg.OSSBucket == "" {
		return nil, fmt.Errorf("%w: missing ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET", ErrNotConfigured)
	}

	var opts []oss.ClientOption
	if cfg.OSSSecurityToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.OSSSecurityToken))
	}
	client, err := oss.New(endpoint, cfg.OSSAccessKey, cfg.OSSSecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.OSSBucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			configs.Log.Warnf("[OSS] skip location check, access denied on bucket=%s", cfg.OSSBucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		configs.Log.Infof("[OSS] bucket %s location: %s", cfg.OSSBucket, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: cfg.OSSBucket,
		PublicBase: strings.TrimRight(strings.TrimSpace(cfg.OSSPublicBase), "/"),
	}, nil
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	return ep
}

func (s *OSSService) PutObject(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) SignPutURL(key, contentType string, expires time.Duration) (string, error) {
	var opts []oss.Option
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	return s.Bucket.SignURL(key, oss.HTTPPut, int64(expires.Seconds()), opts...)
}

func (s *OSSService) SignGetURL(key string, expires time.Duration) (string, error) {
	return s.Bucket.SignURL(key, oss.HTTPGet, int64(expires.Seconds()))
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

func (s *OSSService) KeyFromURL(publicURL string) (string, error) {
	return keyFromURL(publicURL, s.PublicBase)
}

func (s *OSSService) ListObjects(ctx context.Context, prefix string, visit func(ObjectInfo) error) error {
	marker := oss.Marker("")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.Bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000))
		if err != nil {
			return err
		}
		for _, obj := range res.Objects {
			if obj.Key == "" {
				continue
			}
			if err := visit(ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified}); err != nil {
				return err
			}
		}
		if !res.IsTruncated {
			return nil
		}
		marker = oss.Marker(res.NextMarker)
	}
}

func (s *OSSService) DeleteObjects(ctx context.Context, keys []string) error {
	for i := 0; i < len(keys); i += deleteBatchSize {
		end := i + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if _, err := s.Bucket.DeleteObjects(keys[i:end], oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			return fmt.Errorf("delete batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// keyFromURL strips the public base (or scheme + host) from an object URL.
func keyFromURL(publicURL, publicBase string) (string, error) {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	if publicBase != "" && strings.HasPrefix(publicURL, publicBase+"/") {
		return strings.TrimPrefix(publicURL, publicBase+"/"), nil
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}
