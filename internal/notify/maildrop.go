package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// minioAPI is the subset of *minio.Client the mail drop uses.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var _ model.Notifier = (*MailDrop)(nil)

// MailDrop writes each OTP email as an RFC 822 object into a bucket,
// acting as a shared inbox for staging environments.
type MailDrop struct {
	api    minioAPI
	bucket string
	from   string
	ttl    time.Duration
	now    func() time.Time
}

// NewMinioClient opens a MinIO client with static credentials.
func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

func NewMailDrop(ctx context.Context, client *minio.Client, bucket, from string, ttl time.Duration) (*MailDrop, error) {
	return NewMailDropWithAPI(ctx, client, bucket, from, ttl)
}

// NewMailDropWithAPI allows injecting a fake API in tests.
func NewMailDropWithAPI(ctx context.Context, api minioAPI, bucket, from string, ttl time.Duration) (*MailDrop, error) {
	d := &MailDrop{
		api:    api,
		bucket: bucket,
		from:   from,
		ttl:    ttl,
		now:    time.Now,
	}

	if err := d.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return d, nil
}

func (d *MailDrop) ensureBucketExists(ctx context.Context) error {
	exists, err := d.api.BucketExists(ctx, d.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := d.api.MakeBucket(ctx, d.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (d *MailDrop) SendOtp(ctx context.Context, code, email string) error {
	var buf bytes.Buffer
	if _, err := newOtpMessage(d.from, email, code, d.ttl).WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render otp email: %w", err)
	}

	key := objectKey(email, d.now().UTC())
	_, err := d.api.PutObject(ctx, d.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "message/rfc822",
	})
	if err != nil {
		return fmt.Errorf("failed to upload otp email: %w", err)
	}

	return nil
}

func objectKey(email string, at time.Time) string {
	return fmt.Sprintf("%s/%s.eml", email, at.Format("20060102T150405.000000000Z"))
}
