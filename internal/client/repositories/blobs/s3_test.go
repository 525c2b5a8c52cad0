package blobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Repository_Contract(t *testing.T) {
	exerciseRepository(t, newS3Repository(newFakeS3(), "bucket", "gophnotes"))
}

func TestS3Repository_ObjectKeyUsesPrefix(t *testing.T) {
	fake := newFakeS3()
	repo := newS3Repository(fake, "bucket", "users/u1")

	require.NoError(t, repo.Set(context.Background(), KeyNotes, []byte("[]")))
	assert.Contains(t, fake.objects, "bucket/users/u1/notes")

	bare := newS3Repository(fake, "bucket", "")
	assert.Equal(t, "folders", bare.objectKey(KeyFolders))
}

func TestS3Repository_PutError(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = errors.New("access denied")
	repo := newS3Repository(fake, "bucket", "")

	err := repo.SetMany(context.Background(), map[string][]byte{KeyNotes: []byte("[]")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 put notes")
}

func TestNewS3Repository_ConfiguresClient(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	defer func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew }()

	var loadOpts config.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&loadOpts))
		}
		return aws.Config{Region: loadOpts.Region}, nil
	}

	var s3Opts s3.Options
	fake := newFakeS3()
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		for _, fn := range optFns {
			fn(&s3Opts)
		}
		return fake
	}

	repo, err := NewS3Repository(context.Background(), S3Config{
		Bucket:    "notes",
		Region:    "eu-central-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "notes", repo.bucket)
	assert.Equal(t, "eu-central-1", loadOpts.Region)
	assert.NotNil(t, loadOpts.Credentials)
	assert.Equal(t, "http://localhost:9000", aws.ToString(s3Opts.BaseEndpoint))
	assert.True(t, s3Opts.UsePathStyle)
}

func TestNewS3Repository_LoadConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Repository(context.Background(), S3Config{Bucket: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config")
}
