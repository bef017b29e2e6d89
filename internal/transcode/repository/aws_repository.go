package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
)

var audioFilePattern = regexp.MustCompile(`.+\.(mp3|wav|flac|m4a|aac|ogg|opus)$`)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	publicBaseURL string
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient, publicBaseURL string) transcode.AWSRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (a *awsRepository) Download(ctx context.Context, bucket, key, localDir string) (string, error) {
	res, err := a.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.Download.GetObject")
	}
	defer res.Body.Close()

	localPath := filepath.Join(localDir, filepath.Base(key))
	outFile, err := os.Create(localPath)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.Download.Create")
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, res.Body); err != nil {
		return "", errors.Wrap(err, "awsRepository.Download.Copy")
	}
	return localPath, nil
}

// UploadDirectory walks localDir and puts every regular file under prefix.
// Directory listing order is not meaningful; the manifest is recognized by
// suffix, not position.
func (a *awsRepository) UploadDirectory(ctx context.Context, bucket, localDir, prefix string) (string, error) {
	var manifestURL string

	walkErr := filepath.Walk(localDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(localDir, path)
		if err != nil {
			return errors.Wrap(err, "awsRepository.UploadDirectory.Rel")
		}
		key := prefix + "/" + filepath.ToSlash(relPath)

		file, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "awsRepository.UploadDirectory.Open")
		}
		defer file.Close()

		contentType := getContentType(path)
		size := info.Size()
		if _, err = a.client.PutObject(
			ctx,
			&s3.PutObjectInput{
				Bucket:        &bucket,
				Key:           &key,
				Body:          file,
				ContentType:   &contentType,
				ContentLength: &size,
			},
		); err != nil {
			return errors.Wrapf(err, "awsRepository.UploadDirectory.PutObject %s", key)
		}

		if strings.HasSuffix(path, ".m3u8") {
			manifestURL = fmt.Sprintf("%s/%s/%s", a.publicBaseURL, bucket, key)
		}
		return nil
	})
	if walkErr != nil {
		return "", walkErr
	}
	return manifestURL, nil
}

func (a *awsRepository) GetPresignedURL(ctx context.Context, bucket string, input *models.UploadInput) (string, error) {
	if !audioFilePattern.MatchString(strings.ToLower(input.Name)) {
		return "", fmt.Errorf("invalid file format: %s", input.Name)
	}
	key := fmt.Sprintf("uploads/%s/%s", input.SongID, input.Name)
	putObjectReq, err := a.preSignClient.PresignPutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &bucket,
			Key:           &key,
			ContentLength: &input.Size,
			ContentType:   &input.MimeType,
		},
		s3.WithPresignExpires(60*time.Minute),
	)
	if err != nil {
		return "", errors.Wrap(err, "awsRepository.GetPresignedURL")
	}
	return putObjectReq.URL, nil
}

func getContentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".m3u8"):
		return "application/vnd.apple.mpegurl"
	case strings.HasSuffix(path, ".ts"):
		return "video/MP2T"
	default:
		return "application/octet-stream"
	}
}
