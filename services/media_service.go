package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/ecosnap/ecosnap/config"
	"github.com/ecosnap/ecosnap/models"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const MaxImageSize = 10 << 20 // 10 MB

type MediaService interface {
	UploadImage(fileHeader *multipart.FileHeader, userID uint) (*models.MediaUpload, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

type mediaService struct {
	Config *config.Config
	s3     *s3.Client
}

// NewMediaService builds the S3 client once at startup; the client is
// injected into the service rather than rebuilt per request.
func NewMediaService(conf *config.Config) (MediaService, error) {
	cfg, err := fig.LoadDefaultConfig(context.Background(),
		fig.WithRegion(conf.AwsRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AwsAccessKeyID, conf.AwsSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %v", err)
	}
	return &mediaService{
		Config: conf,
		s3:     s3.NewFromConfig(cfg),
	}, nil
}

func CheckFileSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageSize {
		return fmt.Errorf("file size %d exceeds limit", fileHeader.Size)
	}
	return nil
}

func CheckSupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpeg", ".jpg":
		return true
	}
	return false
}

// UploadImage streams the photo and a generated thumbnail to S3 and
// returns the public URLs plus a content hash used for duplicate hints.
func (m *mediaService) UploadImage(fileHeader *multipart.FileHeader, userID uint) (*models.MediaUpload, error) {
	if err := CheckFileSize(fileHeader); err != nil {
		return nil, err
	}
	if !CheckSupportedFile(fileHeader.Filename) {
		return nil, fmt.Errorf("unsupported file type: %s", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	hash := sha256.Sum256(fileBytes)
	imageHash := hex.EncodeToString(hash[:])

	img, err := imaging.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	thumbnail := resize.Resize(200, 0, img, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumbnail, nil); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	fileExtension := filepath.Ext(fileHeader.Filename)
	fileKey := fmt.Sprintf("hotspots/%d_%s%s", userID, uuid.New().String(), fileExtension)
	thumbKey := fmt.Sprintf("hotspots/thumbnails/%d_%s.jpg", userID, uuid.New().String())

	contentType := fileHeader.Header.Get("Content-Type")
	if err := m.putObject(fileKey, bytes.NewReader(fileBytes), contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image to S3: %v", err)
	}
	if err := m.putObject(thumbKey, bytes.NewReader(thumbBuf.Bytes()), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to upload thumbnail to S3: %v", err)
	}

	return &models.MediaUpload{
		ImageURL:     m.objectURL(fileKey),
		ThumbnailURL: m.objectURL(thumbKey),
		ImageHash:    imageHash,
	}, nil
}

// FetchImage pulls the stored bytes back for the verification workflow.
func (m *mediaService) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	key, err := m.objectKey(imageURL)
	if err != nil {
		return nil, err
	}
	out, err := m.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.Config.AwsBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from S3: %v", err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (m *mediaService) putObject(key string, body io.Reader, contentType string) error {
	_, err := m.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	return err
}

func (m *mediaService) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key)
}

func (m *mediaService) objectKey(imageURL string) (string, error) {
	marker := ".amazonaws.com/"
	idx := strings.Index(imageURL, marker)
	if idx == -1 {
		return "", fmt.Errorf("unrecognized image reference: %s", imageURL)
	}
	return imageURL[idx+len(marker):], nil
}
