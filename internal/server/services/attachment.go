package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/Vvitsh/ticketstore/internal/server/config"
	"github.com/Vvitsh/ticketstore/internal/server/models"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/repomanager"
)

// Seams for the AWS client stack so tests can stub presigning without
// touching real object storage.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignValidity = 15 * time.Minute

// AttachmentService manages ticket attachment metadata and hands out
// presigned URLs; attachment bytes move between the client and the
// S3-compatible backend directly.
type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewAttachmentService constructs an AttachmentService using repositories
// and server config.
func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

func newStorageKey(ticketID int64) string {
	return fmt.Sprintf("tickets/%d/%v", ticketID, uuid.New())
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUpload records pending attachment metadata for ticketID and returns
// it together with a presigned PUT URL the client uploads the bytes to.
// The ticket must exist; common.ErrNotFound propagates otherwise.
func (s *AttachmentService) RequestUpload(ctx context.Context, ticketID int64, user *models.User, fileName string) (*models.Attachment, string, error) {
	if _, err := s.repomanager.Tickets(s.db).GetByID(ctx, ticketID); err != nil {
		return nil, "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.config.S3Bucket
	key := newStorageKey(ticketID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, "", err
	}

	repo := s.repomanager.Attachments(s.db)
	attachment, err := repo.Create(ctx, &models.Attachment{
		TicketID:     ticketID,
		UserID:       user.ID,
		FileName:     fileName,
		StorageKey:   key,
		UploadStatus: models.UploadStatusPending,
	})
	if err != nil {
		return nil, "", err
	}

	return attachment, req.URL, nil
}

// CompleteUpload marks attachment id as uploaded.
func (s *AttachmentService) CompleteUpload(ctx context.Context, id int64) error {
	repo := s.repomanager.Attachments(s.db)
	return repo.MarkUploaded(ctx, id)
}

// ListForTicket returns the attachments of ticketID together with presigned
// GET URLs for the completed ones.
func (s *AttachmentService) ListForTicket(ctx context.Context, ticketID int64) ([]*models.Attachment, map[int64]string, error) {
	repo := s.repomanager.Attachments(s.db)

	list, err := repo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}

	urls := make(map[int64]string, len(list))
	if len(list) == 0 {
		return list, urls, nil
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, nil, err
	}

	bucket := s.config.S3Bucket
	for _, a := range list {
		if a.UploadStatus != models.UploadStatusCompleted {
			continue
		}
		key := a.StorageKey
		req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(presignValidity))
		if err != nil {
			return nil, nil, err
		}
		urls[a.ID] = req.URL
	}

	return list, urls, nil
}
