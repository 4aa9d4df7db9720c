package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
)

const DefaultExportExpiry = 15 * time.Minute

// S3API is the part of the S3 client the archive uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Presigner signs download URLs
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3PlanArchive writes plans to plans/<practitioner>/<plan>.json
type S3PlanArchive struct {
	client  S3API
	presign S3Presigner
	bucket  string
}

// NewS3PlanArchive creates a new S3PlanArchive instance
func NewS3PlanArchive(client S3API, presign S3Presigner, bucket string) *S3PlanArchive {
	return &S3PlanArchive{
		client:  client,
		presign: presign,
		bucket:  bucket,
	}
}

// NewS3PlanArchiveFromClient wires the archive to a real S3 client
func NewS3PlanArchiveFromClient(client *s3.Client, bucket string) *S3PlanArchive {
	return NewS3PlanArchive(client, s3.NewPresignClient(client), bucket)
}

// ArchiveKey returns the object key of a plan snapshot
func ArchiveKey(plan *models.DietPlan) string {
	return fmt.Sprintf("plans/%s/%s.json", plan.PractitionerID, plan.ID)
}

// Put uploads the plan as JSON
func (a *S3PlanArchive) Put(ctx context.Context, plan *models.DietPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ArchiveKey(plan)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload plan %s: %w", plan.ID, err)
	}
	return nil
}

// PresignURL generates a download URL for the plan snapshot
func (a *S3PlanArchive) PresignURL(ctx context.Context, plan *models.DietPlan, expiration time.Duration) (string, error) {
	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(ArchiveKey(plan)),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign plan %s: %w", plan.ID, err)
	}
	return req.URL, nil
}
