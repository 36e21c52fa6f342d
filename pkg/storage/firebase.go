package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// uploadTimeout bounds a single object upload so a stalled connection
// surfaces as an error instead of hanging the request.
const uploadTimeout = 30 * time.Second

// FirebaseStore implements ObjectStore on top of a Firebase Cloud Storage bucket
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// InitFirebase initializes the Firebase application and storage bucket handle
func InitFirebase(ctx context.Context, credentialsPath, bucketName string) (*FirebaseStore, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("storage bucket name not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default storage bucket: %w", err)
	}

	log.Println("Firebase app and storage bucket initialized successfully!")
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}, nil
}

// Upload writes the buffer to a fresh object in the bucket, makes it publicly
// readable and returns its URL. The object name is random, so concurrent
// uploads never collide.
func (s *FirebaseStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	obj := s.bucket.Object("posts/" + uuid.NewString())

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set object ACL: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, obj.ObjectName()), nil
}
