package repository

import (
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// UploadFile stores raw file bytes in GridFS under the given unique
// name. Names are generated by the caller and never reused.
func (m *MongoDB) UploadFile(filename string, reader io.Reader) error {
	bucket, err := gridfs.NewBucket(m.client.Database(m.database))
	if err != nil {
		return fmt.Errorf("gridfs bucket: %w", err)
	}

	uploadStream, err := bucket.OpenUploadStream(filename)
	if err != nil {
		return fmt.Errorf("gridfs open upload: %w", err)
	}

	if _, err := io.Copy(uploadStream, reader); err != nil {
		uploadStream.Close()
		return fmt.Errorf("gridfs copy: %w", err)
	}

	if err := uploadStream.Close(); err != nil {
		return fmt.Errorf("gridfs close upload: %w", err)
	}

	return nil
}

// DownloadFile retrieves a stored file by name. The caller must close
// the returned ReadCloser.
func (m *MongoDB) DownloadFile(filename string) (io.ReadCloser, error) {
	bucket, err := gridfs.NewBucket(m.client.Database(m.database))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}

	stream, err := bucket.OpenDownloadStreamByName(filename)
	if err != nil {
		return nil, fmt.Errorf("gridfs open download: %w", err)
	}

	return stream, nil
}
