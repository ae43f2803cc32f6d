package polaris

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polarisapp/client-go/internal/apierrors"
	"github.com/polarisapp/client-go/internal/transport"
)

// UploadsService wraps the file-upload and resource endpoints.
type UploadsService struct {
	client *Client
}

// PresignParams describe the file an upload URL is requested for.
type PresignParams struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// PresignedUpload is an issued upload target.
type PresignedUpload struct {
	UploadID  string            `json:"uploadId"`
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// CompleteUploadParams finalize an upload.
type CompleteUploadParams struct {
	UploadID string `json:"uploadId"`
	Checksum string `json:"checksum,omitempty"`
}

// Resource is a stored file record.
type Resource struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListResourcesParams control pagination of the resource listing.
type ListResourcesParams struct {
	Cursor string
	Limit  int
}

// GeneratePresignedURL requests an upload target for a file.
func (s *UploadsService) GeneratePresignedURL(ctx context.Context, params PresignParams) (*Envelope[PresignedUpload], error) {
	return transport.Call[PresignedUpload](ctx, s.client.transport, http.MethodPost, "/v1/uploads/presign", params, nil)
}

// CompleteUpload finalizes an upload after the file has been transferred.
func (s *UploadsService) CompleteUpload(ctx context.Context, params CompleteUploadParams) (*Envelope[Resource], error) {
	path := fmt.Sprintf("/v1/uploads/%s/complete", url.PathEscape(params.UploadID))
	return transport.Call[Resource](ctx, s.client.transport, http.MethodPost, path, params, nil)
}

// GetResource returns a stored resource by id.
func (s *UploadsService) GetResource(ctx context.Context, resourceID string) (*Envelope[Resource], error) {
	path := fmt.Sprintf("/v1/resources/%s", url.PathEscape(resourceID))
	return transport.Call[Resource](ctx, s.client.transport, http.MethodGet, path, nil, nil)
}

// ListResources returns one page of stored resources.
func (s *UploadsService) ListResources(ctx context.Context, params ListResourcesParams) (*Envelope[Page[Resource]], error) {
	q := url.Values{}
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	path := "/v1/resources"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return transport.Call[Page[Resource]](ctx, s.client.transport, http.MethodGet, path, nil, nil)
}

// DeleteResource deletes a stored resource.
func (s *UploadsService) DeleteResource(ctx context.Context, resourceID string) (*Envelope[Ack], error) {
	path := fmt.Sprintf("/v1/resources/%s", url.PathEscape(resourceID))
	return transport.Call[Ack](ctx, s.client.transport, http.MethodDelete, path, nil, nil)
}

// UploadFile transfers data to a presigned target. This is a caller-side
// convenience over the presigned PUT: it bypasses the request engine and
// carries no retry semantics of its own.
func (s *UploadsService) UploadFile(ctx context.Context, upload *PresignedUpload, data []byte) error {
	if upload == nil {
		return fmt.Errorf("presigned upload is nil")
	}
	method := upload.Method
	if method == "" {
		method = http.MethodPut
	}

	req, err := http.NewRequestWithContext(ctx, method, upload.URL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	for k, v := range upload.Headers {
		req.Header.Set(k, v)
	}
	req.ContentLength = int64(len(data))

	resp, err := s.client.transport.HTTPClient().Do(req)
	if err != nil {
		return apierrors.NewNetwork(err, upload.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return apierrors.Classify(resp.StatusCode, body, "")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// UploadAndComplete presigns, transfers, and finalizes a file in one call,
// attaching a SHA-256 checksum of the content.
func (s *UploadsService) UploadAndComplete(ctx context.Context, params PresignParams, data []byte) (*Envelope[Resource], error) {
	presign, err := s.GeneratePresignedURL(ctx, params)
	if err != nil {
		return nil, err
	}
	if !presign.Success {
		return &Envelope[Resource]{
			Success: false,
			Error:   presign.Error,
			Meta:    presign.Meta,
			Status:  presign.Status,
		}, nil
	}

	if err := s.UploadFile(ctx, &presign.Data, data); err != nil {
		return nil, err
	}

	return s.CompleteUpload(ctx, CompleteUploadParams{
		UploadID: presign.Data.UploadID,
		Checksum: Checksum(data),
	})
}

// Checksum returns the hex-encoded SHA-256 digest of data, as expected by
// CompleteUpload.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
