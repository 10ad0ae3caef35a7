package service

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"skystash/internal/repository"
	"skystash/internal/storage"
)

// UploadSlot is a signed, time-limited permission to PUT one object.
type UploadSlot struct {
	SignedURL string `json:"signedUrl"`
	Path      string `json:"path"`
}

// UploadService coordinates direct client transfers with the blob store.
// It never creates metadata; a slot becomes a node only through CommitFileMetadata.
type UploadService interface {
	RequestUploadSlot(ctx context.Context, owner, fileName, contentType string) (*UploadSlot, error)

	// RequestDownloadURL signs a GET for an owned file. Folders and nodes
	// without a storage key are reported as ErrNotFound.
	RequestDownloadURL(ctx context.Context, owner, nodeID string) (string, error)
}

type uploadService struct {
	nodes       repository.NodeRepository
	blobs       storage.BlobStore
	slotTTL     time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

// NewUploadService constructs a new UploadService issuing URLs with the given lifetimes.
func NewUploadService(nodes repository.NodeRepository, blobs storage.BlobStore, slotTTL, downloadTTL time.Duration) UploadService {
	return &uploadService{
		nodes:       nodes,
		blobs:       blobs,
		slotTTL:     slotTTL,
		downloadTTL: downloadTTL,
		now:         utcNow,
	}
}

func (s *uploadService) RequestUploadSlot(ctx context.Context, owner, fileName, contentType string) (*UploadSlot, error) {
	base := baseName(fileName)
	if base == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if contentType == "" {
		contentType = defaultMimeType
	}

	key := owner + "/" + strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + base
	url, err := s.blobs.PresignPut(ctx, key, contentType, s.slotTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: sign upload: %v", ErrUpstream, err)
	}
	return &UploadSlot{SignedURL: url, Path: key}, nil
}

func (s *uploadService) RequestDownloadURL(ctx context.Context, owner, nodeID string) (string, error) {
	n, err := s.nodes.FindByID(ctx, owner, nodeID)
	if err != nil {
		return "", mapRowError(err)
	}
	if n.IsFolder || n.StorageKey == nil || *n.StorageKey == "" {
		return "", fmt.Errorf("%w: node is not downloadable", ErrNotFound)
	}
	return signDownload(ctx, s.blobs, *n.StorageKey, s.downloadTTL)
}

func signDownload(ctx context.Context, blobs storage.BlobStore, key string, ttl time.Duration) (string, error) {
	url, err := blobs.PresignGet(ctx, key, ttl)
	if err != nil {
		return "", fmt.Errorf("%w: sign download: %v", ErrUpstream, err)
	}
	return url, nil
}

// baseName strips any directory part, with either separator, from a client supplied file name.
func baseName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return ""
	}
	b := path.Base(name)
	switch b {
	case ".", "/", "..":
		return ""
	}
	return b
}
