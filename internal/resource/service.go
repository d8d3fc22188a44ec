package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/storage"
)

// Thumbnail bounding box for resource photos.
const (
	thumbMaxWidth  = 320
	thumbMaxHeight = 240
)

type CreateRequest struct {
	Name     string
	Type     string
	Capacity int
}

type UpdateRequest struct {
	Name     *string
	Type     *string
	Capacity *int
	Status   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context) ([]*Resource, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error)
	Delete(ctx context.Context, id string) error

	// AttachPhoto stores the uploaded photo and its thumbnail for the resource.
	AttachPhoto(ctx context.Context, id string, content io.Reader) error
	// Photo opens the stored photo (or its thumbnail) for serving.
	Photo(ctx context.Context, id string, thumb bool) (io.ReadCloser, error)
}

type service struct {
	repo    Repository
	store   storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, imgProc *storage.ImageProcessor) Service {
	return &service{
		repo:    repo,
		store:   store,
		imgProc: imgProc,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !ValidType(req.Type) {
		return nil, ErrInvalidType
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	res := &Resource{
		Name:     name,
		Type:     req.Type,
		Capacity: req.Capacity,
		Status:   StatusAvailable,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Resource, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !ValidType(*req.Type) {
			return nil, ErrInvalidType
		}
		res.Type = *req.Type
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		res.Capacity = *req.Capacity
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		res.Status = *req.Status
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort: remove orphaned photo blobs after the row is gone.
	if res.PhotoPath != nil {
		_ = s.store.Delete(ctx, *res.PhotoPath)
		_ = s.store.Delete(ctx, thumbKey(*res.PhotoPath))
	}
	return nil
}

func (s *service) AttachPhoto(ctx context.Context, id string, content io.Reader) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// Buffer the upload so it can be stored and thumbnailed from one read.
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read photo upload: %w", err)
	}

	thumb, err := s.imgProc.Thumbnail(bytes.NewReader(data), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		return err
	}

	key := photoKey(id)
	if err := s.store.Save(ctx, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to store photo: %w", err)
	}
	if err := s.store.Save(ctx, thumbKey(key), thumb); err != nil {
		return fmt.Errorf("failed to store thumbnail: %w", err)
	}

	return s.repo.SetPhotoPath(ctx, id, &key)
}

func (s *service) Photo(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.PhotoPath == nil {
		return nil, ErrNoPhoto
	}

	key := *res.PhotoPath
	if thumb {
		key = thumbKey(key)
	}
	return s.store.Get(ctx, key)
}

func photoKey(resourceID string) string {
	return "resources/" + resourceID + "/photo"
}

func thumbKey(key string) string {
	return key + ".thumb.jpg"
}
