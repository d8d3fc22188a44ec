package resource

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/storage"
)

type memoryRepository struct {
	mu        sync.Mutex
	resources map[string]*Resource
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{resources: make(map[string]*Resource)}
}

func (r *memoryRepository) Create(_ context.Context, res *Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res.ID = uuid.NewString()
	res.CreatedAt = time.Now().UTC()
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context) ([]*Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Resource
	for _, res := range r.resources {
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, res *Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[res.ID]; !ok {
		return ErrNotFound
	}
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[id]; !ok {
		return ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *memoryRepository) SetPhotoPath(_ context.Context, id string, path *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok {
		return ErrNotFound
	}
	res.PhotoPath = path
	return nil
}

type memoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Save(_ context.Context, key string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *memoryStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *memoryStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok
}

func newTestService() (Service, *memoryRepository, *memoryStorage) {
	repo := newMemoryRepository()
	store := newMemoryStorage()
	return NewService(repo, store, storage.NewImageProcessor()), repo, store
}

// testJPEG renders a small solid image for upload tests.
func testJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x++ {
		for y := 0; y < 480; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 180, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	t.Run("success", func(t *testing.T) {
		res, err := svc.Create(ctx, CreateRequest{Name: "  Physics Lab 2 ", Type: "LAB", Capacity: 30})
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Physics Lab 2", res.Name)
		assert.Equal(t, StatusAvailable, res.Status)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name    string
			req     CreateRequest
			wantErr error
		}{
			{"blank name", CreateRequest{Name: "  ", Type: "LAB", Capacity: 10}, ErrEmptyName},
			{"unknown type", CreateRequest{Name: "X", Type: "POOL", Capacity: 10}, ErrInvalidType},
			{"zero capacity", CreateRequest{Name: "X", Type: "LAB", Capacity: 0}, ErrInvalidCapacity},
			{"negative capacity", CreateRequest{Name: "X", Type: "LAB", Capacity: -5}, ErrInvalidCapacity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, tc.req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	res, err := svc.Create(ctx, CreateRequest{Name: "Main Hall", Type: "HALL", Capacity: 200})
	require.NoError(t, err)

	t.Run("partial update leaves other fields intact", func(t *testing.T) {
		status := StatusMaintenance
		updated, err := svc.Update(ctx, res.ID, UpdateRequest{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, StatusMaintenance, updated.Status)
		assert.Equal(t, "Main Hall", updated.Name)
		assert.Equal(t, 200, updated.Capacity)
	})

	t.Run("invalid fields are rejected", func(t *testing.T) {
		blank := " "
		_, err := svc.Update(ctx, res.ID, UpdateRequest{Name: &blank})
		assert.ErrorIs(t, err, ErrEmptyName)

		badStatus := "CLOSED"
		_, err = svc.Update(ctx, res.ID, UpdateRequest{Status: &badStatus})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown resource", func(t *testing.T) {
		name := "New Name"
		_, err := svc.Update(ctx, uuid.NewString(), UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPhotoLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService()

	res, err := svc.Create(ctx, CreateRequest{Name: "Seminar Room B", Type: "SEMINAR", Capacity: 12})
	require.NoError(t, err)

	t.Run("photo before upload", func(t *testing.T) {
		_, err := svc.Photo(ctx, res.ID, false)
		assert.ErrorIs(t, err, ErrNoPhoto)
	})

	t.Run("attach stores original and thumbnail", func(t *testing.T) {
		require.NoError(t, svc.AttachPhoto(ctx, res.ID, bytes.NewReader(testJPEG(t))))

		stored, err := repo.GetByID(ctx, res.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PhotoPath)
		assert.True(t, store.has(*stored.PhotoPath))
		assert.True(t, store.has(*stored.PhotoPath+".thumb.jpg"))
	})

	t.Run("serve photo and thumbnail", func(t *testing.T) {
		rc, err := svc.Photo(ctx, res.ID, false)
		require.NoError(t, err)
		original, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.NotEmpty(t, original)

		rc, err = svc.Photo(ctx, res.ID, true)
		require.NoError(t, err)
		thumbBytes, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		// Thumbnail decodes to a JPEG inside the bounding box.
		thumbImg, err := jpeg.Decode(bytes.NewReader(thumbBytes))
		require.NoError(t, err)
		assert.LessOrEqual(t, thumbImg.Bounds().Dx(), 320)
		assert.LessOrEqual(t, thumbImg.Bounds().Dy(), 240)
	})

	t.Run("attach rejects non-image content", func(t *testing.T) {
		err := svc.AttachPhoto(ctx, res.ID, bytes.NewReader([]byte("not an image")))
		assert.Error(t, err)
	})

	t.Run("delete removes the blobs", func(t *testing.T) {
		stored, err := repo.GetByID(ctx, res.ID)
		require.NoError(t, err)
		key := *stored.PhotoPath

		require.NoError(t, svc.Delete(ctx, res.ID))
		assert.False(t, store.has(key))
		assert.False(t, store.has(key+".thumb.jpg"))
	})
}
