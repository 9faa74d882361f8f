package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/models"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/storage"
)

var (
	ErrNoFilesProvided  = errors.New("no files provided or invalid file data")
	ErrPropertyNotFound = errors.New("property not found")
	ErrNoMatches        = errors.New("no properties found matching the criteria")
	ErrLocationRequired = errors.New("location parameter is required")
)

// FileUpload is one multipart file already read into memory. The content type
// is whatever the client declared; it is not verified against the bytes.
type FileUpload struct {
	Data        []byte
	ContentType string
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (*storage.UploadResult, error)
}

type PropertyStore interface {
	Insert(ctx context.Context, property *models.Property) (*models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	FindAll(ctx context.Context) ([]models.Property, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error)
	Search(ctx context.Context, req models.SearchRequest) ([]models.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.PropertyInput, photos []models.Photo) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// PropertyService orchestrates photo uploads and persistence. Uploads for one
// request run concurrently and must all succeed before anything is written to
// the store; already-uploaded photos of a failed request are not cleaned up.
type PropertyService struct {
	store    PropertyStore
	uploader Uploader
}

func NewPropertyService(store PropertyStore, uploader Uploader) *PropertyService {
	return &PropertyService{store: store, uploader: uploader}
}

func (s *PropertyService) Create(ctx context.Context, userID primitive.ObjectID, input models.PropertyInput, files []FileUpload) (*models.Property, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesProvided
	}

	photos, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		UserID:       userID,
		OwnerName:    input.OwnerName,
		OwnerMobile:  input.OwnerMobile,
		OwnerEmail:   input.OwnerEmail,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Location:     input.Location,
		LocationLink: input.LocationLink,
		Photos:       photos,
		Sell:         input.Sell,
		Rent:         input.Rent,
		Furnished:    input.Furnished,
		Baths:        input.Baths,
		Beds:         input.Beds,
	}
	return s.store.Insert(ctx, property)
}

// Update replaces every mutable field. The photo list is replaced
// unconditionally: with the freshly uploaded photos when files are present,
// with an empty list otherwise.
func (s *PropertyService) Update(ctx context.Context, id primitive.ObjectID, input models.PropertyInput, files []FileUpload) (*models.Property, error) {
	photos := []models.Photo{}
	if len(files) > 0 {
		uploaded, err := s.uploadAll(ctx, files)
		if err != nil {
			return nil, err
		}
		photos = uploaded
	}

	updated, err := s.store.Update(ctx, id, input, photos)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPropertyNotFound
	}
	return updated, nil
}

// ListAll returns the public view of every property that has at least one
// photo; photo-less records are treated as incomplete and dropped.
func (s *PropertyService) ListAll(ctx context.Context) ([]models.PropertyView, error) {
	properties, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.PropertyView, 0, len(properties))
	for _, property := range properties {
		if len(property.Photos) == 0 {
			continue
		}
		views = append(views, property.PublicView())
	}
	return views, nil
}

// ListByUser returns the caller's own properties, photo-less ones included.
func (s *PropertyService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.PropertyView, error) {
	properties, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.PropertyView, 0, len(properties))
	for _, property := range properties {
		views = append(views, property.PublicView())
	}
	return views, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	property, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPropertyNotFound
	}
	return nil
}

// Search treats an empty result set as an error rather than an empty success;
// callers surface it as a not-found response.
func (s *PropertyService) Search(ctx context.Context, req models.SearchRequest) ([]models.Property, error) {
	if req.Location == "" {
		return nil, ErrLocationRequired
	}

	properties, err := s.store.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, ErrNoMatches
	}
	return properties, nil
}

// uploadAll uploads every file concurrently and preserves submission order in
// the returned photo list. The first failure cancels the rest and fails the
// whole batch.
func (s *PropertyService) uploadAll(ctx context.Context, files []FileUpload) ([]models.Photo, error) {
	photos := make([]models.Photo, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			res, err := s.uploader.Upload(ctx, file.Data, file.ContentType)
			if err != nil {
				return err
			}
			photos[i] = models.Photo{ContentType: file.ContentType, URL: res.SecureURL}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return photos, nil
}
