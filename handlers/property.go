package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/models"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/services"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/utils"
)

const (
	photosFieldName = "photos"
	maxPhotoUploads = 4

	allPropertiesCacheKey = "properties:all"
	listCacheTTL          = time.Minute
)

type PropertyController struct {
	service *services.PropertyService
	cache   *utils.Cache
}

func NewPropertyController(service *services.PropertyService, cache *utils.Cache) *PropertyController {
	return &PropertyController{service: service, cache: cache}
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	var input models.PropertyInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing required property fields"})
	}

	files, err := readPhotoFiles(c)
	if err != nil {
		if errors.Is(err, errTooManyFiles) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("A maximum of %d photos is allowed", maxPhotoUploads)})
		}
		c.Logger().Error("reading photo files: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	property, err := pc.service.Create(c.Request().Context(), userID, input, files)
	if err != nil {
		c.Logger().Error("property creation: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"property":           property,
		"cloudinaryResponse": property.Photos,
	})
}

func (pc *PropertyController) GetAllProperties(c echo.Context) error {
	ctx := c.Request().Context()

	var cached []models.PropertyView
	if pc.cache.Get(ctx, allPropertiesCacheKey, &cached) {
		return c.JSON(http.StatusOK, cached)
	}

	views, err := pc.service.ListAll(ctx)
	if err != nil {
		c.Logger().Error("get all properties: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	if err := pc.cache.Set(ctx, allPropertiesCacheKey, views, listCacheTTL); err != nil {
		c.Logger().Debug("caching property list: ", err)
	}

	return c.JSON(http.StatusOK, views)
}

func (pc *PropertyController) GetUserProperties(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)

	views, err := pc.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("get user properties: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, views)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}

	var input models.PropertyInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing required property fields"})
	}

	files, err := readPhotoFiles(c)
	if err != nil {
		if errors.Is(err, errTooManyFiles) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("A maximum of %d photos is allowed", maxPhotoUploads)})
		}
		c.Logger().Error("reading photo files: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	property, err := pc.service.Update(c.Request().Context(), id, input, files)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		c.Logger().Error("property update: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}

	if err := pc.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		c.Logger().Error("property delete: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	pc.invalidateListCache(c)

	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) GetPropertyByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
	}

	property, err := pc.service.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Property not found"})
		}
		c.Logger().Error("get property by id: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) SearchProperties(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	ctx := c.Request().Context()
	cacheKey := searchCacheKey(req)

	var cached []models.Property
	if pc.cache.Get(ctx, cacheKey, &cached) {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.service.Search(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationRequired):
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Location parameter is required"})
		case errors.Is(err, services.ErrNoMatches):
			return c.JSON(http.StatusNotFound, map[string]string{"message": "No properties found matching the criteria"})
		default:
			c.Logger().Error("property search: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
		}
	}

	if err := pc.cache.Set(ctx, cacheKey, properties, listCacheTTL); err != nil {
		c.Logger().Debug("caching search results: ", err)
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) invalidateListCache(c echo.Context) {
	if err := pc.cache.Invalidate(c.Request().Context(), allPropertiesCacheKey); err != nil {
		c.Logger().Debug("invalidating property list cache: ", err)
	}
}

var errTooManyFiles = errors.New("too many files")

// readPhotoFiles buffers every uploaded photo into memory in submission order.
// A request with no multipart files yields an empty slice, not an error;
// whether that is acceptable is up to the operation.
func readPhotoFiles(c echo.Context) ([]services.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File[photosFieldName]
	if len(headers) > maxPhotoUploads {
		return nil, errTooManyFiles
	}

	files := make([]services.FileUpload, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, services.FileUpload{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

func searchCacheKey(req models.SearchRequest) string {
	params := map[string]string{"location": req.Location}
	if req.BuyOrRent != nil {
		params["buyOrRent"] = *req.BuyOrRent
	}
	if req.MinPrice != nil {
		params["minPrice"] = strconv.FormatFloat(*req.MinPrice, 'f', -1, 64)
	}
	if req.MaxPrice != nil {
		params["maxPrice"] = strconv.FormatFloat(*req.MaxPrice, 'f', -1, 64)
	}
	return utils.GenerateQueryCacheKey("properties:search", params)
}
