package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/models"
)

// PropertyStore wraps the properties collection. Lookups that miss return
// (nil, nil); the caller decides what a missing document means.
type PropertyStore struct {
	collection *mongo.Collection
}

func NewPropertyStore(collection *mongo.Collection) *PropertyStore {
	return &PropertyStore{collection: collection}
}

func (s *PropertyStore) Insert(ctx context.Context, property *models.Property) (*models.Property, error) {
	res, err := s.collection.InsertOne(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		property.ID = id
	}
	return property, nil
}

func (s *PropertyStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find property %s: %w", id.Hex(), err)
	}
	return &property, nil
}

func (s *PropertyStore) FindAll(ctx context.Context) ([]models.Property, error) {
	return s.find(ctx, bson.M{})
}

func (s *PropertyStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *PropertyStore) Search(ctx context.Context, req models.SearchRequest) ([]models.Property, error) {
	return s.find(ctx, BuildSearchFilter(req))
}

// Update replaces every mutable field, photos included. The owner and the id
// are left untouched. Returns (nil, nil) when the id does not resolve.
func (s *PropertyStore) Update(ctx context.Context, id primitive.ObjectID, input models.PropertyInput, photos []models.Photo) (*models.Property, error) {
	update := bson.M{"$set": bson.M{
		"ownerName":    input.OwnerName,
		"ownerMobile":  input.OwnerMobile,
		"ownerEmail":   input.OwnerEmail,
		"title":        input.Title,
		"description":  input.Description,
		"price":        input.Price,
		"location":     input.Location,
		"locationLink": input.LocationLink,
		"photos":       photos,
		"sell":         input.Sell,
		"rent":         input.Rent,
		"furnished":    input.Furnished,
		"baths":        input.Baths,
		"beds":         input.Beds,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update property %s: %w", id.Hex(), err)
	}
	return &property, nil
}

func (s *PropertyStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete property %s: %w", id.Hex(), err)
	}
	return res.DeletedCount > 0, nil
}

func (s *PropertyStore) find(ctx context.Context, filter bson.M) ([]models.Property, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// BuildSearchFilter translates a search request into a bson filter. Location
// is matched as a case-insensitive substring. A buyOrRent value of "buy"
// requires sell==true; any other provided value requires rent==true.
func BuildSearchFilter(req models.SearchRequest) bson.M {
	filter := bson.M{
		"location": bson.M{"$regex": req.Location, "$options": "i"},
	}

	if req.BuyOrRent != nil {
		if *req.BuyOrRent == "buy" {
			filter["sell"] = true
		} else {
			filter["rent"] = true
		}
	}

	if req.MinPrice != nil || req.MaxPrice != nil {
		price := bson.M{}
		if req.MinPrice != nil {
			price["$gte"] = *req.MinPrice
		}
		if req.MaxPrice != nil {
			price["$lte"] = *req.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}
