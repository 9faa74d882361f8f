package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Photo struct {
	ContentType string `bson:"contentType" json:"contentType"`
	URL         string `bson:"url" json:"url"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	OwnerName    string             `bson:"ownerName" json:"ownerName"`
	OwnerMobile  string             `bson:"ownerMobile" json:"ownerMobile"`
	OwnerEmail   string             `bson:"ownerEmail" json:"ownerEmail"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Location     string             `bson:"location" json:"location"`
	LocationLink string             `bson:"locationLink" json:"locationLink"`
	Photos       []Photo            `bson:"photos" json:"photos"`
	Sell         bool               `bson:"sell" json:"sell"`
	Rent         bool               `bson:"rent" json:"rent"`
	Furnished    bool               `bson:"furnished" json:"furnished"`
	Baths        int                `bson:"baths" json:"baths"`
	Beds         int                `bson:"beds" json:"beds"`
}

// PropertyInput carries the mutable fields of a property as submitted by a
// create or update request. The owner is fixed at creation time and is never
// part of the input.
type PropertyInput struct {
	OwnerName    string  `form:"ownerName" validate:"required"`
	OwnerMobile  string  `form:"ownerMobile" validate:"required"`
	OwnerEmail   string  `form:"ownerEmail" validate:"required"`
	Title        string  `form:"title" validate:"required"`
	Description  string  `form:"description" validate:"required"`
	Price        float64 `form:"price" validate:"gte=0"`
	Location     string  `form:"location" validate:"required"`
	LocationLink string  `form:"locationLink" validate:"required"`
	Sell         bool    `form:"sell"`
	Rent         bool    `form:"rent"`
	Furnished    bool    `form:"furnished"`
	Baths        int     `form:"baths" validate:"gte=0"`
	Beds         int     `form:"beds" validate:"gte=0"`
}

// PropertyView is the public projection used by the listing endpoints:
// photos flattened to bare URLs.
type PropertyView struct {
	ID           primitive.ObjectID `json:"_id"`
	UserID       primitive.ObjectID `json:"userId"`
	OwnerName    string             `json:"ownerName"`
	OwnerMobile  string             `json:"ownerMobile"`
	OwnerEmail   string             `json:"ownerEmail"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Location     string             `json:"location"`
	LocationLink string             `json:"locationLink"`
	Photos       []string           `json:"photos"`
	Sell         bool               `json:"sell"`
	Rent         bool               `json:"rent"`
	Furnished    bool               `json:"furnished"`
	Baths        int                `json:"baths"`
	Beds         int                `json:"beds"`
}

func (p Property) PublicView() PropertyView {
	urls := make([]string, 0, len(p.Photos))
	for _, photo := range p.Photos {
		urls = append(urls, photo.URL)
	}
	return PropertyView{
		ID:           p.ID,
		UserID:       p.UserID,
		OwnerName:    p.OwnerName,
		OwnerMobile:  p.OwnerMobile,
		OwnerEmail:   p.OwnerEmail,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Location:     p.Location,
		LocationLink: p.LocationLink,
		Photos:       urls,
		Sell:         p.Sell,
		Rent:         p.Rent,
		Furnished:    p.Furnished,
		Baths:        p.Baths,
		Beds:         p.Beds,
	}
}

type SearchRequest struct {
	Location  string   `json:"location"`
	BuyOrRent *string  `json:"buyOrRent"`
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`
}
