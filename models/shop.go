package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Shop shares the mall's descriptive shape plus a mandatory owning mall.
// The reference is validated at create time; there is no cascade on delete.
type Shop struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" binding:"required"`
	MallID          primitive.ObjectID `json:"mallId" bson:"mallId" binding:"required"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	FullDescription string             `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Image           string             `json:"image,omitempty" bson:"image,omitempty"`
	Images          []string           `json:"images,omitempty" bson:"images,omitempty"`
	Location        string             `json:"location,omitempty" bson:"location,omitempty"`
	Address         string             `json:"address,omitempty" bson:"address,omitempty"`
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	Website         string             `json:"website,omitempty" bson:"website,omitempty"`
	Rating          float64            `json:"rating,omitempty" bson:"rating,omitempty"`
	TotalReviews    int                `json:"totalReviews,omitempty" bson:"totalReviews,omitempty"`
	Tags            []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Hours           map[string]string  `json:"hours,omitempty" bson:"hours,omitempty"`
	SocialMedia     *SocialMedia       `json:"socialMedia,omitempty" bson:"socialMedia,omitempty"`
}
