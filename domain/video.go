package domain

import "time"

// Video is an external entity. The identity service only reads it to enrich
// watch history, keyed by id and owner.
type Video struct {
	ID        int64     `bson:"_id" json:"id"`
	OwnerID   int64     `bson:"owner_id" json:"owner_id"`
	Title     string    `bson:"title" json:"title"`
	Thumbnail string    `bson:"thumbnail" json:"thumbnail"`
	Duration  float64   `bson:"duration" json:"duration"`
	Views     int64     `bson:"views" json:"views"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
