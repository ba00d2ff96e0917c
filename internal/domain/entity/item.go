package entity

import "time"

type Location struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// Item is a rental listing.
type Item struct {
	ID        string    `json:"id" firestore:"id"`
	Title     string    `json:"title" firestore:"title"`
	Price     float64   `json:"price" firestore:"price"`
	Distance  float64   `json:"distance" firestore:"distance"`
	Image     string    `json:"image" firestore:"image"`
	Category  string    `json:"category" firestore:"category"`
	Location  Location  `json:"location" firestore:"location"`
	OwnerID   string    `json:"owner_id" firestore:"ownerId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
