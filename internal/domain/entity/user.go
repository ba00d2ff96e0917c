package entity

import "time"

// User is the profile document written at registration. The identity
// provider owns the credential; this record only mirrors display data.
type User struct {
	ID          string    `json:"id" firestore:"id"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	PhotoURL    string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
