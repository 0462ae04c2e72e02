// internal/domain/profile/entity.go
package profile

import (
	"errors"
	"strings"
	"time"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
)

var (
	ErrInvalidProfile = errors.New("profile: invalid")
)

// Profile is the per-user remote document. One document per principal,
// keyed by UID, holding both state arrays (favorites and cart). Each
// synchronizer writes only its own field.
type Profile struct {
	UID         string         `json:"uid" firestore:"uid"`
	DisplayName string         `json:"displayName" firestore:"displayName"`
	Email       string         `json:"email" firestore:"email"`
	CreatedAt   time.Time      `json:"createdAt" firestore:"createdAt"`
	Favorites   []catalog.Game `json:"favorites" firestore:"favorites"`
	Cart        []cart.Line    `json:"cart" firestore:"cart"`
}

// New creates an empty profile for first-touch provisioning.
func New(uid, displayName, email string, now time.Time) (*Profile, error) {
	id := strings.TrimSpace(uid)
	if id == "" || now.IsZero() {
		return nil, ErrInvalidProfile
	}

	return &Profile{
		UID:         id,
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
		CreatedAt:   now,
		Favorites:   []catalog.Game{},
		Cart:        []cart.Line{},
	}, nil
}
