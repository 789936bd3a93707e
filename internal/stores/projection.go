package stores

import (
	"sort"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

// StoreView is the role-projected shape of a store in listing responses.
// Exactly one concrete view exists per caller role; the variant is chosen by
// Project, never by field-presence checks downstream.
type StoreView interface {
	// overallRating exposes the derived average for post-aggregation sorting.
	overallRating() float64
}

// AdminStoreView is what admins see: contact details plus ownership.
type AdminStoreView struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Address string     `json:"address"`
	Rating  float64    `json:"rating"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

func (v AdminStoreView) overallRating() float64 { return v.Rating }

// NormalStoreView is what normal users see: the overall average plus their
// own submitted rating, when any.
type NormalStoreView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	OverallRating float64   `json:"overallRating"`
	MyRating      *int      `json:"myRating"`
}

func (v NormalStoreView) overallRating() float64 { return v.OverallRating }

// OwnerStoreView is the fallback shape for store owners and any other role.
type OwnerStoreView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	Rating  float64   `json:"rating"`
}

func (v OwnerStoreView) overallRating() float64 { return v.Rating }

// Project maps a store and its aggregate onto the caller's view. myRating is
// the caller's own rating for this store (nil when none); it is only emitted
// for the normal role.
func Project(store models.Store, agg ratings.Summary, role enums.Role, myRating *int) StoreView {
	switch role {
	case enums.RoleAdmin:
		return AdminStoreView{
			ID:      store.ID,
			Name:    store.Name,
			Email:   store.Email,
			Address: store.Address,
			Rating:  agg.Average,
			OwnerID: store.OwnerID,
		}
	case enums.RoleNormal:
		return NormalStoreView{
			ID:            store.ID,
			Name:          store.Name,
			Address:       store.Address,
			OverallRating: agg.Average,
			MyRating:      myRating,
		}
	default:
		return OwnerStoreView{
			ID:      store.ID,
			Name:    store.Name,
			Email:   store.Email,
			Address: store.Address,
			Rating:  agg.Average,
		}
	}
}

// SortByRating orders projected views by their derived average. It runs after
// aggregation because the rating is not a stored column; the sort is stable
// so equal averages keep their database order.
func SortByRating(views []StoreView, desc bool) {
	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return views[i].overallRating() > views[j].overallRating()
		}
		return views[i].overallRating() < views[j].overallRating()
	})
}
