// Package store provides read-only access to the internship records the assistant answers about.
package store

import (
	"context"
	"time"

	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

// Store reads records of one kind. found=false with a nil error means the id does not exist.
type Store[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (T, bool, error)
}

// Stores groups one store per entity kind.
type Stores struct {
	Offers               Store[models.Offer]
	Applications         Store[models.Application]
	Agreements           Store[models.Agreement]
	Invitations          Store[models.InterviewInvitation]
	StudentEvaluations   Store[models.StudentEvaluation]
	WorkplaceEvaluations Store[models.WorkplaceEvaluation]
	Notifications        Store[models.Notification]
}

// WithCache wraps every FindByID in a Redis read-through cache. A non-positive ttl returns s unchanged.
func (s Stores) WithCache(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) Stores {
	if rdb == nil || ttl <= 0 {
		return s
	}
	return Stores{
		Offers:               NewCachedStore(s.Offers, rdb, models.KindOffer, ttl, log),
		Applications:         NewCachedStore(s.Applications, rdb, models.KindApplication, ttl, log),
		Agreements:           NewCachedStore(s.Agreements, rdb, models.KindAgreement, ttl, log),
		Invitations:          NewCachedStore(s.Invitations, rdb, models.KindInterviewInvitation, ttl, log),
		StudentEvaluations:   NewCachedStore(s.StudentEvaluations, rdb, models.KindStudentEvaluation, ttl, log),
		WorkplaceEvaluations: NewCachedStore(s.WorkplaceEvaluations, rdb, models.KindWorkplaceEvaluation, ttl, log),
		Notifications:        NewCachedStore(s.Notifications, rdb, models.KindNotification, ttl, log),
	}
}
