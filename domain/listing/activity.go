package listing

import (
	"time"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
)

type ActivityType string

const (
	ActivityTypeListed    ActivityType = "listed"
	ActivityTypePurchased ActivityType = "purchased"
	ActivityTypeRelisted  ActivityType = "relisted"
	ActivityTypeDelisted  ActivityType = "delisted"
)

// Activity is the durable form of a lifecycle event, carrying the full
// listing snapshot at the moment of the transition.
type Activity struct {
	ActivityId string       `json:"activityId" bson:"activityId"`
	Type       ActivityType `json:"type" bson:"type"`
	Listing    Listing      `json:"listing" bson:"listing"`
	Time       time.Time    `json:"time" bson:"time"`
}

type ActivityFindAllOptions struct {
	ItemId  *ItemId
	Type    *ActivityType
	Account *domain.Address
	Offset  *int32
	Limit   *int32
}

type ActivityFindAllOptionsFunc func(*ActivityFindAllOptions) error

func GetActivityFindAllOptions(opts ...ActivityFindAllOptionsFunc) (ActivityFindAllOptions, error) {
	res := ActivityFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func ActivityWithItemId(id ItemId) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.ItemId = &id
		return nil
	}
}

func ActivityWithType(t ActivityType) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func ActivityWithAccount(account domain.Address) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		account = account.ToLower()
		options.Account = &account
		return nil
	}
}

func ActivityWithPagination(offset int32, limit int32) ActivityFindAllOptionsFunc {
	return func(options *ActivityFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx ctx.Ctx, activity *Activity) error
	FindAll(ctx ctx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}
