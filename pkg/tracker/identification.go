package tracker

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/database"
	"github.com/yathra/yathra/pkg/redis_client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var identificationCache *cache.Cache[string]

func CreateIdentificationCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))

	identificationCache = cache.New[string](redisStore)
}

// ResolveBusID maps a conductor supplied search term (a bus id in any casing,
// or the conductor's registered mobile number) to the canonical bus id.
// Unregistered terms resolve to themselves.
func ResolveBusID(ctx context.Context, searchTerm string) string {
	searchTerm = strings.TrimSpace(searchTerm)
	cacheKey := "busidentification:" + strings.ToLower(searchTerm)

	if identificationCache != nil {
		cachedBusID, _ := identificationCache.Get(ctx, cacheKey)
		if cachedBusID != "" {
			return cachedBusID
		}
	}

	busesCollection := database.GetCollection("buses")

	var bus *btdf.Bus
	busesCollection.FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"busid": caseInsensitiveMatch(searchTerm)},
			bson.M{"mobileno": searchTerm},
		},
	}).Decode(&bus)

	if bus == nil {
		return searchTerm
	}

	if identificationCache != nil {
		identificationCache.Set(ctx, cacheKey, bus.BusID)
	}

	return bus.BusID
}

func caseInsensitiveMatch(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(value) + "$",
		Options: "i",
	}
}
