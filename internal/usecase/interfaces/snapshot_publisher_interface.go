package interfaces

import "context"

// Collection names a stream of snapshots subscribers can follow.
type Collection string

const (
	CollectionOrdersActive    Collection = "orders/active"
	CollectionOrdersDelivered Collection = "orders/delivered"
	CollectionOrdersDeleted   Collection = "orders/deleted"
	CollectionServices        Collection = "services"
	CollectionCosts           Collection = "costs"
)

// Collections lists every collection that can be streamed.
var Collections = []Collection{
	CollectionOrdersActive,
	CollectionOrdersDelivered,
	CollectionOrdersDeleted,
	CollectionServices,
	CollectionCosts,
}

// ISnapshotPublisher pushes fresh snapshots of the given collections to
// their subscribers. Delivery is best effort.
type ISnapshotPublisher interface {
	Notify(ctx context.Context, collections ...Collection)
}
