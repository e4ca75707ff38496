package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laundry_desk/internal/infrastructure/logger"
	"laundry_desk/internal/infrastructure/realtime"
	"laundry_desk/internal/usecase/interfaces"
	"laundry_desk/pkg"
)

const defaultKeepAlive = 25 * time.Second

var errUnknownCollection = pkg.NewDomainErrorSimple("UNKNOWN_COLLECTION", "Unknown collection", http.StatusNotFound)

// SnapshotSource is implemented by realtime.Hub.
type SnapshotSource interface {
	Known(collection interfaces.Collection) bool
	Subscribe(collection interfaces.Collection) (<-chan realtime.Snapshot, func())
	Current(ctx context.Context, collection interfaces.Collection) (realtime.Snapshot, error)
}

// StreamHandler pushes full collection snapshots as server-sent events: one
// on connect, then one per change.
type StreamHandler struct {
	source    SnapshotSource
	keepAlive time.Duration
}

func NewStreamHandler(source SnapshotSource, keepAlive time.Duration) *StreamHandler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	return &StreamHandler{source: source, keepAlive: keepAlive}
}

// Stream godoc
// @Summary      Follow a collection as server-sent events
// @Tags         stream
// @Produce      text/event-stream
// @Param        collection  path  string  true  "orders/active, orders/delivered, orders/deleted, services or costs"
// @Success      200
// @Failure      404  {object}  pkg.HTTPError
// @Router       /stream/{collection} [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	col := interfaces.Collection(strings.Trim(c.Param("collection"), "/"))
	if !h.source.Known(col) {
		c.JSON(errUnknownCollection.HTTPStatus, errUnknownCollection.ToHTTPError())
		return
	}

	// Subscribe before reading the initial snapshot so no change is missed.
	updates, cancel := h.source.Subscribe(col)
	defer cancel()

	initial, err := h.source.Current(c.Request.Context(), col)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	log := logger.FromContext(c).With(zap.String("collection", string(col)))
	log.Debug("stream opened")

	sent := initial.Version
	h.send(c, initial)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			log.Debug("stream closed by client")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if snap.Version <= sent {
				continue
			}
			sent = snap.Version
			h.send(c, snap)
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			c.Writer.Flush()
		}
	}
}

func (h *StreamHandler) send(c *gin.Context, snap realtime.Snapshot) {
	c.SSEvent("snapshot", snap)
	c.Writer.Flush()
}
