package ws

import (
	"encoding/json"
	"sync"

	"github.com/ben/workshop-manager/internal/domain"
	"go.uber.org/zap"
)

const (
	EventEquipmentAdded    = "equipment_added"
	EventEquipmentRemoved  = "equipment_removed"
	EventEquipmentMoved    = "equipment_moved"
	EventDimensionsChanged = "dimensions_changed"
	EventLayoutUpdated     = "layout_updated"
	EventShopSpaceDeleted  = "shop_space_deleted"
)

// Event is the wire payload fanned out to every client subscribed to a
// shop space. Shop carries the post-mutation row so clients never have
// to refetch; it is nil for deletion events.
type Event struct {
	Type   string            `json:"type"`
	ShopID string            `json:"shop_id"`
	Shop   *domain.ShopSpace `json:"shop,omitempty"`
}

type Hub struct {
	clients    map[*Client]bool
	shops      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	log        *zap.Logger
	mu         sync.RWMutex
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		shops:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.shops = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
				subs, ok := h.shops[client.shopID]
				if !ok {
					subs = make(map[*Client]bool)
					h.shops[client.shopID] = subs
				}
				subs[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					if subs, ok := h.shops[client.shopID]; ok {
						delete(subs, client)
						if len(subs) == 0 {
							delete(h.shops, client.shopID)
						}
					}
					client.Close()
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Stop blocks until Run has exited and every client is closed.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) deliver(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.shops[event.ShopID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the event rather than block the hub.
			h.log.Warn("dropping event for slow client",
				zap.String("shop_id", event.ShopID),
				zap.String("client_id", client.id.String()))
		}
	}
}

// Publish is safe to call after Stop; events sent to a stopped hub are
// discarded.
func (h *Hub) Publish(event *Event) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- event:
	default:
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.register <- client:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
	}
}
