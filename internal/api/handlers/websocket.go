package handlers

import (
	"net/http"

	"github.com/ben/workshop-manager/internal/logger"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/ws"
	gws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *ws.Hub
	shopService *service.ShopSpaceService
}

func NewWebSocketHandler(hub *ws.Hub, shopService *service.ShopSpaceService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, shopService: shopService}
}

// Handle subscribes the caller to live change events for one shop
// space, identified by the shop_id query parameter.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		http.Error(w, "shop_id required", http.StatusBadRequest)
		return
	}

	shop, err := h.shopService.GetShopSpaceByID(r.Context(), shopID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if shop == nil {
		http.Error(w, "shop space not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, shopID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
