package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/metrics"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/ws"
	"github.com/go-chi/chi/v5"
)

type ShopSpaceHandler struct {
	shopService *service.ShopSpaceService
	hub         *ws.Hub
}

func NewShopSpaceHandler(shopService *service.ShopSpaceService, hub *ws.Hub) *ShopSpaceHandler {
	return &ShopSpaceHandler{shopService: shopService, hub: hub}
}

type CreateShopSpaceRequest struct {
	Username string  `json:"username"`
	ShopName string  `json:"shop_name"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

type AddEquipmentRequest struct {
	EquipmentID uint    `json:"equipment_id"`
	X           float64 `json:"x_coordinate"`
	Y           float64 `json:"y_coordinate"`
	Z           float64 `json:"z_coordinate"`
	RotationDeg float64 `json:"rotation_deg"`
	DateAdded   string  `json:"date_added"`
}

type UpdatePositionRequest struct {
	X           *float64 `json:"x_coordinate"`
	Y           *float64 `json:"y_coordinate"`
	Z           *float64 `json:"z_coordinate"`
	RotationDeg *float64 `json:"rotation_deg"`
}

type UpdateDimensionsRequest struct {
	ShopName *string  `json:"shop_name"`
	Length   *float64 `json:"length"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
}

type EquipmentPositionEntry struct {
	EquipmentID uint     `json:"equipment_id"`
	X           *float64 `json:"x_coordinate"`
	Y           *float64 `json:"y_coordinate"`
	Z           *float64 `json:"z_coordinate"`
	RotationDeg *float64 `json:"rotation_deg"`
}

type UpdateLayoutRequest struct {
	ShopName           *string                  `json:"shop_name"`
	Length             *float64                 `json:"length"`
	Width              *float64                 `json:"width"`
	Height             *float64                 `json:"height"`
	EquipmentPositions []EquipmentPositionEntry `json:"equipment_positions"`
}

type UpdateLayoutResponse struct {
	Shop               *domain.ShopSpace `json:"shop"`
	FailedEquipmentIDs []uint            `json:"failed_equipment_ids"`
}

func (h *ShopSpaceHandler) publish(eventType string, shopID string, shop *domain.ShopSpace) {
	if h.hub != nil {
		h.hub.Publish(&ws.Event{Type: eventType, ShopID: shopID, Shop: shop})
	}
}

func (h *ShopSpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateShopSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.ShopName == "" {
		respondError(w, http.StatusBadRequest, "username and shop_name are required")
		return
	}

	shop, err := h.shopService.CreateShopSpace(r.Context(), req.Username, req.ShopName, req.Length, req.Width, req.Height)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordShopOperation("created")
	respondJSON(w, http.StatusCreated, shop)
}

func (h *ShopSpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")

	shop, err := h.shopService.GetShopSpaceByID(r.Context(), shopID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if shop == nil {
		respondError(w, http.StatusNotFound, "shop space not found")
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopSpaceHandler) ListByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	shops, err := h.shopService.GetShopSpacesByUsername(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shops)
}

func (h *ShopSpaceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shopService.GetAllShopSpaces(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shops)
}

func (h *ShopSpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")

	deleted, err := h.shopService.DeleteShopSpace(r.Context(), shopID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "shop space not found")
		return
	}

	metrics.RecordShopOperation("deleted")
	h.publish(ws.EventShopSpaceDeleted, shopID, nil)
	respondJSON(w, http.StatusOK, map[string]string{"message": "shop space deleted"})
}

func (h *ShopSpaceHandler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")

	var req AddEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	placement := domain.Placement{
		EquipmentID: req.EquipmentID,
		X:           req.X,
		Y:           req.Y,
		Z:           req.Z,
		RotationDeg: req.RotationDeg,
	}
	if req.DateAdded != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateAdded)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date_added must be RFC 3339")
			return
		}
		placement.DateAdded = parsed
	}

	shop, err := h.shopService.AddEquipment(r.Context(), shopID, placement)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordShopOperation("equipment_added")
	h.publish(ws.EventEquipmentAdded, shopID, shop)
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopSpaceHandler) RemoveEquipment(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	equipmentID, err := strconv.ParseUint(chi.URLParam(r, "equipmentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	shop, err := h.shopService.RemoveEquipment(r.Context(), shopID, uint(equipmentID))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordShopOperation("equipment_removed")
	h.publish(ws.EventEquipmentRemoved, shopID, shop)
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopSpaceHandler) UpdateEquipmentPosition(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")
	equipmentID, err := strconv.ParseUint(chi.URLParam(r, "equipmentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var req UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shop, err := h.shopService.UpdateEquipmentPosition(r.Context(), shopID, uint(equipmentID), req.X, req.Y, req.Z, req.RotationDeg)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordShopOperation("equipment_moved")
	h.publish(ws.EventEquipmentMoved, shopID, shop)
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopSpaceHandler) UpdateDimensions(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")

	var req UpdateDimensionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shop, err := h.shopService.UpdateDimensions(r.Context(), shopID, req.Length, req.Width, req.Height, req.ShopName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordShopOperation("dimensions_changed")
	h.publish(ws.EventDimensionsChanged, shopID, shop)
	respondJSON(w, http.StatusOK, shop)
}

func (h *ShopSpaceHandler) UpdateLayout(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopID")

	var req UpdateLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.LayoutUpdate{
		ShopName: req.ShopName,
		Length:   req.Length,
		Width:    req.Width,
		Height:   req.Height,
	}
	for _, entry := range req.EquipmentPositions {
		input.Positions = append(input.Positions, service.PositionUpdate{
			EquipmentID: entry.EquipmentID,
			X:           entry.X,
			Y:           entry.Y,
			Z:           entry.Z,
			RotationDeg: entry.RotationDeg,
		})
	}

	shop, failed, err := h.shopService.UpdateLayout(r.Context(), shopID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if failed == nil {
		failed = []uint{}
	}

	metrics.RecordShopOperation("layout_updated")
	h.publish(ws.EventLayoutUpdated, shopID, shop)
	respondJSON(w, http.StatusOK, UpdateLayoutResponse{Shop: shop, FailedEquipmentIDs: failed})
}
