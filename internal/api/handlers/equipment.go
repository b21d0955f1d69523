package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ben/workshop-manager/internal/metrics"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/go-chi/chi/v5"
)

const purchaseDateLayout = "2006-01-02"

type EquipmentHandler struct {
	equipmentService *service.EquipmentService
}

func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

type AddEquipmentTypeRequest struct {
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Width                   float64 `json:"width"`
	Height                  float64 `json:"height"`
	Depth                   float64 `json:"depth"`
	MaintenanceIntervalDays int     `json:"maintenance_interval_days"`
	Color                   string  `json:"color"`
	Manufacturer            string  `json:"manufacturer"`
	Model                   string  `json:"model"`
	ImagePath               string  `json:"image_path"`
}

type AddInstanceRequest struct {
	UserID          uint   `json:"user_id"`
	EquipmentTypeID uint   `json:"equipment_type_id"`
	Notes           string `json:"notes"`
	PurchaseDate    string `json:"purchase_date"`
}

type MaintenanceRequest struct {
	MaintenanceDate string `json:"maintenance_date"`
}

func (h *EquipmentHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	types, err := h.equipmentService.GetCatalog(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *EquipmentHandler) AddType(w http.ResponseWriter, r *http.Request) {
	var req AddEquipmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.equipmentService.AddEquipmentType(r.Context(), service.AddEquipmentTypeInput{
		Name:                    req.Name,
		Description:             req.Description,
		Width:                   req.Width,
		Height:                  req.Height,
		Depth:                   req.Depth,
		MaintenanceIntervalDays: req.MaintenanceIntervalDays,
		Color:                   req.Color,
		Manufacturer:            req.Manufacturer,
		Model:                   req.Model,
		ImagePath:               req.ImagePath,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordEquipmentOperation("type_added")
	respondJSON(w, http.StatusCreated, created)
}

func (h *EquipmentHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "typeID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment type id")
		return
	}

	equipmentType, err := h.equipmentService.GetEquipmentTypeByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if equipmentType == nil {
		respondError(w, http.StatusNotFound, "equipment type not found")
		return
	}
	respondJSON(w, http.StatusOK, equipmentType)
}

func (h *EquipmentHandler) AddInstance(w http.ResponseWriter, r *http.Request) {
	var req AddInstanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		parsed, err := time.Parse(purchaseDateLayout, req.PurchaseDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
			return
		}
		purchaseDate = &parsed
	}

	instance, err := h.equipmentService.AddEquipmentToUser(r.Context(), req.UserID, req.EquipmentTypeID, req.Notes, purchaseDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordEquipmentOperation("instance_added")
	respondJSON(w, http.StatusCreated, instance)
}

func (h *EquipmentHandler) GetInstance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "instanceID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	instance, err := h.equipmentService.GetUserEquipmentByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if instance == nil {
		respondError(w, http.StatusNotFound, "equipment not found")
		return
	}
	respondJSON(w, http.StatusOK, instance)
}

func (h *EquipmentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	instances, err := h.equipmentService.GetEquipmentByUser(r.Context(), uint(userID))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instances)
}

func (h *EquipmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	instances, err := h.equipmentService.GetAllUserEquipment(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instances)
}

func (h *EquipmentHandler) DeleteInstance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "instanceID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	deleted, err := h.equipmentService.DeleteUserEquipment(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "equipment not found")
		return
	}

	metrics.RecordEquipmentOperation("instance_deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "equipment deleted"})
}

func (h *EquipmentHandler) PerformMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "instanceID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var req MaintenanceRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var maintenanceDate *time.Time
	if req.MaintenanceDate != "" {
		parsed, err := time.Parse(purchaseDateLayout, req.MaintenanceDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "maintenance_date must be YYYY-MM-DD")
			return
		}
		maintenanceDate = &parsed
	}

	instance, err := h.equipmentService.PerformMaintenance(r.Context(), uint(id), maintenanceDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	metrics.RecordEquipmentOperation("maintenance_performed")
	respondJSON(w, http.StatusOK, instance)
}

func (h *EquipmentHandler) MaintenanceSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	summary, err := h.equipmentService.GetMaintenanceSummary(r.Context(), uint(userID))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *EquipmentHandler) MaintenanceSchedule(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	schedule, err := h.equipmentService.GetMaintenanceSchedule(r.Context(), uint(userID))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

func (h *EquipmentHandler) OverdueMaintenance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	instances, err := h.equipmentService.GetOverdueMaintenance(r.Context(), uint(userID))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instances)
}

func (h *EquipmentHandler) MaintenanceDue(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	daysAhead := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		daysAhead = parsed
	}

	instances, err := h.equipmentService.GetMaintenanceDue(r.Context(), uint(userID), daysAhead)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instances)
}
