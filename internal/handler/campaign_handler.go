package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/strait-command/api/internal/auth"
	"github.com/strait-command/api/internal/service"
	"github.com/strait-command/api/pkg/strait"
)

// CampaignHandler handles campaign endpoints.
type CampaignHandler struct {
	svc   *service.CampaignService
	wsHub *Hub
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc *service.CampaignService, wsHub *Hub) *CampaignHandler {
	return &CampaignHandler{svc: svc, wsHub: wsHub}
}

// CreateCampaign handles POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	operatorID := auth.OperatorFromContext(r.Context())
	var req struct {
		Name     string `json:"name"`
		Scenario string `json:"scenario,omitempty"`
		Seed     int64  `json:"seed,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	campaign, err := h.svc.CreateCampaign(r.Context(), req.Name, operatorID, req.Scenario, req.Seed)
	if err != nil {
		if errors.Is(err, service.ErrUnknownScenario) {
			writeError(w, http.StatusBadRequest, "unknown scenario")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastCampaignEvent(campaign.ID, EventCampaignCreated, campaign)
	}
	writeJSON(w, http.StatusCreated, campaign)
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if campaigns == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaign handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.svc.GetCampaign(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// GetState handles GET /api/v1/campaigns/{id}/state
func (h *CampaignHandler) GetState(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.State(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetEvents handles GET /api/v1/campaigns/{id}/events
func (h *CampaignHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.svc.RecentEvents(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []json.RawMessage{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetLosses handles GET /api/v1/campaigns/{id}/losses
func (h *CampaignHandler) GetLosses(w http.ResponseWriter, r *http.Request) {
	losses, err := h.svc.Losses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, losses)
}

// Move handles POST /api/v1/campaigns/{id}/orders/move
func (h *CampaignHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID int     `json:"unit_id"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Move(r.Context(), r.PathValue("id"), req.UnitID, req.X, req.Y); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Attack handles POST /api/v1/campaigns/{id}/orders/attack
func (h *CampaignHandler) Attack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AttackerID int `json:"attacker_id"`
		DefenderID int `json:"defender_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.Attack(r.Context(), r.PathValue("id"), req.AttackerID, req.DefenderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Bombard handles POST /api/v1/campaigns/{id}/orders/bombard
func (h *CampaignHandler) Bombard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID int `json:"unit_id"`
		CityID int `json:"city_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Bombard(r.Context(), r.PathValue("id"), req.UnitID, req.CityID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// unitOrder decodes the single-unit order body shared by resupply,
// repair, and entrench.
func unitOrder(r *http.Request) (int, error) {
	var req struct {
		UnitID int `json:"unit_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return 0, err
	}
	return req.UnitID, nil
}

// Resupply handles POST /api/v1/campaigns/{id}/orders/resupply
func (h *CampaignHandler) Resupply(w http.ResponseWriter, r *http.Request) {
	unitID, err := unitOrder(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Resupply(r.Context(), r.PathValue("id"), unitID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Repair handles POST /api/v1/campaigns/{id}/orders/repair
func (h *CampaignHandler) Repair(w http.ResponseWriter, r *http.Request) {
	unitID, err := unitOrder(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Repair(r.Context(), r.PathValue("id"), unitID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Entrench handles POST /api/v1/campaigns/{id}/orders/entrench
func (h *CampaignHandler) Entrench(w http.ResponseWriter, r *http.Request) {
	unitID, err := unitOrder(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Entrench(r.Context(), r.PathValue("id"), unitID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RoadAction handles POST /api/v1/campaigns/{id}/orders/road
func (h *CampaignHandler) RoadAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoadID int     `json:"road_id"`
		Action string  `json:"action"`
		Damage float64 `json:"damage,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.RoadAction(r.Context(), r.PathValue("id"), req.RoadID, req.Action, req.Damage); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AdvancePhase handles POST /api/v1/campaigns/{id}/advance
func (h *CampaignHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.AdvancePhase(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writePhase(w, r, id)
}

// EndTurn handles POST /api/v1/campaigns/{id}/end-turn
func (h *CampaignHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.EndTurn(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writePhase(w, r, id)
}

// writePhase responds with the campaign's post-action turn position.
func (h *CampaignHandler) writePhase(w http.ResponseWriter, r *http.Request, id string) {
	campaign, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// writeServiceError maps service and engine errors to HTTP statuses.
// Engine rejections are client errors: a move into the sea or an
// attack out of phase is the caller's mistake, not the server's.
func (h *CampaignHandler) writeServiceError(w http.ResponseWriter, err error) {
	var phaseErr *strait.PhaseError
	var unitErr *strait.UnitError
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "campaign not found")
	case errors.Is(err, service.ErrCampaignFinished), errors.Is(err, strait.ErrGameOver):
		writeError(w, http.StatusConflict, "campaign is finished")
	case errors.As(err, &phaseErr):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, strait.ErrUnitNotFound),
		errors.Is(err, strait.ErrCityNotFound),
		errors.Is(err, strait.ErrRoadNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, strait.ErrInvalidMove),
		errors.Is(err, strait.ErrInvalidAttack),
		errors.Is(err, strait.ErrInsufficientSupplies),
		errors.Is(err, strait.ErrNoSupplySource),
		errors.As(err, &unitErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
