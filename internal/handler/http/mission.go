package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/mission"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MissionHandler interface {
	CreateMission(w http.ResponseWriter, r *http.Request)
	GetMission(w http.ResponseWriter, r *http.Request)
	ListMissions(w http.ResponseWriter, r *http.Request)
	UpdateMission(w http.ResponseWriter, r *http.Request)
	ScheduleIntervention(w http.ResponseWriter, r *http.Request)
	ListInterventions(w http.ResponseWriter, r *http.Request)
	CompleteIntervention(w http.ResponseWriter, r *http.Request)
	CancelIntervention(w http.ResponseWriter, r *http.Request)
}

type MissionHandlerImpl struct {
	missionService mission.MissionService
}

func NewMissionHandler(missionService mission.MissionService) MissionHandler {
	return &MissionHandlerImpl{missionService: missionService}
}

// CreateMission implements MissionHandler.
func (h *MissionHandlerImpl) CreateMission(w http.ResponseWriter, r *http.Request) {
	var createReq mission.CreateMissionRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateMission decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.missionService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Mission created", "mission_id", created.ID, "reference", created.Reference)
	response.Created(w, "Mission created successfully", mission.ToResponse(created))
}

// GetMission implements MissionHandler.
func (h *MissionHandlerImpl) GetMission(w http.ResponseWriter, r *http.Request) {
	m, err := h.missionService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mission.ToResponse(m))
}

// ListMissions implements MissionHandler.
func (h *MissionHandlerImpl) ListMissions(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	listReq := mission.ListMissionsRequest{
		Page:   page,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		listReq.Status = &status
	}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		listReq.CustomerID = &customerID
	}

	missions, total, err := h.missionService.List(r.Context(), listReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]mission.MissionResponse, 0, len(missions))
	for _, m := range missions {
		items = append(items, mission.ToResponse(m))
	}
	response.SuccessWithMeta(w, items, paginationMeta(page, limit, total))
}

// UpdateMission implements MissionHandler.
func (h *MissionHandlerImpl) UpdateMission(w http.ResponseWriter, r *http.Request) {
	var updateReq mission.UpdateMissionRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateMission decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	if err := h.missionService.Update(r.Context(), updateReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Mission updated successfully", nil)
}

// ScheduleIntervention implements MissionHandler.
func (h *MissionHandlerImpl) ScheduleIntervention(w http.ResponseWriter, r *http.Request) {
	var scheduleReq mission.ScheduleInterventionRequest

	if err := json.NewDecoder(r.Body).Decode(&scheduleReq); err != nil {
		slog.Error("ScheduleIntervention decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	scheduleReq.MissionID = chi.URLParam(r, "id")

	created, err := h.missionService.ScheduleIntervention(r.Context(), scheduleReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Intervention scheduled", "intervention_id", created.ID, "technician_id", created.TechnicianID)
	response.Created(w, "Intervention scheduled successfully", mission.ToInterventionResponse(created))
}

// ListInterventions implements MissionHandler.
func (h *MissionHandlerImpl) ListInterventions(w http.ResponseWriter, r *http.Request) {
	interventions, err := h.missionService.Interventions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]mission.InterventionResponse, 0, len(interventions))
	for _, iv := range interventions {
		items = append(items, mission.ToInterventionResponse(iv))
	}
	response.Success(w, items)
}

// CompleteIntervention implements MissionHandler. Completion is where the
// planned materials actually leave stock.
func (h *MissionHandlerImpl) CompleteIntervention(w http.ResponseWriter, r *http.Request) {
	var completeReq mission.CompleteInterventionRequest
	// The report is optional.
	_ = json.NewDecoder(r.Body).Decode(&completeReq)
	completeReq.InterventionID = chi.URLParam(r, "interventionID")

	completed, err := h.missionService.CompleteIntervention(r.Context(), completeReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intervention completed successfully", mission.ToInterventionResponse(completed))
}

// CancelIntervention implements MissionHandler.
func (h *MissionHandlerImpl) CancelIntervention(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.missionService.CancelIntervention(r.Context(), chi.URLParam(r, "interventionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intervention cancelled", mission.ToInterventionResponse(cancelled))
}
