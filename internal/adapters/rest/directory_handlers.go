package rest

import (
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"net/http"
)

// DirectoryHandler отдает главную страницу, агентов и услуги
type DirectoryHandler struct {
	getHomeUC     usecases_port.GetHomeUseCase
	getAgentsUC   usecases_port.GetAgentsUseCase
	getServicesUC usecases_port.GetServicesUseCase
}

func NewDirectoryHandler(getHomeUC usecases_port.GetHomeUseCase,
	getAgentsUC usecases_port.GetAgentsUseCase,
	getServicesUC usecases_port.GetServicesUseCase) *DirectoryHandler {
	return &DirectoryHandler{
		getHomeUC:     getHomeUC,
		getAgentsUC:   getAgentsUC,
		getServicesUC: getServicesUC,
	}
}

// GetHome обрабатывает GET /api/v1/home
func (h *DirectoryHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	view, err := h.getHomeUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case GetHome failed", err, port.Fields{"handler": "GetHome"})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, HomeResponse{
		Featured: toPropertyCards(view.Featured),
		Services: toServiceResponses(view.Services),
	})
}

// GetAgents обрабатывает GET /api/v1/agents
func (h *DirectoryHandler) GetAgents(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	agents, err := h.getAgentsUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case GetAgents failed", err, port.Fields{"handler": "GetAgents"})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toAgentResponses(agents))
}

// GetServices обрабатывает GET /api/v1/services
func (h *DirectoryHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	services, err := h.getServicesUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case GetServices failed", err, port.Fields{"handler": "GetServices"})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, toServiceResponses(services))
}

func toAgentResponses(agents []domain.Agent) []AgentResponse {
	out := make([]AgentResponse, len(agents))
	for i, a := range agents {
		out[i] = toAgentResponse(a)
	}
	return out
}
