package rest

import (
	"listing-service/internal/core/domain"
	"net/http"
)

// DatasetStatus - то, что healthz знает о загруженных данных
type DatasetStatus interface {
	Info() domain.DatasetInfo
	Loaded() bool
}

type HealthHandler struct {
	dataset DatasetStatus
}

func NewHealthHandler(dataset DatasetStatus) *HealthHandler {
	return &HealthHandler{dataset: dataset}
}

// Healthz обрабатывает GET /healthz. Пока данные не загружены - 503.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if !h.dataset.Loaded() {
		RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "loading",
			Counts: (*domain.Dataset)(nil).Counts(),
		})
		return
	}

	info := h.dataset.Info()
	RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Source:   info.Source,
		LoadedAt: &info.LoadedAt,
		Counts:   info.Counts,
	})
}
