package replay

import (
	"net/http"
	"strconv"
	"time"

	dto "slotinsight_backend/internal/api/dto/analytics"
	"slotinsight_backend/internal/converter"
	"slotinsight_backend/internal/model"
	"slotinsight_backend/internal/service"
	"slotinsight_backend/pkg/req"
	"slotinsight_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ReplayService
}

type Handler struct {
	serv service.ReplayService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Checkpoints - временная сетка и состояние сессии воспроизведения
func (h *Handler) Checkpoints(w http.ResponseWriter, r *http.Request) {
	index, playing := h.serv.State()
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCheckpointsResponse(
		h.serv.Checkpoints(), index, playing,
	))
}

// Snapshot - срез на чекпоинте (?index=), на произвольный момент
// (?time=RFC3339) или на текущем индексе сессии без параметров
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	var (
		snap *model.Snapshot
		err  error
	)

	switch {
	case r.URL.Query().Get("index") != "":
		var index int
		index, err = strconv.Atoi(r.URL.Query().Get("index"))
		if err != nil {
			http.Error(w, "invalid index", http.StatusBadRequest)
			return
		}
		snap, err = h.serv.Snapshot(index)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	case r.URL.Query().Get("time") != "":
		var at time.Time
		at, err = time.Parse(time.RFC3339, r.URL.Query().Get("time"))
		if err != nil {
			http.Error(w, "invalid time", http.StatusBadRequest)
			return
		}
		// Момент вне диапазона данных допустим и дает пустой
		// или полный срез по правилу бинарного поиска
		snap, err = h.serv.SnapshotAtTime(at)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		snap, err = h.serv.Current()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSnapshotResponse(*snap))
}

// Play - запуск воспроизведения с текущего индекса
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.serv.Play(model.PlaybackSpeed(payload.Speed)); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	index, playing := h.serv.State()
	resp.WriteJSONResponse(w, http.StatusAccepted, dto.StateResponse{Index: index, Playing: playing})
}

// Pause - остановка воспроизведения, индекс замораживается
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.serv.Pause()

	index, playing := h.serv.State()
	resp.WriteJSONResponse(w, http.StatusOK, dto.StateResponse{Index: index, Playing: playing})
}

// Seek - прямая установка индекса
func (h *Handler) Seek(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SeekRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.serv.Seek(payload.Index); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	index, playing := h.serv.State()
	resp.WriteJSONResponse(w, http.StatusOK, dto.StateResponse{Index: index, Playing: playing})
}
