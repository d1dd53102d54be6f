package session

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "slotinsight_backend/internal/api/dto/analytics"
	"slotinsight_backend/internal/converter"
	"slotinsight_backend/internal/service"
	"slotinsight_backend/pkg/req"
	"slotinsight_backend/pkg/resp"

	log "github.com/sirupsen/logrus"
)

type HandlerDeps struct {
	Session service.SessionService
	Ingest  service.IngestService
	KPI     service.KPIService
	Cohort  service.CohortService
	Game    service.GameService
	Segment service.SegmentService
}

type Handler struct {
	session service.SessionService
	ingest  service.IngestService
	kpi     service.KPIService
	cohort  service.CohortService
	game    service.GameService
	segment service.SegmentService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		session: deps.Session,
		ingest:  deps.Ingest,
		kpi:     deps.KPI,
		cohort:  deps.Cohort,
		game:    deps.Game,
		segment: deps.Segment,
	}
}

// Load - загрузка набора данных из CSV файла или леджера БД
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LoadRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var rows int
	switch payload.Source {
	case "file":
		rows, err = h.ingest.ImportFile(r.Context(), payload.Path)
	case "ledger":
		rows, err = h.ingest.LoadLedger(r.Context())
	default:
		http.Error(w, "unknown source", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Println("Load error:", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoadResponse{Rows: rows})
}

// SetFilter - смена фильтра сессии. Сессия воспроизведения сбрасывается
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.FilterRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	filter, err := converter.ToFilter(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.session.SetFilter(filter)

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFilterResponse(
		h.session.Filter(),
		h.session.GameIDs(),
	))
}

// Filter - текущий фильтр и доступные игры
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFilterResponse(
		h.session.Filter(),
		h.session.GameIDs(),
	))
}

// KPIs - глобальные показатели выборки
func (h *Handler) KPIs(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToKPIResponse(*h.kpi.Report()))
}

// Cohort - активность, новые игроки, удержание
func (h *Handler) Cohort(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCohortResponse(*h.cohort.Report()))
}

// GameStats - показатели в разрезе игр
func (h *Handler) GameStats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameStatsResponse(h.game.Stats()))
}

// Users - список игроков выборки для выбора
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserOptionsResponse(h.segment.Users()))
}

// UserInsight - подробная сводка по одному игроку
func (h *Handler) UserInsight(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	insight, err := h.segment.Insight(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserInsightResponse(*insight))
}

// Transactions - таблица сырых данных по убыванию времени
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransactionRows(h.session.RawDetail()))
}
