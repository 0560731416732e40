package report

import (
	"errors"
	"net/http"
	"slot_math/internal/converter"
	"slot_math/internal/middleware"
	"slot_math/internal/model"
	"slot_math/internal/service"
	reportServ "slot_math/internal/service/report"
	"slot_math/pkg/resp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.ReportService
	Log  *zap.Logger
}

type Handler struct {
	serv service.ReportService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// logger логгер запроса с оператором из токена
func (h *Handler) logger(r *http.Request) *zap.Logger {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		return h.log
	}
	return h.log.With(zap.String("operator", sub))
}

// Summary сводка последнего прогона
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.serv.Summary()
	if err != nil {
		writeError(w, h.logger(r), err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSummaryResponse(*summary))
}

// Mode статус, RTP и корзины одного режима
func (h *Handler) Mode(w http.ResponseWriter, r *http.Request) {
	report, stats, err := h.serv.Mode(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, h.logger(r), err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToModeResponse(*report, stats))
}

// Book одна запись round log
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		resp.WriteError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.serv.Book(r.Context(), chi.URLParam(r, "mode"), id)
	if err != nil {
		writeError(w, h.logger(r), err)
		return
	}

	h.logger(r).Info("book served", zap.String("mode", book.Mode), zap.Int("id", book.ID))
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBookResponse(*book))
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, reportServ.ErrNoRun),
		errors.Is(err, model.ErrModeNotFound),
		errors.Is(err, model.ErrBookNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Error("report request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
