// Package handler is the thin HTTP layer over the confirmation service. The
// JSON bodies written here are the external contract consumed by the
// check-in front end.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checkin/internal/checkin"
	"checkin/pkg/platform/httputil"
	"checkin/pkg/requestcontext"
)

// Service defines the interface for confirmation operations.
type Service interface {
	Confirm(ctx context.Context, cpf string) (*checkin.Confirmation, error)
}

// Handler wires the check-in endpoints to the confirmation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs the handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/confirm", h.handleConfirm)
	r.Get("/", h.handleLiveness)
}

type confirmRequest struct {
	CPF string `json:"cpf"`
}

type confirmResponse struct {
	Inscricao string `json:"inscricao"`
	Nome      string `json:"nome"`
	Dia       string `json:"dia"`
	Data      string `json:"data"`
	Hora      string `json:"hora"`
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Requisição inválida. Envie um JSON com o campo cpf.",
		})
		return
	}

	result, err := h.service.Confirm(ctx, req.CPF)
	if err != nil {
		var rejection *checkin.Rejection
		if errors.As(err, &rejection) {
			h.writeRejection(w, rejection)
			return
		}
		h.logger.ErrorContext(ctx, "confirmation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, confirmResponse{
		Inscricao: result.Inscricao,
		Nome:      result.Nome,
		Dia:       result.Dia,
		Data:      result.Data,
		Hora:      result.Hora,
	})
}

// writeRejection translates each rejection kind into its documented status
// and body shape.
func (h *Handler) writeRejection(w http.ResponseWriter, r *checkin.Rejection) {
	switch r.Kind {
	case checkin.KindInvalidCPF:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "CPF inválido. Informe os 11 dígitos, somente números.",
		})

	case checkin.KindNotRegistered:
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error": "CPF não inscrito.",
		})

	case checkin.KindNoRegistration:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Inscrição não encontrada. Procure a equipe de credenciamento.",
			"nome":  r.Nome,
		})

	case checkin.KindWaiting:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"errorCode":  "FORA_HORARIO_AGUARDE",
			"nome":       r.Nome,
			"proximoDia": r.ProximoDia,
			"labelDia":   r.LabelDia,
			"iniciaEm": map[string]string{
				"horas":   r.Horas,
				"minutos": r.Minutos,
			},
			"message": "O credenciamento de " + r.LabelDia + " ainda não começou.",
		})

	case checkin.KindClosed:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"errorCode": "EVENTO_ENCERRADO",
			"message":   "O evento já foi encerrado. Agradecemos a sua participação!",
		})

	case checkin.KindAlreadyConfirmed:
		body := map[string]string{
			"message":   "Presença já confirmada.",
			"nome":      r.Nome,
			"inscricao": r.Inscricao,
			"dia":       r.Dia,
		}
		if r.Data != "" {
			body["data"] = r.Data
		}
		if r.Hora != "" {
			body["hora"] = r.Hora
		}
		httputil.WriteJSON(w, http.StatusConflict, body)

	default:
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Credenciamento fora do horário.",
		})
	}
}

func (h *Handler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
