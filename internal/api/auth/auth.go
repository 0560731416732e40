package auth

import (
	"errors"
	"net/http"
	dto "slot_math/internal/api/dto/auth"
	"slot_math/internal/service"
	authServ "slot_math/internal/service/auth"
	"slot_math/pkg/req"
	"slot_math/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Token обменивает ключ оператора на access_token
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.TokenRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accessToken, err := h.serv.IssueToken(r.Context(), requestBody.OperatorKey)
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidOperatorKey) {
			resp.WriteError(w, http.StatusUnauthorized, "invalid operator key")
			return
		}
		resp.WriteError(w, http.StatusInternalServerError, "token issue failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}
