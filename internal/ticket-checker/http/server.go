package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
)

type PendingChecker interface {
	CheckPending(ctx context.Context) (checker.SweepReport, error)
}

// API expõe a conferência de bilhetes via REST
type API struct {
	Log     *zap.Logger
	Runner  checker.BatchRunner
	Sweeper PendingChecker
	Checks  checker.CheckReader
	WS      http.HandlerFunc // opcional: feed de lotes concluídos
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/draws/{drawID}/check", a.checkDraw)             // Confere todos os bilhetes do sorteio
	r.Post("/v1/draws/check-pending", a.checkPending)           // Varre sorteios com bilhetes pendentes
	r.Get("/v1/tickets/{ticketID}/checks/{drawID}", a.getCheck) // Resultado gravado
	r.Post("/v1/evaluate", a.evaluate)                          // Conferência avulsa, sem gravar
	if a.WS != nil {
		r.Get("/ws", a.WS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error(), "kind": checker.ErrorKind(err)})
}

// statusFor traduz erros de domínio em status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, checker.ErrDrawNotFound), errors.Is(err, checker.ErrCheckNotFound):
		return http.StatusNotFound
	case errors.Is(err, lottery.ErrMalformedDraw),
		errors.Is(err, lottery.ErrMalformedBetLine),
		errors.Is(err, lottery.ErrMalformedEntry),
		errors.Is(err, lottery.ErrUnsupportedBetVariant),
		errors.Is(err, lottery.ErrGameMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (a *API) checkDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "drawID")
	sum, err := a.Runner.RunBatch(r.Context(), id)
	if err != nil {
		a.logErr("check draw", err, zap.String("draw_id", id))
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (a *API) checkPending(w http.ResponseWriter, r *http.Request) {
	rep, err := a.Sweeper.CheckPending(r.Context())
	if err != nil {
		a.logErr("check pending", err)
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) getCheck(w http.ResponseWriter, r *http.Request) {
	res, err := a.Checks.GetCheck(r.Context(), chi.URLParam(r, "ticketID"), chi.URLParam(r, "drawID"))
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type evaluateRequest struct {
	Ticket lottery.Ticket `json:"ticket"`
	Draw   lottery.Draw   `json:"draw"`
}

// evaluate confere um bilhete contra um resultado enviado no corpo
func (a *API) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	res, err := checker.Evaluate(req.Ticket, req.Draw)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) logErr(msg string, err error, fields ...zap.Field) {
	if a.Log == nil {
		return
	}
	a.Log.Warn(msg, append(fields, zap.String("kind", checker.ErrorKind(err)), zap.Error(err))...)
}
