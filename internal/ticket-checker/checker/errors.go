package checker

import (
	"errors"
	"fmt"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

var (
	ErrPersistence   = errors.New("persistence failure")
	ErrDrawNotFound  = errors.New("draw not found")
	ErrCheckNotFound = errors.New("check not found")
)

// ErrorKind classifica o erro para logs e métricas
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lottery.ErrMalformedBetLine):
		return "MalformedBetLine"
	case errors.Is(err, lottery.ErrMalformedEntry):
		return "MalformedEntry"
	case errors.Is(err, lottery.ErrMalformedDraw):
		return "MalformedDraw"
	case errors.Is(err, lottery.ErrUnsupportedBetVariant):
		return "UnsupportedBetVariant"
	case errors.Is(err, lottery.ErrGameMismatch):
		return "GameMismatch"
	case errors.Is(err, ErrPersistence):
		return "PersistenceFailure"
	case errors.Is(err, ErrDrawNotFound):
		return "DrawNotFound"
	}
	return "Unknown"
}

// TicketError é uma falha isolada de um bilhete dentro do lote
type TicketError struct {
	TicketID string `json:"ticket_id"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`

	Err error `json:"-"`
}

func newTicketError(ticketID string, err error) TicketError {
	return TicketError{TicketID: ticketID, Kind: ErrorKind(err), Message: err.Error(), Err: err}
}

func (e TicketError) Error() string { return fmt.Sprintf("ticket %s: %s", e.TicketID, e.Message) }
func (e TicketError) Unwrap() error { return e.Err }
