package ws

import "github.com/radieske/lottery-ticket-checker/pkg/contracts/events"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// DrawID: obrigatório para subscribe/unsubscribe; "*" recebe todos os sorteios
type ClientMsg struct {
	Type   string `json:"type"`
	DrawID string `json:"drawId"`
}

// BatchUpdate é o que os clientes recebem ao fim de um lote
type BatchUpdate struct {
	DrawID  string                `json:"drawId"`
	Payload events.BatchCompleted `json:"payload"`
}

const allDraws = "*"
