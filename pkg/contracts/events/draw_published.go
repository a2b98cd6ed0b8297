package events

import "time"

// Evento publicado no tópico "draw_published" quando o resultado oficial é gravado
type DrawPublished struct {
	DrawID   string    `json:"draw_id"`
	Game     string    `json:"game"` // "4D" | "TOTO"
	DrawDate string    `json:"draw_date"`
	Ts       time.Time `json:"ts"`
}
