package topics

const (
	// Sorteios
	DrawPublished = "draw_published"

	// Conferências
	TicketChecked = "ticket_checked"

	// DLQs
	DrawPublishedDLQ = "draw_published_dlq"
)
