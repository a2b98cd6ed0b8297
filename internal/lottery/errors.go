package lottery

import "errors"

// Erros de domínio. Sempre embrulhados com %w, checar com errors.Is.
var (
	ErrMalformedBetLine      = errors.New("malformed bet line")
	ErrMalformedEntry        = errors.New("malformed entry")
	ErrMalformedDraw         = errors.New("malformed draw")
	ErrUnsupportedBetVariant = errors.New("unsupported bet variant")
	ErrGameMismatch          = errors.New("ticket and draw game mismatch")
)
