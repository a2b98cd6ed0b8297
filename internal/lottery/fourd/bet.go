package fourd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// Variant é o tipo de aposta 4D
type Variant int

const (
	Ordinary Variant = iota + 1
	System
	IBet
	Roll
)

func (v Variant) String() string {
	switch v {
	case Ordinary:
		return "Ordinary"
	case System:
		return "System"
	case IBet:
		return "iBet"
	case Roll:
		return "Roll"
	}
	return "Unknown"
}

// ParseVariant aceita os nomes usados pelo OCR/frontend, sem diferenciar caixa
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ordinary":
		return Ordinary, nil
	case "system":
		return System, nil
	case "ibet":
		return IBet, nil
	case "roll":
		return Roll, nil
	}
	return 0, fmt.Errorf("%w: unknown bet type %q", lottery.ErrMalformedBetLine, s)
}

// Bet é uma linha de aposta 4D já validada.
// Roll carrega só o padrão; as demais variantes carregam só o número.
type Bet struct {
	variant Variant
	number  string
	pattern string
	big     decimal.Decimal
	small   decimal.Decimal
	label   string
}

// NewNumberBet cria apostas Ordinary, System ou iBet
func NewNumberBet(v Variant, number string, big, small decimal.Decimal) (Bet, error) {
	if v == Roll {
		return Bet{}, fmt.Errorf("%w: roll bet needs a pattern", lottery.ErrMalformedBetLine)
	}
	if v < Ordinary || v > Roll {
		return Bet{}, fmt.Errorf("%w: unknown variant %d", lottery.ErrMalformedBetLine, v)
	}
	number = strings.TrimSpace(number)
	if !isFourDigits(number) {
		return Bet{}, fmt.Errorf("%w: number %q must be exactly 4 digits", lottery.ErrMalformedBetLine, number)
	}
	if err := checkStakes(big, small); err != nil {
		return Bet{}, err
	}
	return Bet{variant: v, number: number, big: big, small: small}, nil
}

// NewRollBet cria uma aposta Roll; o padrão tem exatamente um X
func NewRollBet(pattern string, big, small decimal.Decimal) (Bet, error) {
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	if len(pattern) != 4 || strings.Count(pattern, "X") != 1 {
		return Bet{}, fmt.Errorf("%w: roll pattern %q must be 4 chars with one X", lottery.ErrMalformedBetLine, pattern)
	}
	for _, r := range pattern {
		if r != 'X' && (r < '0' || r > '9') {
			return Bet{}, fmt.Errorf("%w: roll pattern %q has invalid char", lottery.ErrMalformedBetLine, pattern)
		}
	}
	if err := checkStakes(big, small); err != nil {
		return Bet{}, err
	}
	return Bet{variant: Roll, pattern: pattern, big: big, small: small}, nil
}

func checkStakes(big, small decimal.Decimal) error {
	if big.IsNegative() || small.IsNegative() {
		return fmt.Errorf("%w: negative stake", lottery.ErrMalformedBetLine)
	}
	return nil
}

// WithLabel devolve uma cópia com o rótulo informado
func (b Bet) WithLabel(label string) Bet {
	b.label = label
	return b
}

func (b Bet) Variant() Variant       { return b.variant }
func (b Bet) Number() string         { return b.number }
func (b Bet) RollPattern() string    { return b.pattern }
func (b Bet) Big() decimal.Decimal   { return b.big }
func (b Bet) Small() decimal.Decimal { return b.small }
func (b Bet) Label() string          { return b.label }

// Base é o número ou padrão informado na aposta
func (b Bet) Base() string {
	if b.variant == Roll {
		return b.pattern
	}
	return b.number
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type rawBet struct {
	EntryType   string           `json:"entry_type"`
	BetType     string           `json:"bet_type"`
	Number      *string          `json:"number"`
	RollPattern *string          `json:"roll_pattern"`
	BigAmount   *decimal.Decimal `json:"big_amount"`
	SmallAmount *decimal.Decimal `json:"small_amount"`
	Label       string           `json:"label"`
}

// DecodeBets lê {"fourd_bets": [...]} do JSON de detalhes do bilhete.
// Qualquer linha inválida invalida o bilhete inteiro.
func DecodeBets(details json.RawMessage) ([]Bet, error) {
	var payload struct {
		FourDBets   []rawBet        `json:"fourd_bets"`
		TotoEntries json.RawMessage `json:"toto_entries"`
		TotoEntry   json.RawMessage `json:"toto_entry"`
	}
	if err := json.Unmarshal(details, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode details: %v", lottery.ErrMalformedBetLine, err)
	}
	if present(payload.TotoEntries) || present(payload.TotoEntry) {
		return nil, fmt.Errorf("%w: 4D ticket carries TOTO entries", lottery.ErrMalformedBetLine)
	}
	if len(payload.FourDBets) == 0 {
		return nil, fmt.Errorf("%w: no 4D bets", lottery.ErrMalformedBetLine)
	}

	bets := make([]Bet, 0, len(payload.FourDBets))
	for i, rb := range payload.FourDBets {
		b, err := rb.toBet()
		if err != nil {
			return nil, fmt.Errorf("bet line %d: %w", i, err)
		}
		bets = append(bets, b)
	}
	return bets, nil
}

func (rb rawBet) toBet() (Bet, error) {
	kind := rb.EntryType
	if kind == "" {
		kind = rb.BetType
	}
	v, err := ParseVariant(kind)
	if err != nil {
		return Bet{}, err
	}

	big, small := decimal.Zero, decimal.Zero
	if rb.BigAmount != nil {
		big = *rb.BigAmount
	}
	if rb.SmallAmount != nil {
		small = *rb.SmallAmount
	}

	number := deref(rb.Number)
	pattern := deref(rb.RollPattern)

	var b Bet
	if v == Roll {
		if number != "" {
			return Bet{}, fmt.Errorf("%w: roll bet must not carry a number", lottery.ErrMalformedBetLine)
		}
		b, err = NewRollBet(pattern, big, small)
	} else {
		if pattern != "" {
			return Bet{}, fmt.Errorf("%w: %s bet must not carry a roll pattern", lottery.ErrMalformedBetLine, v)
		}
		b, err = NewNumberBet(v, number, big, small)
	}
	if err != nil {
		return Bet{}, err
	}
	return b.WithLabel(rb.Label), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func present(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null"
}
