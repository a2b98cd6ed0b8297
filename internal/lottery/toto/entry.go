package toto

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

const (
	MinNumber = 1
	MaxNumber = 49

	PickSize      = 6
	MinSystemSize = 7
	MaxSystemSize = 12
	rollFixedSize = 5
)

// Variant é o tipo de entrada TOTO
type Variant int

const (
	Ordinary Variant = iota + 1
	System
	SystemRoll
)

func (v Variant) String() string {
	switch v {
	case Ordinary:
		return "Ordinary"
	case System:
		return "System"
	case SystemRoll:
		return "SystemRoll"
	}
	return "Unknown"
}

func parseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "ordinary":
		return Ordinary, nil
	case "system":
		return System, nil
	case "systemroll":
		return SystemRoll, nil
	}
	return 0, fmt.Errorf("%w: unknown bet type %q", lottery.ErrMalformedEntry, s)
}

// Entry é uma entrada TOTO validada
type Entry struct {
	variant  Variant
	numbers  []int
	rollFrom int
	rollTo   int
	label    string
}

// NewOrdinary exige exatamente 6 números únicos em 1..49
func NewOrdinary(numbers []int) (Entry, error) {
	ns, err := uniqueInRange(numbers)
	if err != nil {
		return Entry{}, err
	}
	if len(ns) != PickSize {
		return Entry{}, fmt.Errorf("%w: ordinary entry needs %d numbers, got %d", lottery.ErrMalformedEntry, PickSize, len(ns))
	}
	return Entry{variant: Ordinary, numbers: ns}, nil
}

// NewSystem exige 7..12 números únicos, em quantidade igual a size
func NewSystem(size int, numbers []int) (Entry, error) {
	if size < MinSystemSize || size > MaxSystemSize {
		return Entry{}, fmt.Errorf("%w: system size %d out of %d..%d", lottery.ErrMalformedEntry, size, MinSystemSize, MaxSystemSize)
	}
	ns, err := uniqueInRange(numbers)
	if err != nil {
		return Entry{}, err
	}
	if len(ns) != size {
		return Entry{}, fmt.Errorf("%w: system %d needs %d numbers, got %d", lottery.ErrMalformedEntry, size, size, len(ns))
	}
	return Entry{variant: System, numbers: ns}, nil
}

// NewSystemRoll valida 5 números fixos e a faixa do número rolado.
// A avaliação dessa variante ainda não é suportada.
func NewSystemRoll(fixed []int, from, to int) (Entry, error) {
	ns, err := uniqueInRange(fixed)
	if err != nil {
		return Entry{}, err
	}
	if len(ns) != rollFixedSize {
		return Entry{}, fmt.Errorf("%w: system roll needs %d fixed numbers, got %d", lottery.ErrMalformedEntry, rollFixedSize, len(ns))
	}
	if from < MinNumber || to > MaxNumber || from > to {
		return Entry{}, fmt.Errorf("%w: invalid roll range %d..%d", lottery.ErrMalformedEntry, from, to)
	}
	return Entry{variant: SystemRoll, numbers: ns, rollFrom: from, rollTo: to}, nil
}

// uniqueInRange ordena e rejeita repetidos ou fora de 1..49
func uniqueInRange(numbers []int) ([]int, error) {
	ns := append([]int(nil), numbers...)
	sort.Ints(ns)
	for i, n := range ns {
		if n < MinNumber || n > MaxNumber {
			return nil, fmt.Errorf("%w: number %d out of %d..%d", lottery.ErrMalformedEntry, n, MinNumber, MaxNumber)
		}
		if i > 0 && ns[i-1] == n {
			return nil, fmt.Errorf("%w: duplicate number %d", lottery.ErrMalformedEntry, n)
		}
	}
	return ns, nil
}

func (e Entry) WithLabel(label string) Entry {
	e.label = label
	return e
}

func (e Entry) Variant() Variant { return e.variant }
func (e Entry) Label() string    { return e.label }
func (e Entry) Numbers() []int   { return append([]int(nil), e.numbers...) }

// RollRange devolve a faixa de SystemRoll
func (e Entry) RollRange() (from, to int) { return e.rollFrom, e.rollTo }

// Combos devolve as combinações de 6 cobertas pela entrada
func (e Entry) Combos() ([][]int, error) {
	if e.variant == SystemRoll {
		return nil, fmt.Errorf("%w: %s", lottery.ErrUnsupportedBetVariant, e.variant)
	}
	return Combinations(e.numbers)
}

type rawEntry struct {
	Label      string `json:"label"`
	BetType    string `json:"bet_type"`
	EntryType  string `json:"entry_type"`
	Numbers    []int  `json:"numbers"`
	SystemSize *int   `json:"system_size"`
	SystemRoll *struct {
		FixedNumbers []int `json:"fixed_numbers"`
		RollFrom     int   `json:"roll_from"`
		RollTo       int   `json:"roll_to"`
	} `json:"system_roll"`
}

// DecodeEntries lê "toto_entries" ou o formato legado "toto_entry"
func DecodeEntries(details json.RawMessage) ([]Entry, error) {
	var payload struct {
		TotoEntries []rawEntry      `json:"toto_entries"`
		TotoEntry   *rawEntry       `json:"toto_entry"`
		FourDBets   json.RawMessage `json:"fourd_bets"`
	}
	if err := json.Unmarshal(details, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode details: %v", lottery.ErrMalformedEntry, err)
	}
	if s := strings.TrimSpace(string(payload.FourDBets)); s != "" && s != "null" {
		return nil, fmt.Errorf("%w: TOTO ticket carries 4D bets", lottery.ErrMalformedEntry)
	}

	raws := payload.TotoEntries
	if len(raws) == 0 && payload.TotoEntry != nil {
		raws = []rawEntry{*payload.TotoEntry}
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: no TOTO entries", lottery.ErrMalformedEntry)
	}

	entries := make([]Entry, 0, len(raws))
	for i, re := range raws {
		e, err := re.toEntry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (re rawEntry) toEntry() (Entry, error) {
	kind := re.BetType
	if kind == "" {
		kind = re.EntryType
	}
	v, err := parseVariant(kind)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	switch v {
	case System:
		size := len(re.Numbers)
		if re.SystemSize != nil {
			size = *re.SystemSize
		}
		e, err = NewSystem(size, re.Numbers)
	case SystemRoll:
		if re.SystemRoll == nil {
			return Entry{}, fmt.Errorf("%w: system roll details missing", lottery.ErrMalformedEntry)
		}
		e, err = NewSystemRoll(re.SystemRoll.FixedNumbers, re.SystemRoll.RollFrom, re.SystemRoll.RollTo)
	default:
		e, err = NewOrdinary(re.Numbers)
	}
	if err != nil {
		return Entry{}, err
	}
	return e.WithLabel(re.Label), nil
}
