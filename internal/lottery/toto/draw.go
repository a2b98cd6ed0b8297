package toto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// Result é o formato do resultado TOTO gravado em draw_results.result
type Result struct {
	WinningNumbers   []int                      `json:"winning_numbers"`
	AdditionalNumber *int                       `json:"additional_number"`
	PrizeGroups      map[string]json.RawMessage `json:"prize_groups"`
}

// PreparedDraw é o sorteio validado, pronto para conferência
type PreparedDraw struct {
	winning    [MaxNumber + 1]bool
	additional int
	prizes     [groupCount]int64
}

// PrepareDraw valida o resultado e normaliza os valores dos grupos
func PrepareDraw(raw json.RawMessage) (PreparedDraw, error) {
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return PreparedDraw{}, fmt.Errorf("%w: decode TOTO result: %v", lottery.ErrMalformedDraw, err)
	}

	var d PreparedDraw
	if len(r.WinningNumbers) != PickSize {
		return PreparedDraw{}, fmt.Errorf("%w: need %d winning numbers, got %d", lottery.ErrMalformedDraw, PickSize, len(r.WinningNumbers))
	}
	for _, n := range r.WinningNumbers {
		if n < MinNumber || n > MaxNumber {
			return PreparedDraw{}, fmt.Errorf("%w: winning number %d out of range", lottery.ErrMalformedDraw, n)
		}
		if d.winning[n] {
			return PreparedDraw{}, fmt.Errorf("%w: duplicate winning number %d", lottery.ErrMalformedDraw, n)
		}
		d.winning[n] = true
	}

	if r.AdditionalNumber == nil {
		return PreparedDraw{}, fmt.Errorf("%w: additional number missing", lottery.ErrMalformedDraw)
	}
	if *r.AdditionalNumber < MinNumber || *r.AdditionalNumber > MaxNumber {
		return PreparedDraw{}, fmt.Errorf("%w: additional number %d out of range", lottery.ErrMalformedDraw, *r.AdditionalNumber)
	}
	d.additional = *r.AdditionalNumber

	for key, v := range r.PrizeGroups {
		g, ok := groupFromKey(key)
		if !ok {
			continue
		}
		amount, err := lottery.MoneyFromJSON(v)
		if err != nil {
			return PreparedDraw{}, fmt.Errorf("%w: %s: %v", lottery.ErrMalformedDraw, key, err)
		}
		d.prizes[g] = amount
	}
	return d, nil
}

// PrizeFor devolve o valor normalizado do grupo (0 quando ausente)
func (d PreparedDraw) PrizeFor(group int) int64 {
	if group <= 0 || group >= groupCount {
		return 0
	}
	return d.prizes[group]
}

// groupFromKey aceita "group1", "Group 1" ou "1"
func groupFromKey(key string) (int, bool) {
	k := strings.ToLower(strings.ReplaceAll(key, " ", ""))
	k = strings.TrimPrefix(k, "group")
	g, err := strconv.Atoi(k)
	if err != nil || g <= 0 || g >= groupCount {
		return 0, false
	}
	return g, true
}
