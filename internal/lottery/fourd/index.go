package fourd

import (
	"encoding/json"
	"fmt"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// Result é o formato do resultado 4D gravado em draw_results.result
type Result struct {
	TopPrizes struct {
		First  string `json:"first"`
		Second string `json:"second"`
		Third  string `json:"third"`
	} `json:"top_prizes"`
	StarterPrizes     []string `json:"starter_prizes"`
	ConsolationPrizes []string `json:"consolation_prizes"`
}

// DecodeResult lê o JSON do resultado 4D
func DecodeResult(raw json.RawMessage) (Result, error) {
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return Result{}, fmt.Errorf("%w: decode 4D result: %v", lottery.ErrMalformedDraw, err)
	}
	return r, nil
}

// Index mapeia número sorteado -> faixa
type Index struct {
	tiers map[string]Tier
}

// BuildIndex valida e indexa o resultado. Número repetido entre faixas é erro.
func BuildIndex(r Result) (Index, error) {
	ix := Index{tiers: make(map[string]Tier, 3+len(r.StarterPrizes)+len(r.ConsolationPrizes))}

	add := func(n string, t Tier) error {
		if !isFourDigits(n) {
			return fmt.Errorf("%w: %s prize %q is not a 4-digit number", lottery.ErrMalformedDraw, t, n)
		}
		if prev, dup := ix.tiers[n]; dup {
			return fmt.Errorf("%w: number %s listed as %s and %s", lottery.ErrMalformedDraw, n, prev, t)
		}
		ix.tiers[n] = t
		return nil
	}

	for _, top := range []struct {
		n string
		t Tier
	}{{r.TopPrizes.First, TierFirst}, {r.TopPrizes.Second, TierSecond}, {r.TopPrizes.Third, TierThird}} {
		if err := add(top.n, top.t); err != nil {
			return Index{}, err
		}
	}
	for _, n := range r.StarterPrizes {
		if err := add(n, TierStarter); err != nil {
			return Index{}, err
		}
	}
	for _, n := range r.ConsolationPrizes {
		if err := add(n, TierConsolation); err != nil {
			return Index{}, err
		}
	}
	return ix, nil
}

// Lookup devolve a faixa do número, se houver
func (ix Index) Lookup(n string) (Tier, bool) {
	t, ok := ix.tiers[n]
	return t, ok
}

// PrepareDraw decodifica e indexa um resultado cru
func PrepareDraw(raw json.RawMessage) (Index, error) {
	r, err := DecodeResult(raw)
	if err != nil {
		return Index{}, err
	}
	return BuildIndex(r)
}
