package lottery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney converte valores de prêmio exibidos ("$316,308", "-", "")
// para unidades inteiras. Casas decimais são truncadas.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		// placeholder sem dígitos ("N/A", "--")
		return 0, nil
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	return d.IntPart(), nil
}

// MoneyFromJSON aceita string formatada, número ou null
func MoneyFromJSON(raw json.RawMessage) (int64, error) {
	v := strings.TrimSpace(string(raw))
	if v == "" || v == "null" {
		return 0, nil
	}
	if strings.HasPrefix(v, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return ParseMoney(s)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("parse money %s: %w", v, err)
	}
	return d.IntPart(), nil
}
