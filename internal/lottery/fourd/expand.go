package fourd

import "sort"

// Expand devolve os números cobertos pela aposta, ordenados e sem repetição
func Expand(b Bet) []string {
	switch b.variant {
	case System, IBet:
		return permutations(b.number)
	case Roll:
		out := make([]string, 0, 10)
		for d := byte('0'); d <= '9'; d++ {
			p := []byte(b.pattern)
			for i := range p {
				if p[i] == 'X' {
					p[i] = d
				}
			}
			out = append(out, string(p))
		}
		return out
	default:
		return []string{b.number}
	}
}

// permutations gera permutações distintas de s
func permutations(s string) []string {
	seen := make(map[string]struct{})
	buf := make([]byte, 0, len(s))
	used := make([]bool, len(s))

	var walk func()
	walk = func() {
		if len(buf) == len(s) {
			seen[string(buf)] = struct{}{}
			return
		}
		for i := 0; i < len(s); i++ {
			if used[i] {
				continue
			}
			used[i] = true
			buf = append(buf, s[i])
			walk()
			buf = buf[:len(buf)-1]
			used[i] = false
		}
	}
	walk()

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
