package toto

import (
	"fmt"
	"sort"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// Combinations gera todas as combinações de 6 em ordem lexicográfica.
// Repetidos na entrada são descartados antes.
func Combinations(numbers []int) ([][]int, error) {
	ns := append([]int(nil), numbers...)
	sort.Ints(ns)
	uniq := ns[:0]
	for i, n := range ns {
		if i == 0 || ns[i-1] != n {
			uniq = append(uniq, n)
		}
	}
	if len(uniq) < PickSize {
		return nil, fmt.Errorf("%w: need at least %d numbers, got %d", lottery.ErrMalformedEntry, PickSize, len(uniq))
	}

	out := make([][]int, 0, binomial(len(uniq), PickSize))
	idx := make([]int, PickSize)
	for i := range idx {
		idx[i] = i
	}
	n := len(uniq)
	for {
		combo := make([]int, PickSize)
		for i, j := range idx {
			combo[i] = uniq[j]
		}
		out = append(out, combo)

		// avança o índice mais à direita que ainda pode crescer
		i := PickSize - 1
		for i >= 0 && idx[i] == n-PickSize+i {
			i--
		}
		if i < 0 {
			return out, nil
		}
		idx[i]++
		for j := i + 1; j < PickSize; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func binomial(n, k int) int {
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
