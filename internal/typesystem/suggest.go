package typesystem

import "strings"

// suggestNames builds a "did you mean" hint from names within edit
// distance 2 of target.
func suggestNames(target string, names []string) string {
	var similar []string
	for _, name := range names {
		if levenshtein(target, name) <= 2 {
			similar = append(similar, name)
			if len(similar) == 3 {
				break
			}
		}
	}
	if len(similar) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(similar, ", ")
}

func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
