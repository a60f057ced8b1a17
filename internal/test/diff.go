package test

import (
	"strings"

	"github.com/esdart/esdart/internal/logger"
)

// Diff returns a line-by-line diff of two strings. Removed lines start with
// "-", added lines with "+", and unchanged lines with a space.
func Diff(old string, new string, color bool) string {
	a := strings.Split(old, "\n")
	b := strings.Split(new, "\n")

	// lcs[i][j] is the length of the longest common subsequence of a[i:] and b[j:]
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	colors := logger.Colors{}
	if color {
		colors = logger.TerminalColors
	}

	var lines []string
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			lines = append(lines, colors.Dim+" "+a[i]+colors.Reset)
			i++
			j++
		case j < len(b) && (i == len(a) || lcs[i][j+1] >= lcs[i+1][j]):
			lines = append(lines, colors.Green+"+"+b[j]+colors.Reset)
			j++
		default:
			lines = append(lines, colors.Red+"-"+a[i]+colors.Reset)
			i++
		}
	}
	return strings.Join(lines, "\n")
}
