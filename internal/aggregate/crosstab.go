// Package aggregate derives linkage counts and time-bucketed rollups from
// the enriched case set.
package aggregate

import "sort"

// TotalLabel names the trailing summary row and column of a cross-tab.
const TotalLabel = "Total"

// CrossTab is a row-label x column-label count table with a trailing Total
// row and Total column. An empty cross-tab has no rows and no columns.
type CrossTab struct {
	RowLabels []string `json:"row_labels"`
	ColLabels []string `json:"col_labels"`
	Cells     [][]int  `json:"cells"`
}

// Empty reports whether the cross-tab carries no data.
func (ct *CrossTab) Empty() bool {
	return ct == nil || len(ct.RowLabels) == 0
}

// buildCrossTab tabulates (row, col) label pairs into a CrossTab with
// totals. No pairs yields an empty table.
func buildCrossTab(pairs [][2]string) *CrossTab {
	if len(pairs) == 0 {
		return &CrossTab{}
	}

	counts := make(map[string]map[string]int)
	colSet := make(map[string]struct{})
	for _, p := range pairs {
		row, col := p[0], p[1]
		if counts[row] == nil {
			counts[row] = make(map[string]int)
		}
		counts[row][col]++
		colSet[col] = struct{}{}
	}

	rowLabels := make([]string, 0, len(counts))
	for row := range counts {
		rowLabels = append(rowLabels, row)
	}
	sort.Strings(rowLabels)

	colLabels := make([]string, 0, len(colSet))
	for col := range colSet {
		colLabels = append(colLabels, col)
	}
	sort.Strings(colLabels)

	cells := make([][]int, 0, len(rowLabels)+1)
	colTotals := make([]int, len(colLabels))
	grand := 0
	for _, row := range rowLabels {
		line := make([]int, len(colLabels)+1)
		for j, col := range colLabels {
			n := counts[row][col]
			line[j] = n
			line[len(colLabels)] += n
			colTotals[j] += n
			grand += n
		}
		cells = append(cells, line)
	}

	totalRow := make([]int, len(colLabels)+1)
	copy(totalRow, colTotals)
	totalRow[len(colLabels)] = grand
	cells = append(cells, totalRow)

	return &CrossTab{
		RowLabels: append(rowLabels, TotalLabel),
		ColLabels: append(colLabels, TotalLabel),
		Cells:     cells,
	}
}
