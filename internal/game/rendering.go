package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// ANSI color codes used by the text board
const (
	ColorReset  = "\033[0m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"

	BgCyan = "\033[46m"
)

const (
	EmptySymbol = "·"
	WhiteSymbol = "W"
	BlackSymbol = "B"
)

// RenderOptions controls the text board dump
type RenderOptions struct {
	Color           bool
	ShowCoordinates bool
}

// RenderBoard draws the board as nine indented hex rows, top row first.
// Selected marbles are drawn in lower case.
func RenderBoard(b *core.Board, sel core.Selection, opts RenderOptions) string {
	rows := b.Rows()

	var sb strings.Builder
	// Each cell takes 2 visible chars plus up to ~15 chars of ANSI codes
	sb.Grow(core.CellCount*18 + len(rows)*16 + 64)

	for _, row := range rows {
		if opts.ShowCoordinates {
			fmt.Fprintf(&sb, "r=%2d ", row[0].R)
		}
		sb.WriteString(strings.Repeat(" ", len(core.RowLengths)-len(row)))
		for _, c := range row {
			writeCell(&sb, b.At(c), sel.Contains(c), opts.Color)
		}
		if opts.ShowCoordinates {
			fmt.Fprintf(&sb, " q=%d..%d", row[0].Q, row[len(row)-1].Q)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(WhiteSymbol + "=white " + BlackSymbol + "=black " + EmptySymbol + "=empty w/b=selected\n")
	return sb.String()
}

func writeCell(sb *strings.Builder, o core.Occupant, selected, color bool) {
	var symbol, paint string
	switch o {
	case core.White:
		symbol, paint = WhiteSymbol, ColorYellow
	case core.Black:
		symbol, paint = BlackSymbol, ColorBlue
	default:
		symbol, paint = EmptySymbol, ColorGray
	}
	if selected {
		symbol = strings.ToLower(symbol)
	}

	if !color {
		sb.WriteString(symbol)
		sb.WriteString(" ")
		return
	}
	if selected {
		sb.WriteString(BgCyan)
	}
	sb.WriteString(paint)
	sb.WriteString(symbol)
	sb.WriteString(ColorReset)
	sb.WriteString(" ")
}

// Board returns a string representation of the board with a status line
func (e *Engine) Board() string {
	gs := e.snapshot()

	var sb strings.Builder
	sb.WriteString(RenderBoard(gs.Board, gs.Selection, e.render))
	fmt.Fprintf(&sb, "Move %d  %s to play  White %d  Black %d",
		gs.MoveCount, gs.Turn.Label(), gs.Scores.White, gs.Scores.Black)
	if gs.HasWinner() {
		fmt.Fprintf(&sb, "  Winner: %s", gs.Winner.Label())
	}
	sb.WriteString("\n")
	return sb.String()
}
