package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hersh/startris/internal/player"
	"github.com/rodaine/table"
)

// printSummary lists the games finished in this session.
func printSummary(w io.Writer, players []player.Player) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgBlue, color.Bold).SprintfFunc()

	for _, p := range players {
		if p.Games == 0 {
			fmt.Fprintf(w, "No finished games for %s.\n", p.Name)
			continue
		}

		tbl := table.New("GAME", "SCORE", "LINES", "LEVEL").WithWriter(w)
		tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
		for i, res := range p.History {
			tbl.AddRow(i+1, humanize.Comma(int64(res.Score)), res.Lines, res.Level)
		}
		tbl.Print()

		fmt.Fprintf(w, "\n%s played %s, best %s points and %d lines.\n",
			p.Name, plural(p.Games, "game"), humanize.Comma(int64(p.Best)), p.BestLines)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
