package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/player"
)

var (
	// indexed by game.Color; 0 is the empty cell
	colors = []string{
		game.Color(0):     "0",
		game.ColorCyan:   "51",
		game.ColorYellow: "226",
		game.ColorPurple: "129",
		game.ColorGreen:  "46",
		game.ColorRed:    "196",
		game.ColorBlue:   "21",
		game.ColorOrange: "208",
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))
)

func colorCode(c game.Color) string {
	if int(c) < len(colors) {
		return colors[c]
	}
	return "248"
}

// RenderBoard draws the settled cells, the ghost and the active piece.
func RenderBoard(s game.Snapshot) string {
	var sb strings.Builder

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c, filled, ghost := s.ColorAt(x, y)
			switch {
			case filled:
				sb.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(colorCode(c))).
					Render("██"))
			case ghost:
				sb.WriteString(dimStyle.Render("[]"))
			default:
				sb.WriteString("  ")
			}
		}
		if y < s.Height-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

// RenderPiece draws a preview of a single rotation state.
func RenderPiece(s game.Shape, c game.Color) string {
	if len(s) == 0 {
		return "Empty"
	}

	var sb strings.Builder
	pieceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCode(c)))

	for y, row := range s {
		for _, filled := range row {
			if filled {
				sb.WriteString(pieceStyle.Render("██"))
			} else {
				sb.WriteString("  ")
			}
		}
		if y < len(s)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderInfo draws the side panel: player, score, level, lines and next piece.
func RenderInfo(s game.Snapshot, playerName string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("STARTRIS") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", playerName)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %s", humanize.Comma(int64(s.Score)))) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", s.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", s.Lines)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Speed: %dms", s.Interval.Milliseconds())) + "\n\n")

	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	sb.WriteString(RenderPiece(s.NextShape, s.NextColor) + "\n")

	switch s.State {
	case game.StatePaused:
		sb.WriteString("\n" + pausedStyle.Render("PAUSED"))
	case game.StateGameOver:
		sb.WriteString("\n" + gameOverStyle.Render("GAME OVER"))
	}

	return sb.String()
}

func RenderWelcome(remote bool) string {
	mode := "   [1] Play\n"
	if remote {
		mode = "   [1] Play on server\n"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(`
╔══════════════════════════════╗
║       S T A R T R I S        ║
║   falling blocks, terminal   ║
╚══════════════════════════════╝

` + mode + `
   Press 1 or S to start
   Press Q to quit
`)
}

// RenderGameOver draws the end-of-game overlay with the session best.
func RenderGameOver(s game.Snapshot, stats player.Player) string {
	body := fmt.Sprintf(
		"\n\n     GAME OVER     \n     Score: %s     \n     Lines: %d  Level: %d     \n     Best: %s (%d games)     \n\n",
		humanize.Comma(int64(s.Score)), s.Lines, s.Level,
		humanize.Comma(int64(stats.Best)), stats.Games,
	)
	return gameOverStyle.Align(lipgloss.Center).Render(body) +
		"\n" + infoStyle.Render("ENTER restart · ESC menu · Q quit")
}
