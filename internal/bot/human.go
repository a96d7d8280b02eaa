package bot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#3C3C3C")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

var humanChoices = map[string]game.Action{
	"1": game.Fold,
	"2": game.Call,
	"3": game.Raise,
}

// HumanBot asks a person for each decision, one line per prompt. Anything but
// 1, 2 or 3 (or an unavailable raise) re-prompts.
type HumanBot struct {
	game.NoFeedback
	in     *bufio.Scanner
	out    io.Writer
	layout deck.Layout
}

// NewHumanBot reads decisions from in and writes prompts to out.
func NewHumanBot(in io.Reader, out io.Writer, layout deck.Layout) *HumanBot {
	return &HumanBot{in: bufio.NewScanner(in), out: out, layout: layout}
}

func (h *HumanBot) SelectAction(state game.GameState) (game.Action, error) {
	call, raise := state.Costs()
	fmt.Fprintf(h.out, "%s  pot %d  to call %d  raise +%d\n",
		handStyle.Render(h.layout.FormatHand(state.Exclusive.Hand)), state.Public.Pot, call, raise)

	for {
		fmt.Fprint(h.out, promptStyle.Render(fmt.Sprintf("Player_%d, What's your action (1:FOLD 2:CALL/CHECK 3:RAISE)?", state.Exclusive.PlayerID)), " ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return 0, fmt.Errorf("read action: %w", err)
			}
			return 0, fmt.Errorf("read action: %w", io.ErrUnexpectedEOF)
		}

		line := strings.TrimSuffix(h.in.Text(), "\r")
		if action, ok := humanChoices[line]; ok && game.IsLegal(state, action) {
			return action, nil
		}
		fmt.Fprintln(h.out, errorStyle.Render("Invalid input!"))
	}
}
