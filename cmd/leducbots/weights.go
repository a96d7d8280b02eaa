package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/leducbots/internal/qlearn"
	"github.com/lox/leducbots/internal/randutil"
)

// WeightsCmd prints the largest weights of a checkpoint.
type WeightsCmd struct {
	Path   string `arg:"" type:"existingfile" help:"Checkpoint file written by train --save"`
	Top    int    `default:"20" help:"Number of weights to show, 0 for all"`
	Filter string `help:"Only show feature keys containing this text"`
}

func (c *WeightsCmd) Run(g *Globals) error {
	if _, err := g.setup(); err != nil {
		return err
	}

	snap, err := qlearn.LoadCheckpoint(c.Path)
	if err != nil {
		return err
	}
	agent, err := qlearn.New(qlearn.Config{
		Discount:    snap.Discount,
		Exploration: snap.Exploration,
		Features:    snap.Features,
		Rng:         randutil.New(1),
	})
	if err != nil {
		return err
	}
	if err := agent.Restore(snap); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Checkpoint %s", c.Path)))
	fmt.Printf("features %s, discount %.3f, exploration %.3f, iteration %d, %d weights\n\n",
		snap.Features, snap.Discount, snap.Exploration, snap.Iteration, len(snap.Weights))

	rows := [][]string{}
	for _, w := range agent.TopWeights(0) {
		if c.Filter != "" && !strings.Contains(w.Key, c.Filter) {
			continue
		}
		rows = append(rows, []string{w.Key, fmt.Sprintf("%+.4f", w.Value)})
		if c.Top > 0 && len(rows) == c.Top {
			break
		}
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FEATURE", "WEIGHT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Println(t.Render())
	return nil
}
