package main

import (
	"github.com/fatih/color"

	"github.com/JieUpup/MRGC/internal/models"
)

// Terminal styles. color disables itself when stdout is not a terminal or
// NO_COLOR is set.
var (
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

var strategyStyles = map[models.Strategy]func(a ...interface{}) string{
	models.StrategyMRGC:       color.New(color.Bold, color.FgGreen).SprintFunc(),
	models.StrategyRandom:     color.New(color.FgYellow).SprintFunc(),
	models.StrategyRoundRobin: color.New(color.FgCyan).SprintFunc(),
	models.StrategyFullyGraph: color.New(color.FgMagenta).SprintFunc(),
}

// styleStrategy colors an already padded strategy cell.
func styleStrategy(s models.Strategy, cell string) string {
	if style, ok := strategyStyles[s]; ok {
		return style(cell)
	}
	return cell
}
