package ui

import (
	"github.com/atotto/clipboard"
)

// copyReport puts the match summary on the system clipboard so it can be
// pasted into a bug report.
func (g *Game) copyReport() {
	if g.match == nil {
		return
	}
	report := g.match.Summary()
	if err := clipboard.WriteAll(report); err != nil {
		g.logger.WithError(err).Warn("clipboard unavailable")
		g.setStatus("clipboard unavailable: " + err.Error())
		return
	}
	g.setStatus("match report copied to clipboard")
}
