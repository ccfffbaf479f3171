package bot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"factory_floor/catalog"
	"factory_floor/dashboard"
	"factory_floor/simulation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	actionZone      = "zone"
	actionZones     = "zones"
	actionTourStart = "tour"
	actionTourNext  = "next"
	actionExit      = "exit"
	actionRun       = "run"
)

func callbackData(action, arg string) string {
	if arg == "" {
		return action
	}
	return action + ":" + arg
}

func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

func statusBadge(s simulation.Status) string {
	switch s {
	case simulation.StatusOptimal:
		return "🟢 Optimal"
	case simulation.StatusDegraded:
		return "🟡 Degraded"
	case simulation.StatusCritical:
		return "🔴 Critical"
	case simulation.StatusMaintenance:
		return "🔧 Maintenance"
	}
	return string(s)
}

func metricMark(s simulation.MetricStatus) string {
	switch s {
	case simulation.MetricGood:
		return "✅"
	case simulation.MetricWarning:
		return "⚠️"
	case simulation.MetricCritical:
		return "❌"
	}
	return "•"
}

func trendArrow(t simulation.Trend) string {
	switch t {
	case simulation.TrendUp:
		return "↑"
	case simulation.TrendDown:
		return "↓"
	}
	return "→"
}

func eventMark(t simulation.EventType) string {
	switch t {
	case simulation.EventAlert:
		return "🚨"
	case simulation.EventSuccess:
		return "✅"
	}
	return "ℹ️"
}

func renderZone(z catalog.Zone) string {
	return fmt.Sprintf("%s *%s*\n_Active Zone · %s_\n\n%s", z.Icon().Glyph(), z.Title, z.Category, z.Description)
}

func renderStop(step catalog.TourStep, z catalog.Zone, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧭 *Stop %d / %d* · Guided Tour\n", step.StopNumber, count)
	fmt.Fprintf(&sb, "%s *%s*\n%s\n\n", z.Icon().Glyph(), step.Title, step.Focus)
	fmt.Fprintf(&sb, "📍 *Use Case*\n%s\n\n", step.UseCase)
	fmt.Fprintf(&sb, "💥 *Impact*\n%s", step.Impact)
	return sb.String()
}

// renderPanel renders the open panel: the tour stop card while the panel
// shows the current stop, otherwise the plain zone header.
func renderPanel(v dashboard.View) string {
	if v.Zone == nil {
		return "No zone open. Use /zones to pick one or /tour to start the tour."
	}
	if v.PanelStep != nil {
		return renderStop(*v.PanelStep, *v.Zone, v.StepCount)
	}
	return renderZone(*v.Zone)
}

func renderReport(z catalog.Zone, r simulation.Response) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *%s* · Live Simulation\n", z.Title)
	fmt.Fprintf(&sb, "Status: %s\nEfficiency: *%.1f%%*\n", statusBadge(r.SystemStatus), r.EfficiencyScore)

	if len(r.Metrics) > 0 {
		sb.WriteString("\n*Metrics*\n")
		for _, m := range r.Metrics {
			fmt.Fprintf(&sb, "%s %s: %s%s %s\n", metricMark(m.Status), m.Name, m.Value, m.Unit, trendArrow(m.Trend))
		}
	}

	if len(r.RecentEvents) > 0 {
		sb.WriteString("\n*Recent Events*\n")
		for _, e := range r.RecentEvents {
			fmt.Fprintf(&sb, "%s `%s` %s\n", eventMark(e.Type), e.Timestamp, e.Message)
		}
	}

	fmt.Fprintf(&sb, "\n🤖 *AI Analysis*\n%s\n\n", r.AIAnalysis)
	fmt.Fprintf(&sb, "👉 *Recommended Action*\n%s", r.RecommendedAction)
	return sb.String()
}

func renderStatus(v dashboard.View) string {
	var sb strings.Builder
	if v.TourActive && v.StepIndex != nil {
		fmt.Fprintf(&sb, "Tour Active · Step %d of %d\n", *v.StepIndex+1, v.StepCount)
	} else {
		sb.WriteString("Tour not running\n")
	}
	if v.Zone != nil {
		fmt.Fprintf(&sb, "Open zone: %s\n", v.Zone.Title)
	} else {
		sb.WriteString("No zone open\n")
	}
	switch {
	case v.Loading:
		sb.WriteString("Simulation: running")
	case v.Report != nil:
		fmt.Fprintf(&sb, "Simulation: %s", statusBadge(v.Report.SystemStatus))
	default:
		sb.WriteString("Simulation: none")
	}
	return sb.String()
}

const tourCompleteMessage = "🏁 Tour complete. Thanks for visiting the Factory of the Future! Use /tour to start again or /zones to explore."

const exitMessage = "Panel closed. Use /zones to explore or /tour to start the guided tour."

// zoneKeyboard lays the zones out one row per floor area.
func zoneKeyboard(c *catalog.Catalog) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	placed := make(map[string]bool)

	button := func(z catalog.Zone) tgbotapi.InlineKeyboardButton {
		placed[z.ID] = true
		return tgbotapi.NewInlineKeyboardButtonData(z.Icon().Glyph()+" "+z.Title, callbackData(actionZone, z.ID))
	}

	for _, a := range c.Areas() {
		var row []tgbotapi.InlineKeyboardButton
		for _, id := range a.ZoneIDs {
			if z, ok := c.Zone(id); ok && !placed[id] {
				row = append(row, button(z))
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	for _, z := range c.Zones() {
		if !placed[z.ID] {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(z)))
		}
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶️ Start Interactive Tour", callbackData(actionTourStart, "")),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// panelKeyboard offers the actions available for the open panel.
func panelKeyboard(v dashboard.View) tgbotapi.InlineKeyboardMarkup {
	if v.PanelStep != nil {
		next := "Next Stop ➡️"
		if v.LastStep {
			next = "Finish Tour 🏁"
		}
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("▶️ Run Live Simulation", callbackData(actionRun, "")),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✖️ Exit Tour", callbackData(actionExit, "")),
				tgbotapi.NewInlineKeyboardButtonData(next, callbackData(actionTourNext, "")),
			),
		)
	}

	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔄 Run New Scenario", callbackData(actionRun, "")),
		tgbotapi.NewInlineKeyboardButtonData("🗺 Zones", callbackData(actionZones, "")),
	}
	if v.TourActive {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next Stop ➡️", callbackData(actionTourNext, "")))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func splitMessage(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var parts []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		nextLength := current.Len() + len(paragraph)
		if current.Len() > 0 {
			nextLength += 2
		}
		if nextLength > maxLength {
			flush()
		}

		for len(paragraph) > maxLength {
			cut := maxLength
			for cut > 0 && !utf8.RuneStart(paragraph[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxLength
			}
			parts = append(parts, paragraph[:cut])
			paragraph = paragraph[cut:]
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}
	flush()

	return parts
}
