package instructions

import "fmt"

// SimulationPrompt frames the control-AI role play for one zone.
const SimulationPrompt = `You are the AI brain of a futuristic pharmaceutical factory ("Pharmavite Factory of the Future").
Generate a realistic, real-time simulation status report for the "%s" zone.
Context: %s

The data should reflect a highly advanced Industry 4.0 environment.
Include realistic technical metrics appropriate for this specific zone (e.g., for Maintenance: vibration, temp; for Quality: defect rate, purity).`

const ScenarioClause = `

IMPORTANT: Simulate the following specific scenario: "%s".
Ensure the metrics, status, and AI analysis directly reflect this scenario occurring right now.`

const NominalClause = `

Create a scenario that is either "Optimal", "Degraded", or has a minor "Warning" to make it interesting, but mostly functional.`

// Simulation builds the full report prompt. An empty scenario asks for a
// mostly nominal invented status instead.
func Simulation(zoneTitle, zoneDescription, scenario string) string {
	prompt := fmt.Sprintf(SimulationPrompt, zoneTitle, zoneDescription)
	if scenario != "" {
		return prompt + fmt.Sprintf(ScenarioClause, scenario)
	}
	return prompt + NominalClause
}

const BackgroundPrompt = `A futuristic, high-tech pharmaceutical factory floor plan in a dark isometric style.

Visual Layout:
- Top-Left: Large stainless steel chemical mixing tanks and processing pipes.
- Top-Right: Advanced IoT server racks and automated machinery.
- Center: Clean, white automated production lines with conveyor belts and robotic arms.
- Bottom-Left: A digital quality control station with screens.
- Bottom-Right: An automated warehouse with orange shelving and small AGV robots.
- Bottom-Center: A glowing, glass-walled command center (Watch Tower).

Style:
- Dark blue and slate grey color palette with neon emerald and cyan data lines.
- Photorealistic, cinematic lighting, highly detailed 8k resolution.
- Isometric perspective looking down at a 45 degree angle.
- No text, just visual architecture.`

const WelcomeMessage = `🏭 **WELCOME TO THE FACTORY OF THE FUTURE**

Explore the floor zone by zone or take the guided tour.

• /zones - browse the factory zones
• /tour - start the interactive tour
• /next - go to the next tour stop
• /run - run a live simulation for the open zone
• /exit - leave the tour and close the panel
• /status - show where you are`

const UnknownCommand = "Unknown command. Try /zones or /tour."
