package catalog

// Default returns the built-in factory floor.
func Default() *Catalog {
	return New(defaultZones, defaultSteps, defaultAreas)
}

var defaultZones = []Zone{
	// Processing and maintenance, left side.
	{
		ID:          "process-optimization",
		Title:       "Process Optimization",
		Description: "AI-driven batch optimization (Golden Batch) to maximize yield and minimize waste.",
		IconKey:     "Cpu",
		Position:    Position{Top: "25%", Left: "20%"},
		Category:    CategoryOperations,
	},
	{
		ID:          "condition-monitoring",
		Title:       "Predictive Maintenance",
		Description: "Real-time condition monitoring to predict failures before they occur.",
		IconKey:     "Activity",
		Position:    Position{Top: "45%", Left: "15%"},
		Category:    CategoryMaintenance,
	},

	// Workforce and machines, top center.
	{
		ID:          "connected-workers",
		Title:       "Connected Workers",
		Description: "AR/VR enabled workforce with Digital Lean tools for real-time guidance.",
		IconKey:     "Users",
		Position:    Position{Top: "15%", Left: "45%"},
		Category:    CategoryWorkforce,
	},
	{
		ID:          "connected-machines",
		Title:       "Connected Machines (IoT)",
		Description: "Full IoT integration for seamless machine-to-machine communication.",
		IconKey:     "Wifi",
		Position:    Position{Top: "15%", Left: "70%"},
		Category:    CategoryOperations,
	},

	// Quality and automation, center line.
	{
		ID:          "digital-quality",
		Title:       "Digital Quality (Vision AI)",
		Description: "In-line computer vision systems for automated defect detection.",
		IconKey:     "Eye",
		Position:    Position{Top: "55%", Left: "35%"},
		Category:    CategoryQuality,
	},
	{
		ID:          "equipment-automation",
		Title:       "Equipment Automation",
		Description: "Cobots and advanced machine vision enhancing production speed.",
		IconKey:     "Bot",
		Position:    Position{Top: "50%", Left: "60%"},
		Category:    CategoryOperations,
	},

	// Logistics and control, bottom.
	{
		ID:          "decision-guidance",
		Title:       "AI Decision Guidance",
		Description: "GenAI-enhanced decision support for shopfloor operators.",
		IconKey:     "Brain",
		Position:    Position{Top: "75%", Left: "25%"},
		Category:    CategoryOperations,
	},
	{
		ID:          "watch-tower",
		Title:       "Supply Chain Watch Tower",
		Description: "End-to-end visibility across the manufacturing and logistics network.",
		IconKey:     "TowerControl",
		Position:    Position{Top: "85%", Left: "50%"},
		Category:    CategorySupplyChain,
	},
	{
		ID:          "agv-automation",
		Title:       "Warehouse Automation",
		Description: "AGVs and automated conveyance systems for material handling.",
		IconKey:     "Truck",
		Position:    Position{Top: "75%", Left: "80%"},
		Category:    CategorySupplyChain,
	},
	{
		ID:          "digital-twins",
		Title:       "Digital Twins",
		Description: "Virtual replicas of assets and processes for scenario planning.",
		IconKey:     "Copy",
		Position:    Position{Top: "60%", Left: "90%"},
		Category:    CategoryOperations,
	},
}

var defaultAreas = []Area{
	{
		ID:       "processing-unit",
		Title:    "Processing Unit",
		Position: Position{Top: "15%", Left: "10%"},
		ZoneIDs:  []string{"process-optimization", "condition-monitoring"},
	},
	{
		ID:       "assembly-ops",
		Title:    "Assembly Operations",
		Position: Position{Top: "8%", Left: "60%"},
		ZoneIDs:  []string{"connected-workers", "connected-machines"},
	},
	{
		ID:       "production-line",
		Title:    "Production Line",
		Position: Position{Top: "35%", Left: "48%"},
		ZoneIDs:  []string{"digital-quality", "equipment-automation"},
	},
	{
		ID:       "logistics-hub",
		Title:    "Logistics Hub",
		Position: Position{Top: "50%", Left: "88%"},
		ZoneIDs:  []string{"agv-automation", "digital-twins"},
	},
	{
		ID:       "command-center",
		Title:    "Command Center",
		Position: Position{Top: "92%", Left: "30%"},
		ZoneIDs:  []string{"watch-tower", "decision-guidance"},
	},
}

var defaultSteps = []TourStep{
	{
		StopNumber: 1,
		ZoneID:     "connected-workers",
		Title:      "The Production Floor",
		Focus:      "Connected Workers (Digital Lean, AR/VR) & Augmented Guidance",
		UseCase:    "Augmented Systems to Guide Workers in Shopfloor Actions",
		Impact:     "A new technician is assembling a complex piece of equipment. The AR glasses highlight the exact bolts to tighten, show the required torque specification as a real-time visual indicator, and instantly flag any steps that are missed or performed incorrectly.",
	},
	{
		StopNumber: 2,
		ZoneID:     "digital-quality",
		Title:      "The Quality Inspection Station",
		Focus:      "In-process Digital Quality",
		UseCase:    "In-process Digital Quality (Vision, AI, and integrated quality systems)",
		Impact:     "As the product moves down the line, an array of AI-powered cameras captures thousands of high-resolution images. The AI model compares these images against the perfect \"digital twin\" of the product, identifying microscopic defects that a human eye would miss.",
	},
	{
		StopNumber: 3,
		ZoneID:     "condition-monitoring",
		Title:      "The Maintenance Bay",
		Focus:      "Condition Monitoring & Predictive Maintenance",
		UseCase:    "Condition monitoring & predictive maintenance",
		Impact:     "Sensors detect a subtle, rising frequency in a motor's vibration pattern. Instead of waiting for the motor to break, the system automatically schedules maintenance for that specific component 48 hours later, flagging the exact part that needs replacement.",
	},
	{
		StopNumber: 4,
		ZoneID:     "decision-guidance",
		Title:      "The Central Control Center",
		Focus:      "Intelligent Decision Support",
		UseCase:    "Intelligent Decision Support and Exception Based Intervention",
		Impact:     "A sudden supply chain delay is detected. The AI immediately analyzes all active orders and presents the human operator with three optimized scenarios: Re-prioritize, substitute material, or adjust speed. The operator makes a data-backed choice in seconds.",
	},
	{
		StopNumber: 5,
		ZoneID:     "digital-twins",
		Title:      "The Warehouse & Logistics Hub",
		Focus:      "Digital Twins of Assets, Processes & Networks",
		UseCase:    "Digital twins of assets, processes & networks",
		Impact:     "An operator uses the digital twin to simulate a sudden rush of urgent orders. They can test how the AGVs would route and where congestion points would occur in the virtual world, ensuring the physical system is pre-optimized.",
	},
}
