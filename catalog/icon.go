package catalog

// Icon is the closed set of glyphs a zone can be drawn with.
type Icon int

const (
	IconHexagon Icon = iota // default for unknown keys
	IconCPU
	IconUsers
	IconWifi
	IconActivity
	IconEye
	IconBot
	IconBrain
	IconTowerControl
	IconCopy
	IconTruck
)

var iconKeys = map[string]Icon{
	"Cpu":          IconCPU,
	"Users":        IconUsers,
	"Wifi":         IconWifi,
	"Activity":     IconActivity,
	"Eye":          IconEye,
	"Bot":          IconBot,
	"Brain":        IconBrain,
	"TowerControl": IconTowerControl,
	"Copy":         IconCopy,
	"Truck":        IconTruck,
	"Hexagon":      IconHexagon,
}

// ParseIcon maps a symbolic key onto an Icon. Unknown keys yield IconHexagon.
func ParseIcon(key string) Icon {
	if icon, ok := iconKeys[key]; ok {
		return icon
	}
	return IconHexagon
}

func (i Icon) String() string {
	switch i {
	case IconCPU:
		return "Cpu"
	case IconUsers:
		return "Users"
	case IconWifi:
		return "Wifi"
	case IconActivity:
		return "Activity"
	case IconEye:
		return "Eye"
	case IconBot:
		return "Bot"
	case IconBrain:
		return "Brain"
	case IconTowerControl:
		return "TowerControl"
	case IconCopy:
		return "Copy"
	case IconTruck:
		return "Truck"
	default:
		return "Hexagon"
	}
}

// Glyph is the text rendering used in chat messages.
func (i Icon) Glyph() string {
	switch i {
	case IconCPU:
		return "⚙️"
	case IconUsers:
		return "👷"
	case IconWifi:
		return "📡"
	case IconActivity:
		return "📈"
	case IconEye:
		return "👁"
	case IconBot:
		return "🤖"
	case IconBrain:
		return "🧠"
	case IconTowerControl:
		return "🗼"
	case IconCopy:
		return "🪞"
	case IconTruck:
		return "🚚"
	default:
		return "⬡"
	}
}

func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
