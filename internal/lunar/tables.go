package lunar

var phaseName = map[Phase]string{
	PhaseNewMoon:        "New Moon",
	PhaseWaxingCrescent: "Waxing Crescent",
	PhaseFirstQuarter:   "First Quarter",
	PhaseWaxingGibbous:  "Waxing Gibbous",
	PhaseFullMoon:       "Full Moon",
	PhaseWaningGibbous:  "Waning Gibbous",
	PhaseLastQuarter:    "Last Quarter",
	PhaseWaningCrescent: "Waning Crescent",
}

// Name returns the human readable phase name without the emoji marker.
func (p Phase) Name() string {
	return phaseName[p]
}

var phaseDisplay = map[Phase]string{
	PhaseNewMoon:        "New Moon 🌑",
	PhaseWaxingCrescent: "Waxing Crescent 🌒",
	PhaseFirstQuarter:   "First Quarter 🌓",
	PhaseWaxingGibbous:  "Waxing Gibbous 🌔",
	PhaseFullMoon:       "Full Moon 🌕",
	PhaseWaningGibbous:  "Waning Gibbous 🌖",
	PhaseLastQuarter:    "Last Quarter 🌗",
	PhaseWaningCrescent: "Waning Crescent 🌘",
}

var phaseAdvice = map[Phase]string{
	PhaseNewMoon:        "Resting period. Ideal for planning and preparing the soil. Avoid major sowings.",
	PhaseWaxingCrescent: "Growth phase. Excellent for sowing leaf crops (lettuce, spinach, cabbage).",
	PhaseFirstQuarter:   "Vigor phase. Perfect for transplanting and sowing crops that fruit above ground.",
	PhaseWaxingGibbous:  "Strength phase. Ideal for sowing tubers and root crops.",
	PhaseFullMoon:       "Peak energy. Good time to harvest and to sow long-cycle crops.",
	PhaseWaningGibbous:  "Waning phase. Ideal time for pruning, fertilizing and preparing compost.",
	PhaseLastQuarter:    "Rest phase. Perfect for weeding and pest control.",
	PhaseWaningCrescent: "Resting phase. Ideal for maintenance chores and tidying the garden.",
}

var phaseActivities = map[Phase][]string{
	PhaseNewMoon:        {"Planning", "Soil preparation", "Rest"},
	PhaseWaxingCrescent: {"Leaf crop sowing", "Lettuce", "Spinach", "Cabbage"},
	PhaseFirstQuarter:   {"Transplanting", "Tomatoes", "Peppers", "Cucumbers"},
	PhaseWaxingGibbous:  {"Tubers", "Carrots", "Potatoes", "Radishes"},
	PhaseFullMoon:       {"Harvest", "Long-cycle sowing", "Gathering"},
	PhaseWaningGibbous:  {"Pruning", "Fertilizing", "Compost"},
	PhaseLastQuarter:    {"Pest control", "Weeding"},
	PhaseWaningCrescent: {"Maintenance", "Cleanup", "Preparation"},
}
