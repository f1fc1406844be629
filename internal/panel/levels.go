package panel

// FanLevelFor maps a temperature in Celsius to a fan level 0..3.
func FanLevelFor(tempC int) int {
	switch {
	case tempC < 25:
		return 0
	case tempC < 30:
		return 1
	case tempC < 35:
		return 2
	default:
		return 3
	}
}

// LampLevelFor maps an ambient light reading (0 bright, 100 dark) to a lamp
// level 0..3: the darker the room, the more lamps.
func LampLevelFor(light int) int {
	switch {
	case light < 25:
		return 0
	case light < 50:
		return 1
	case light < 75:
		return 2
	default:
		return 3
	}
}
