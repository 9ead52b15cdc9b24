package models

// TeamConfig is one entry of a game's teams_config column. Team names act as
// the join key to matches and bookings, so they must be unique within a game.
type TeamConfig struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// HasTeam reports whether the given name is one of the configured teams.
func HasTeam(teams []TeamConfig, name string) bool {
	for _, t := range teams {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TeamNames returns the configured names in config order.
func TeamNames(teams []TeamConfig) []string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return names
}
