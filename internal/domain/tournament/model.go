package tournament

import "fmt"

// Tournament is a named competition with a fixed set of divisions.
type Tournament struct {
	ID        string
	Name      string
	Divisions []Division
}

// Division is a skill bracket inside a tournament.
type Division struct {
	ID   string
	Name string
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if len(t.Divisions) == 0 {
		return fmt.Errorf("tournament %s has no divisions", t.ID)
	}

	seen := make(map[string]struct{}, len(t.Divisions))
	for _, d := range t.Divisions {
		if d.ID == "" || d.Name == "" {
			return fmt.Errorf("tournament %s has a division without id or name", t.ID)
		}
		if _, ok := seen[d.ID]; ok {
			return fmt.Errorf("tournament %s has duplicate division %s", t.ID, d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	return nil
}

func (t Tournament) Division(divisionID string) (Division, bool) {
	for _, d := range t.Divisions {
		if d.ID == divisionID {
			return d, true
		}
	}
	return Division{}, false
}

// Capacity is the player cap of every division in the tournament.
func (t Tournament) Capacity() int {
	return Capacity(t.Name)
}
