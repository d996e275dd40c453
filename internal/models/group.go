package models

// Group represents a board column (e.g., "To Do", "In Progress", "Complete").
// Groups are ordered by Position ascending. Older servers omit Position and
// carry only the legacy Rank field; boards sort on whichever is present.
type Group struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
	Rank     *int   `json:"rank,omitempty"` // legacy ordering field
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	c := *g
	if g.Position != nil {
		p := *g.Position
		c.Position = &p
	}
	if g.Rank != nil {
		r := *g.Rank
		c.Rank = &r
	}
	return &c
}
