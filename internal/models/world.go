package models

import "encoding/json"

// WorldEdge aggregates every observed transition between two world-graph nodes.
type WorldEdge struct {
	Source        string  `json:"source"`
	Dest          string  `json:"dest"`
	UserCount     int     `json:"user_count"`
	TotalNumHours float64 `json:"total_num_hours"`
}

// AvgNumHours returns the mean transition duration in hours.
func (e WorldEdge) AvgNumHours() float64 {
	if e.UserCount == 0 {
		return 0
	}

	return e.TotalNumHours / float64(e.UserCount)
}

// MarshalJSON adds the derived avg_num_hours field.
func (e WorldEdge) MarshalJSON() ([]byte, error) {
	type edge WorldEdge

	return json.Marshal(struct {
		edge
		AvgNumHours float64 `json:"avg_num_hours"`
	}{edge(e), e.AvgNumHours()})
}

// WorldGraph is the stage-transition graph for one role.
type WorldGraph struct {
	Nodes []string    `json:"nodes"`
	Edges []WorldEdge `json:"edges"`
}

// WorldView is the payload of the role world endpoint.
type WorldView struct {
	Role             RoleWithCompany `json:"role"`
	ApplicationCount int             `json:"application_count"`
	Graph            WorldGraph      `json:"graph"`
}
