package dto

import "github.com/google/uuid"

type GraphNode struct {
	Id    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Type  string    `json:"type"`
	Tags  []string  `json:"tags"`
}

type GraphLink struct {
	Source uuid.UUID `json:"source"`
	Target uuid.UUID `json:"target"`
}

type GraphResponse struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type LocalGraphResponse struct {
	RootId uuid.UUID `json:"rootId"`
	Depth  int       `json:"depth"`
	GraphResponse
}

type ShortestPathResponse struct {
	Path []uuid.UUID `json:"path"`
}

type ConnectedNote struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Connections int       `json:"connections"`
}

type GraphStatsResponse struct {
	TotalNotes      int64           `json:"totalNotes"`
	TotalLinks      int64           `json:"totalLinks"`
	AvgLinksPerNote float64         `json:"avgLinksPerNote"`
	MostConnected   []ConnectedNote `json:"mostConnected"`
}
