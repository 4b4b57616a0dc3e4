package domain

import "fmt"

type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Data  any    `json:"data"`
}

type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

func NodeID(kind Kind, id string) string {
	return fmt.Sprintf("%s-%s", kind, id)
}

func EdgeID(source, target string) string {
	return fmt.Sprintf("edge-%s-%s", source, target)
}
