package application

import (
	"context"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

// GraphBuilder turns one entity and its direct neighbours into a star graph.
type GraphBuilder struct {
	store domain.Store
}

func NewGraphBuilder(store domain.Store) *GraphBuilder {
	return &GraphBuilder{store: store}
}

// Build returns the root node first, then counterparts in relation order. A
// counterpart reached through several relations is drawn once, with the edge
// of the first relation that reached it.
func (b *GraphBuilder) Build(ctx context.Context, kind domain.Kind, id string) (domain.Graph, error) {
	relations, err := domain.GraphRelations(kind)
	if err != nil {
		return domain.Graph{}, err
	}
	root, err := b.store.Find(ctx, kind, id)
	if err != nil {
		return domain.Graph{}, err
	}

	rootNode := nodeFor(root)
	graph := domain.Graph{
		Nodes: []domain.GraphNode{rootNode},
		Edges: []domain.GraphEdge{},
	}
	seen := map[string]struct{}{rootNode.ID: {}}

	for _, rel := range relations {
		related, err := b.store.Related(ctx, rel, id)
		if err != nil {
			return domain.Graph{}, err
		}
		for _, e := range related {
			node := nodeFor(e)
			if _, dup := seen[node.ID]; dup {
				continue
			}
			seen[node.ID] = struct{}{}
			graph.Nodes = append(graph.Nodes, node)

			source, target := rootNode.ID, node.ID
			if rel.Inbound {
				source, target = node.ID, rootNode.ID
			}
			graph.Edges = append(graph.Edges, domain.GraphEdge{
				ID:     domain.EdgeID(source, target),
				Source: source,
				Target: target,
				Label:  rel.Verb,
			})
		}
	}
	return graph, nil
}

func nodeFor(e domain.Entity) domain.GraphNode {
	return domain.GraphNode{
		ID:    domain.NodeID(e.EntityKind(), e.EntityID()),
		Label: e.DisplayLabel(),
		Type:  string(e.EntityKind()),
		Data:  e,
	}
}
