package template

import (
	"fmt"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// TopoOrder returns node ids ordered so that every node comes after the
// nodes it depends on. Ties keep template order. Unknown dependency ids are
// ignored here; Validate reports them separately.
func TopoOrder(nodes []domain.WorkflowNode) ([]string, error) {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	deps := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		for _, d := range n.DependsOn {
			if known[d] && d != n.ID {
				deps[n.ID] = append(deps[n.ID], d)
			}
		}
	}

	color := make(map[string]int, len(nodes))
	order := make([]string, 0, len(nodes))

	var visit func(id string) error
	visit = func(id string) error {
		color[id] = gray
		for _, d := range deps[id] {
			switch color[d] {
			case gray:
				return fmt.Errorf("circular dependency detected involving %q and %q", id, d)
			case white:
				if err := visit(d); err != nil {
					return err
				}
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}

	for _, n := range nodes {
		if color[n.ID] == white {
			if err := visit(n.ID); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}
