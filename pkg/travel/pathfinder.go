// Package travel computes point-to-point routes over the map's travel
// edges. Containment is not travel: moving into or out of an enclosing
// node needs no route, and containment edges are never walked.
package travel

import (
	"container/heap"
	"sort"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Step is one move of a route: the node arrived at and the edge used to
// get there. A route never repeats a node.
type Step struct {
	NodeID string `json:"node_id"`
	EdgeID string `json:"edge_id"`
}

// FindPath returns the shortest route from currentID to destinationID
// over traversable edges, weighted by travel time when present and 1
// otherwise. It returns nil when no travel is needed (same node, or the
// destination is a structural ancestor or descendant of the current node)
// and nil when no route exists. Callers present nil as "no route", never
// as an error.
func FindPath(data *worldmap.MapData, currentID, destinationID string) []Step {
	if currentID == destinationID {
		return nil
	}
	if data.Node(currentID) == nil || data.Node(destinationID) == nil {
		return nil
	}
	if data.IsAncestor(destinationID, currentID) || data.IsAncestor(currentID, destinationID) {
		return nil
	}

	adj := travelAdjacency(data)

	// Dijkstra with deterministic tie-breaking on node id.
	dist := map[string]float64{currentID: 0}
	prevEdge := make(map[string]worldmap.MapEdge)
	prevNode := make(map[string]string)
	visited := make(map[string]bool)

	pq := &nodeQueue{{id: currentID, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == destinationID {
			break
		}
		for _, hop := range adj[cur.id] {
			alt := cur.dist + hop.edge.Weight()
			if d, ok := dist[hop.to]; !ok || alt < d {
				dist[hop.to] = alt
				prevEdge[hop.to] = hop.edge
				prevNode[hop.to] = cur.id
				heap.Push(pq, nodeItem{id: hop.to, dist: alt})
			}
		}
	}

	if !visited[destinationID] {
		return nil
	}

	var steps []Step
	for id := destinationID; id != currentID; id = prevNode[id] {
		steps = append(steps, Step{NodeID: id, EdgeID: prevEdge[id].ID})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

type hop struct {
	to   string
	edge worldmap.MapEdge
}

// travelAdjacency builds the undirected adjacency over traversable edges,
// with neighbor lists sorted for deterministic search order.
func travelAdjacency(data *worldmap.MapData) map[string][]hop {
	adj := make(map[string][]hop)
	for _, e := range data.Edges {
		if !e.Data.Type.Traversable() {
			continue
		}
		if data.Node(e.SourceNodeID) == nil || data.Node(e.TargetNodeID) == nil {
			continue
		}
		adj[e.SourceNodeID] = append(adj[e.SourceNodeID], hop{to: e.TargetNodeID, edge: e})
		adj[e.TargetNodeID] = append(adj[e.TargetNodeID], hop{to: e.SourceNodeID, edge: e})
	}
	for id := range adj {
		hops := adj[id]
		sort.Slice(hops, func(i, j int) bool {
			if hops[i].to != hops[j].to {
				return hops[i].to < hops[j].to
			}
			return hops[i].edge.ID < hops[j].edge.ID
		})
	}
	return adj
}

type nodeItem struct {
	id   string
	dist float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id < q[j].id
}
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
