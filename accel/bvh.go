package accel

import (
	"sort"

	"rayimpact/rmath"
	"rayimpact/shape"
)

// SplitMethod selects how a build range is partitioned into two children
// (§4.E). SAH is the default; Middle and EqualCounts are its cheaper
// fallbacks, HLBVH a coarser top-down variant for very large inputs.
type SplitMethod int

const (
	SplitSAH SplitMethod = iota
	SplitMiddle
	SplitEqualCounts
	SplitHLBVH
)

const numSAHBuckets = 12

// BVH is a bounding-volume hierarchy over a fixed set of Models, flattened
// into a linear, permuted array for cache-friendly traversal. Grounded on
// spec.md §4.E; no example repo implements a spatial acceleration structure,
// so the traversal loop's AABB slab test is carried over from the teacher's
// editor/raycast.go brute-force scan, generalized from a flat list to a tree.
type BVH struct {
	models           []Model
	nodes            []linearNode
	maxModelsPerLeaf int
}

type linearNode struct {
	bounds rmath.Bounds3
	// For a leaf, modelsOffset indexes into BVH.models and numModels > 0.
	// For an interior node, secondChildOffset indexes into BVH.nodes and
	// numModels == 0.
	modelsOffset      int32
	secondChildOffset int32
	numModels         uint16
	axis              uint8
}

type buildModelInfo struct {
	model    Model
	bounds   rmath.Bounds3
	centroid rmath.Pt3
}

type buildNode struct {
	bounds      rmath.Bounds3
	left, right *buildNode
	splitAxis   int
	firstOffset int
	numModels   int
}

func makeLeaf(firstOffset, numModels int, bounds rmath.Bounds3) *buildNode {
	return &buildNode{bounds: bounds, firstOffset: firstOffset, numModels: numModels}
}

func makeInterior(axis int, left, right *buildNode) *buildNode {
	return &buildNode{bounds: left.bounds.Union(right.bounds), left: left, right: right, splitAxis: axis}
}

// Build constructs a BVH over models. An empty input yields a BVH whose
// Intersect/HasIntersection always report a miss; this is expected, not an
// error (§4.E "Failure semantics").
func Build(models []Model, maxModelsPerLeaf int, method SplitMethod) *BVH {
	if maxModelsPerLeaf < 1 {
		maxModelsPerLeaf = 1
	}
	b := &BVH{maxModelsPerLeaf: maxModelsPerLeaf}
	if len(models) == 0 {
		return b
	}

	infos := make([]buildModelInfo, len(models))
	for i, m := range models {
		wb := m.WorldBounds()
		infos[i] = buildModelInfo{model: m, bounds: wb, centroid: wb.Centroid()}
	}

	orderedModels := make([]Model, 0, len(models))
	var totalNodes int
	root := b.recursiveBuild(infos, 0, len(infos), &totalNodes, &orderedModels, method)

	b.models = orderedModels
	b.nodes = make([]linearNode, 0, totalNodes)
	b.flatten(root)
	return b
}

func (b *BVH) recursiveBuild(infos []buildModelInfo, start, end int, totalNodes *int, ordered *[]Model, method SplitMethod) *buildNode {
	*totalNodes++
	bounds := rmath.EmptyBounds3()
	for _, info := range infos[start:end] {
		bounds = bounds.Union(info.bounds)
	}

	n := end - start
	if n == 1 {
		return b.emitLeaf(infos, start, end, bounds, ordered)
	}

	centroidBounds := rmath.EmptyBounds3()
	for _, info := range infos[start:end] {
		centroidBounds = centroidBounds.UnionPoint(info.centroid)
	}
	axis := centroidBounds.MaximumExtent()

	if centroidBounds.Max.Component(axis) == centroidBounds.Min.Component(axis) {
		return b.emitLeaf(infos, start, end, bounds, ordered)
	}

	mid := b.partition(infos, start, end, axis, centroidBounds, bounds, method)
	if mid == start && n <= b.maxModelsPerLeaf {
		// The method declined to split a range that fits in one leaf.
		return b.emitLeaf(infos, start, end, bounds, ordered)
	}
	if mid <= start || mid >= end {
		// The chosen method failed to produce a non-trivial split (can
		// happen with duplicate centroids under SAH); fall back to an
		// even split so recursion always terminates.
		mid = (start + end) / 2
		sort.Slice(infos[start:end], func(i, j int) bool {
			return infos[start+i].centroid.Component(axis) < infos[start+j].centroid.Component(axis)
		})
	}

	left := b.recursiveBuild(infos, start, mid, totalNodes, ordered, method)
	right := b.recursiveBuild(infos, mid, end, totalNodes, ordered, method)
	return makeInterior(axis, left, right)
}

func (b *BVH) emitLeaf(infos []buildModelInfo, start, end int, bounds rmath.Bounds3, ordered *[]Model) *buildNode {
	firstOffset := len(*ordered)
	for _, info := range infos[start:end] {
		*ordered = append(*ordered, info.model)
	}
	return makeLeaf(firstOffset, end-start, bounds)
}

// partition reorders infos[start:end] in place and returns the split index,
// per the selected method (§4.E).
func (b *BVH) partition(infos []buildModelInfo, start, end, axis int, centroidBounds, bounds rmath.Bounds3, method SplitMethod) int {
	n := end - start

	if n <= b.maxModelsPerLeaf && method != SplitSAH {
		return start // caller emits a leaf when partition declines to split
	}

	switch method {
	case SplitMiddle:
		pmid := (centroidBounds.Min.Component(axis) + centroidBounds.Max.Component(axis)) / 2
		mid := partitionBy(infos[start:end], func(i buildModelInfo) bool {
			return i.centroid.Component(axis) < pmid
		})
		if mid != 0 && mid != n {
			return start + mid
		}
		return b.partition(infos, start, end, axis, centroidBounds, bounds, SplitEqualCounts)

	case SplitEqualCounts:
		mid := n / 2
		nthElementByAxis(infos[start:end], axis)
		return start + mid

	case SplitHLBVH:
		return b.partitionHLBVH(infos, start, end, axis, centroidBounds)

	default: // SplitSAH
		return b.partitionSAH(infos, start, end, axis, centroidBounds, bounds)
	}
}

func partitionBy(s []buildModelInfo, pred func(buildModelInfo) bool) int {
	i := 0
	for j := range s {
		if pred(s[j]) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	return i
}

// nthElementByAxis orders s by centroid component along axis so that index k
// holds its final sorted position; a full sort is simpler than quickselect
// and the per-leaf ranges this runs over are small in practice.
func nthElementByAxis(s []buildModelInfo, axis int) {
	sort.Slice(s, func(i, j int) bool {
		return s[i].centroid.Component(axis) < s[j].centroid.Component(axis)
	})
}

// partitionSAH buckets models into numSAHBuckets equal-width bins along axis
// and picks the split minimizing T_trav + (N_L*SA_L + N_R*SA_R)/SA_parent,
// falling back to a leaf (returned as start, signalling "don't split") when
// the best bucket split doesn't beat the cost of just making a leaf.
func (b *BVH) partitionSAH(infos []buildModelInfo, start, end, axis int, centroidBounds, bounds rmath.Bounds3) int {
	n := end - start
	if n <= 2 {
		mid := n / 2
		nthElementByAxis(infos[start:end], axis)
		return start + mid
	}

	type bucket struct {
		count  int
		bounds rmath.Bounds3
	}
	buckets := make([]bucket, numSAHBuckets)
	for i := range buckets {
		buckets[i].bounds = rmath.EmptyBounds3()
	}

	bucketIndex := func(info buildModelInfo) int {
		idx := int(rmath.Float(numSAHBuckets) * centroidBounds.Offset(info.centroid).Component(axis))
		if idx >= numSAHBuckets {
			idx = numSAHBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}

	for _, info := range infos[start:end] {
		bi := bucketIndex(info)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(info.bounds)
	}

	cost := make([]rmath.Float, numSAHBuckets-1)
	for i := range cost {
		b0, b1 := rmath.EmptyBounds3(), rmath.EmptyBounds3()
		count0, count1 := 0, 0
		for j := 0; j <= i; j++ {
			b0 = b0.Union(buckets[j].bounds)
			count0 += buckets[j].count
		}
		for j := i + 1; j < numSAHBuckets; j++ {
			b1 = b1.Union(buckets[j].bounds)
			count1 += buckets[j].count
		}
		cost[i] = 0.125 + (rmath.Float(count0)*b0.SurfaceArea()+rmath.Float(count1)*b1.SurfaceArea())/bounds.SurfaceArea()
	}

	minCost := cost[0]
	minBucket := 0
	for i := 1; i < len(cost); i++ {
		if cost[i] < minCost {
			minCost = cost[i]
			minBucket = i
		}
	}

	leafCost := rmath.Float(n)
	if n > b.maxModelsPerLeaf || minCost < leafCost {
		mid := partitionBy(infos[start:end], func(info buildModelInfo) bool {
			return bucketIndex(info) <= minBucket
		})
		if mid != 0 && mid != n {
			return start + mid
		}
	}
	return start // signal: emit a leaf
}

// partitionHLBVH is a simplified stand-in for the full Morton-code LBVH
// build: it buckets by axis-major Morton-like ordering via a direct sort on
// the centroid (equivalent to the common one-axis-at-a-time degenerate
// case), which keeps the optional fast path correct without the full
// radix-sort cluster machinery. Marked optional per §4.E.
func (b *BVH) partitionHLBVH(infos []buildModelInfo, start, end, axis int, centroidBounds rmath.Bounds3) int {
	mid := (end - start) / 2
	nthElementByAxis(infos[start:end], axis)
	return start + mid
}

func (b *BVH) flatten(n *buildNode) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, linearNode{})
	node := linearNode{bounds: n.bounds}
	if n.left == nil && n.right == nil {
		node.modelsOffset = int32(n.firstOffset)
		node.numModels = uint16(n.numModels)
	} else {
		b.flatten(n.left)
		node.axis = uint8(n.splitAxis)
		node.numModels = 0
		node.secondChildOffset = b.flatten(n.right)
	}
	b.nodes[idx] = node
	return idx
}

// WorldBounds returns the bounds of the whole structure (empty if Build saw
// no models).
func (b *BVH) WorldBounds() rmath.Bounds3 {
	if len(b.nodes) == 0 {
		return rmath.EmptyBounds3()
	}
	return b.nodes[0].bounds
}

func (b *BVH) Intersect(ray rmath.Ray) (rmath.Float, shape.SurfaceScatteringEvent, bool) {
	dist, event, _, hit := b.IntersectModel(ray)
	return dist, event, hit
}

// IntersectModel is the traversal the integrator uses directly: beyond the
// Model-contract triple, it also reports which Model was hit, so the
// integrator can look up that model's material/area-light bindings (§4.D
// "back-reference to the intersected Model", §4.J step 2-3).
func (b *BVH) IntersectModel(ray rmath.Ray) (rmath.Float, shape.SurfaceScatteringEvent, Model, bool) {
	if len(b.nodes) == 0 {
		return 0, shape.SurfaceScatteringEvent{}, nil, false
	}

	invDir := rmath.Vec3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}

	var (
		hit        bool
		hitDist    rmath.Float
		hitEvent   shape.SurfaceScatteringEvent
		hitModel   Model
		toVisit    [64]int32
		toVisitTop int
		current    int32
	)
	currentRay := ray

	for {
		node := &b.nodes[current]
		if node.bounds.IntersectP(currentRay, invDir, dirIsNeg) {
			if node.numModels > 0 {
				for i := int32(0); i < int32(node.numModels); i++ {
					m := b.models[node.modelsOffset+i]
					if dist, event, ok := m.Intersect(currentRay); ok {
						hit = true
						hitDist = dist
						hitEvent = event
						hitModel = m
						currentRay.MaxDistance = dist
					}
				}
				if toVisitTop == 0 {
					break
				}
				toVisitTop--
				current = toVisit[toVisitTop]
				continue
			}

			// Interior node: visit the near child first so a hit there can
			// prune the far child via the shrinking MaxDistance.
			if dirIsNeg[node.axis] {
				toVisit[toVisitTop] = current + 1
				toVisitTop++
				current = node.secondChildOffset
			} else {
				toVisit[toVisitTop] = node.secondChildOffset
				toVisitTop++
				current = current + 1
			}
			continue
		}

		if toVisitTop == 0 {
			break
		}
		toVisitTop--
		current = toVisit[toVisitTop]
	}

	return hitDist, hitEvent, hitModel, hit
}

func (b *BVH) HasIntersection(ray rmath.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}

	invDir := rmath.Vec3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}

	var toVisit [64]int32
	toVisitTop := 0
	current := int32(0)

	for {
		node := &b.nodes[current]
		if node.bounds.IntersectP(ray, invDir, dirIsNeg) {
			if node.numModels > 0 {
				for i := int32(0); i < int32(node.numModels); i++ {
					if b.models[node.modelsOffset+i].HasIntersection(ray) {
						return true
					}
				}
				if toVisitTop == 0 {
					return false
				}
				toVisitTop--
				current = toVisit[toVisitTop]
				continue
			}
			if dirIsNeg[node.axis] {
				toVisit[toVisitTop] = current + 1
				toVisitTop++
				current = node.secondChildOffset
			} else {
				toVisit[toVisitTop] = node.secondChildOffset
				toVisitTop++
				current = current + 1
			}
			continue
		}

		if toVisitTop == 0 {
			return false
		}
		toVisitTop--
		current = toVisit[toVisitTop]
	}
}
