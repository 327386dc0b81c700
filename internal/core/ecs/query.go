package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller pool and probes the larger one.
func Each2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	pa, pb := Pool[A](r), Pool[B](r)
	if pa.Len() <= pb.Len() {
		for i, e := range pa.entities {
			if b, ok := pb.TryGet(e); ok {
				fn(e, &pa.dense[i], b)
			}
		}
		return
	}
	for i, e := range pb.entities {
		if a, ok := pa.TryGet(e); ok {
			fn(e, a, &pb.dense[i])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C, walking A.
func Each3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	pa, pb, pc := Pool[A](r), Pool[B](r), Pool[C](r)
	for i, e := range pa.entities {
		b, ok := pb.TryGet(e)
		if !ok {
			continue
		}
		c, ok := pc.TryGet(e)
		if !ok {
			continue
		}
		fn(e, &pa.dense[i], b, c)
	}
}
