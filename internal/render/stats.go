package render

// Stats counts GPU submissions since the last ResetStats.
type Stats struct {
	DrawCalls int
	QuadCount int
}

func (s Stats) VertexCount() int { return s.QuadCount * verticesPerQuad }
func (s Stats) IndexCount() int  { return s.QuadCount * indicesPerQuad }
