package component

// Script binds an entity to a behaviour table loaded by the scripting engine.
type Script struct {
	Name string
}
