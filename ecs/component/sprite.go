package component

// Sprite selects the atlas frame a renderer draws for an entity.
type Sprite struct {
	Index      int
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
