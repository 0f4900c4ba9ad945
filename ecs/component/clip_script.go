package component

// ClipScript binds a tengo script that reacts to the entity's finished clips.
type ClipScript struct {
	Path string
}

var ClipScriptComponent = NewComponent[ClipScript]()
