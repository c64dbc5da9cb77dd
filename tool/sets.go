package tool

// Builtin returns a registry holding every built-in tool, in the order they
// are presented to the model.
func Builtin(ws *Workspace) *Registry {
	return MustNewRegistry(BuiltinTools(ws)...)
}

// BuiltinTools returns the built-in tool descriptors bound to ws.
func BuiltinTools(ws *Workspace) []Descriptor {
	return []Descriptor{
		ReadFile(),
		ListDir(),
		SaveMemory(ws),
		GetMemories(ws),
		GenerateImage(ws),
		GenerateAudio(ws),
		PlayAudio(ws),
		PlayTTS(ws),
	}
}
