package tts

// Voice describes a prebuilt voice offered by the synthesis service.
type Voice struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultVoice is used when a request does not specify a voice.
const DefaultVoice = "Zephyr"

// Gemini's prebuilt voice catalog. Names are sent verbatim as the
// prebuilt voice config, so casing matters.
var voices = []Voice{
	{Name: "Zephyr", Description: "Bright"},
	{Name: "Puck", Description: "Upbeat"},
	{Name: "Charon", Description: "Informative"},
	{Name: "Kore", Description: "Firm"},
	{Name: "Fenrir", Description: "Excitable"},
	{Name: "Leda", Description: "Youthful"},
	{Name: "Orus", Description: "Firm"},
	{Name: "Aoede", Description: "Breezy"},
	{Name: "Callirrhoe", Description: "Easy-going"},
	{Name: "Autonoe", Description: "Bright"},
	{Name: "Enceladus", Description: "Breathy"},
	{Name: "Iapetus", Description: "Clear"},
	{Name: "Umbriel", Description: "Easy-going"},
	{Name: "Algieba", Description: "Smooth"},
	{Name: "Despina", Description: "Smooth"},
	{Name: "Erinome", Description: "Clear"},
	{Name: "Algenib", Description: "Gravelly"},
	{Name: "Rasalgethi", Description: "Informative"},
	{Name: "Laomedeia", Description: "Upbeat"},
	{Name: "Achernar", Description: "Soft"},
	{Name: "Alnilam", Description: "Firm"},
	{Name: "Schedar", Description: "Even"},
	{Name: "Gacrux", Description: "Mature"},
	{Name: "Pulcherrima", Description: "Forward"},
	{Name: "Achird", Description: "Friendly"},
	{Name: "Zubenelgenubi", Description: "Casual"},
	{Name: "Vindemiatrix", Description: "Gentle"},
	{Name: "Sadachbia", Description: "Lively"},
	{Name: "Sadaltager", Description: "Knowledgeable"},
	{Name: "Sulafat", Description: "Warm"},
}

// Voices returns the voice catalog in stable order.
func Voices() []Voice {
	out := make([]Voice, len(voices))
	copy(out, voices)
	return out
}

// ValidVoice reports whether name is in the voice catalog. Matching is
// exact, including case.
func ValidVoice(name string) bool {
	for _, v := range voices {
		if v.Name == name {
			return true
		}
	}
	return false
}
