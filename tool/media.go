package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// GenerateImage returns the generateImage tool, which runs ImageMagick in
// the workspace.
//
// The input may start with an output=<relative path> line. A body that
// begins with convert or magick is run as-is; anything else is treated as
// convert arguments and the output path is appended.
func GenerateImage(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "generateImage",
		Description: "Use ImageMagick. Optional first line: output=<relative path>. Body: convert arguments or full command.",
		Invoke:      ws.generateImage,
	}
}

// GenerateAudio returns the generateAudio tool, which synthesizes speech
// with festival's text2wave.
func GenerateAudio(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "generateAudio",
		Description: "Create speech audio with festival. Optional first line output=<relative path>. Body: text to speak.",
		Invoke:      ws.generateAudio,
	}
}

// PlayAudio returns the playAudio tool.
func PlayAudio(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "playAudio",
		Description: "Play an audio file or directory inside ~/.gipwrap using mpv.",
		Invoke:      ws.playAudio,
	}
}

// PlayTTS returns the playTts tool: generateAudio followed by playback at 2x.
func PlayTTS(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "playTts",
		Description: "Generate speech and play it immediately at 2x speed. Optional first line output=<relative path>.",
		Invoke:      ws.playTTS,
	}
}

func (w *Workspace) generateImage(ctx context.Context, input string) (string, error) {
	name, body, err := parseOutputAndBody(input)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = w.stampedName("image_", "png")
	}
	if !IsSafeRelative(name) {
		return "", fmt.Errorf("Invalid image output path '%s'.", name)
	}

	abs, err := w.Join(name)
	if err != nil {
		return "", err
	}
	if err := prepareParent(abs); err != nil {
		return "", err
	}

	command := body
	if !hasPrefixFold(body, "convert") && !hasPrefixFold(body, "magick") {
		command = fmt.Sprintf("convert %s %s", body, shellQuote(name))
	}

	out, err := w.Run(ctx, command)
	if err != nil {
		return "", err
	}
	if !exists(abs) {
		return "", fmt.Errorf("Image was not created at %s.", abs)
	}
	return fmt.Sprintf("Image saved to %s.\n%s", name, out), nil
}

func (w *Workspace) generateAudio(ctx context.Context, input string) (string, error) {
	name, text, err := parseOutputAndBody(input)
	if err != nil {
		return "", err
	}
	rel, out, err := w.synthesize(ctx, text, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Audio saved to %s.\n%s", rel, out), nil
}

func (w *Workspace) playAudio(ctx context.Context, input string) (string, error) {
	rel := strings.TrimSpace(input)
	if rel == "" {
		return "", errors.New("Provide a relative path to the audio file or directory inside ~/.gipwrap.")
	}
	if !IsSafeRelative(rel) {
		return "", fmt.Errorf("Invalid audio path '%s'.", rel)
	}
	abs, err := w.Join(rel)
	if err != nil {
		return "", err
	}
	if !exists(abs) {
		return "", fmt.Errorf("Path %s does not exist.", abs)
	}

	out, err := w.Run(ctx, "mpv --no-video --loop-playlist=0 --speed=1.0 "+shellQuote(rel))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Playback command executed for %s.\n%s", rel, out), nil
}

func (w *Workspace) playTTS(ctx context.Context, input string) (string, error) {
	name, text, err := parseOutputAndBody(input)
	if err != nil {
		return "", err
	}
	rel, _, err := w.synthesize(ctx, text, name)
	if err != nil {
		return "", err
	}

	out, err := w.Run(ctx, "mpv --no-video --speed=2.0 "+shellQuote(rel))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Generated and played audio at 2x speed from %s.\n%s", rel, out), nil
}

// synthesize renders text to a wav file inside the workspace and returns its
// relative path along with the synthesizer's output.
func (w *Workspace) synthesize(ctx context.Context, text, requested string) (rel, out string, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", errors.New("Provide text to synthesize.")
	}

	rel = strings.TrimSpace(requested)
	if rel == "" {
		rel = w.stampedName("audio_", "wav")
	}
	if !IsSafeRelative(rel) {
		return "", "", fmt.Errorf("Invalid audio path '%s'. Use a relative path inside ~/.gipwrap.", rel)
	}

	abs, err := w.Join(rel)
	if err != nil {
		return "", "", err
	}
	if err := prepareParent(abs); err != nil {
		return "", "", err
	}

	tmp, err := os.CreateTemp("", "gipwrap_tts_*")
	if err != nil {
		return "", "", errors.New("Failed to create temporary file for TTS input.")
	}
	defer os.Remove(tmp.Name())
	_, werr := tmp.WriteString(text)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", "", errors.New("Failed to write temporary file for TTS input.")
	}

	command := fmt.Sprintf(`text2wave -eval "(voice_cmu_us_slt_arctic_hts)" %s -o %s`,
		shellQuote(tmp.Name()), shellQuote(abs))
	out, err = w.Run(ctx, command)
	if err != nil {
		return "", "", err
	}
	if !exists(abs) {
		return "", "", fmt.Errorf("Audio file was not created at %s.", abs)
	}
	return rel, out, nil
}

// outputKeys are the header names accepted on the first line of media tool input.
var outputKeys = []string{"output", "file", "path"}

// parseOutputAndBody splits media tool input into an optional output name,
// given on the first line as output=<name> or output: <name> (file and path
// are accepted too, in any case), and the trimmed remaining body.
func parseOutputAndBody(input string) (name, body string, err error) {
	input = strings.TrimLeft(input, " \t\n\r\v\f")
	first, rest, hasNewline := strings.Cut(input, "\n")
	first = strings.TrimSpace(first)

	body = input
	if n, ok := headerValue(first); ok {
		name = n
		body = ""
		if hasNewline {
			body = rest
		}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", "", errors.New("Tool input body is empty.")
	}
	return name, body, nil
}

func headerValue(line string) (string, bool) {
	for _, key := range outputKeys {
		if hasPrefixFold(line, key+"=") {
			return strings.TrimSpace(line[len(key)+1:]), true
		}
	}
	if k, v, ok := strings.Cut(line, ":"); ok {
		for _, key := range outputKeys {
			if strings.EqualFold(k, key) {
				return strings.TrimSpace(v), true
			}
		}
	}
	return "", false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
