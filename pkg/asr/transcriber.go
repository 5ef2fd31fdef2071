package asr

import "context"

// Transcriber turns an uploaded audio file into a speaker-tagged
// dialogue transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
