package service

import (
	"context"
	"time"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/pkg/logger"
)

// Speaker voices a reply. Calls are fire-and-forget from the caller's point of view.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// LogSpeaker records utterances in the log; the browser does the actual synthesis.
type LogSpeaker struct{}

func (LogSpeaker) Speak(_ context.Context, text string) error {
	logger.WithFields(logger.Fields{"chars": len(text)}).Debugf("speak: %s", text)
	return nil
}

type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, string) error { return nil }

func NewSpeaker(enabled bool) Speaker {
	if enabled {
		return LogSpeaker{}
	}
	return NopSpeaker{}
}

func DefaultSpeechOptions() *model.SpeechOptions {
	return &model.SpeechOptions{
		Rate:            0.9,
		Pitch:           1.1,
		Volume:          1.0,
		PreferredVoices: []string{"Female", "Samantha", "Karen", "Susan"},
	}
}

const speakTimeout = 30 * time.Second

// speakAsync detaches from the request context so a finished request does not cut speech short.
func speakAsync(speaker Speaker, text string) {
	if speaker == nil || text == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()

		if err := speaker.Speak(ctx, text); err != nil {
			logger.Warnf("Speech failed: %v", err)
		}
	}()
}
