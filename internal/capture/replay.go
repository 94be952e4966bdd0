package capture

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// LoadSession reads a capture session previously written by Save.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &s, nil
}

// FrameHandler receives each replayed frame in session order.
type FrameHandler func(frame Frame)

// Replayer replays a captured Session's frames at a configurable
// speed, preserving the original inter-frame timing.
type Replayer struct {
	Session      *Session
	Speed        float64 // 1.0 = real-time
	CurrentFrame int
}

// NewReplayer returns a Replayer over session at real-time speed.
func NewReplayer(session *Session) *Replayer {
	return &Replayer{Session: session, Speed: 1.0}
}

// Play walks the session's frames in order, calling handler for each
// one after sleeping long enough to preserve the original timing
// scaled by Speed.
func (r *Replayer) Play(handler FrameHandler) error {
	if len(r.Session.Frames) == 0 {
		return fmt.Errorf("no frames to replay")
	}

	playbackStart := time.Now()
	sessionStart := r.Session.Frames[0].Timestamp

	for i, frame := range r.Session.Frames {
		r.CurrentFrame = i

		targetDelay := frame.Timestamp.Sub(sessionStart)
		actualDelay := time.Since(playbackStart)
		adjustedDelay := time.Duration(float64(targetDelay) / r.Speed)

		if actualDelay < adjustedDelay {
			time.Sleep(adjustedDelay - actualDelay)
		}

		handler(frame)
	}

	return nil
}

// SetSpeed changes the playback speed multiplier, falling back to
// real-time for a non-positive value.
func (r *Replayer) SetSpeed(speed float64) {
	if speed <= 0 {
		log.Printf("invalid replay speed %v, using 1.0", speed)
		r.Speed = 1.0
		return
	}
	r.Speed = speed
}

// JumpTo advances CurrentFrame to the first frame at or after t.
func (r *Replayer) JumpTo(t time.Time) error {
	for i, frame := range r.Session.Frames {
		if !frame.Timestamp.Before(t) {
			r.CurrentFrame = i
			return nil
		}
	}
	return fmt.Errorf("no frame at or after %s", t)
}

// GetProgress reports replay progress as a 0-1 fraction.
func (r *Replayer) GetProgress() float64 {
	if len(r.Session.Frames) == 0 {
		return 0
	}
	return float64(r.CurrentFrame) / float64(len(r.Session.Frames))
}
