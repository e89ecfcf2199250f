// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	buzzSampleRate = beep.SampleRate(44100)
	buzzFrequency  = 180
)

// Buzzer is a floating.Vibrator playing a short low tone on the
// speaker in place of a haptic cue.
type Buzzer struct {
	rate beep.SampleRate
}

// NewBuzzer initializes the speaker.
func NewBuzzer() (*Buzzer, error) {
	b := &Buzzer{rate: buzzSampleRate}
	if err := speaker.Init(b.rate, b.rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("app: init speaker: %w", err)
	}
	return b, nil
}

// Vibrate implements floating.Vibrator.
func (b *Buzzer) Vibrate(d time.Duration) {
	s, err := b.tone(d)
	if err != nil {
		log.Printf("app: buzz: %v", err)
		return
	}
	speaker.Play(s)
}

func (b *Buzzer) tone(d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(b.rate, buzzFrequency)
	if err != nil {
		return nil, err
	}
	return beep.Take(b.rate.N(d), sine), nil
}

// Close releases the speaker.
func (b *Buzzer) Close() {
	speaker.Close()
}
