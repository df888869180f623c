package upscale

import "time"

// Fade interpolates the composite alpha linearly between two values.
type Fade struct {
	from, to uint8
	duration time.Duration
	elapsed  time.Duration
}

func FadeIn(duration time.Duration) *Fade {
	return &Fade{from: 0, to: 255, duration: duration}
}

func FadeOut(duration time.Duration) *Fade {
	return &Fade{from: 255, to: 0, duration: duration}
}

// Step advances the fade and returns the alpha for the current frame. Once
// done is true the returned alpha is exactly the end value.
func (f *Fade) Step(elapsed time.Duration) (alpha uint8, done bool) {
	f.elapsed += elapsed
	if f.duration <= 0 || f.elapsed >= f.duration {
		return f.to, true
	}

	progress := float64(f.elapsed) / float64(f.duration)
	value := float64(f.from) + (float64(f.to)-float64(f.from))*progress
	return uint8(value + 0.5), false
}

// Apply steps the fade and sets the result on buf.
func (f *Fade) Apply(buf *UpscalingBuffer, elapsed time.Duration) (done bool) {
	alpha, done := f.Step(elapsed)
	buf.SetAlphaMod(alpha)
	return done
}
