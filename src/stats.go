package main

// frameStats counts frames and draw calls over windows of at least one
// second.
type frameStats struct {
	prevTimestamp float64
	frames        int
	drawCalls     int

	FPS           float64
	DrawsPerFrame float64
}

// update records one frame finished at currentTime (seconds) that issued
// drawCalls draw calls. It reports whether a new sample is available.
func (s *frameStats) update(currentTime float64, drawCalls int) bool {
	s.frames++
	s.drawCalls += drawCalls

	deltaTime := currentTime - s.prevTimestamp
	if deltaTime < 1 {
		return false
	}

	s.FPS = float64(s.frames) / deltaTime
	s.DrawsPerFrame = float64(s.drawCalls) / float64(s.frames)
	s.frames = 0
	s.drawCalls = 0
	s.prevTimestamp = currentTime
	return true
}
