package main

import "testing"

func TestFrameStats(t *testing.T) {
	var s frameStats

	for i := 1; i < 60; i++ {
		if s.update(float64(i)/60, 3) {
			t.Fatalf("sample after %d frames", i)
		}
	}
	if !s.update(1, 3) {
		t.Fatal("no sample after one second")
	}
	if s.FPS != 60 {
		t.Errorf("FPS = %v, want 60", s.FPS)
	}
	if s.DrawsPerFrame != 3 {
		t.Errorf("DrawsPerFrame = %v, want 3", s.DrawsPerFrame)
	}

	for i := 1; i <= 20; i++ {
		s.update(1+float64(i)/10, 5)
	}
	if s.FPS != 10 || s.DrawsPerFrame != 5 {
		t.Errorf("second sample = %v fps, %v draws; want 10, 5", s.FPS, s.DrawsPerFrame)
	}
}
