package audio

import "testing"

func TestMediaFileDetection(t *testing.T) {
	tests := []struct {
		path    string
		isVideo bool
		isAudio bool
	}{
		{"clip.mp4", true, false},
		{"clip.MKV", true, false},
		{"song.mp3", false, true},
		{"song.FLAC", false, true},
		{"notes.txt", false, false},
		{"noext", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsVideoFile(tt.path); got != tt.isVideo {
				t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.isVideo)
			}
			if got := IsAudioFile(tt.path); got != tt.isAudio {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.isAudio)
			}
			if got := IsMediaFile(tt.path); got != (tt.isVideo || tt.isAudio) {
				t.Errorf("IsMediaFile(%q) = %v", tt.path, got)
			}
		})
	}
}

func TestDefaultExtractOptions(t *testing.T) {
	opts := DefaultExtractOptions()
	if opts.Format != "mp3" || opts.SampleRate != 16000 || opts.Channels != 1 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}
