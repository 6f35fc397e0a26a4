package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"vietnamese sunny", "Trời nắng gay gắt", CodeSunny},
		{"english clear", "Clear sky", CodeSunny},
		{"vietnamese rain", "Mưa rào và dông", CodeRainy},
		{"english rain", "Light rain", CodeRainy},
		{"vietnamese cloudy", "Nhiều mây", CodeCloudy},
		{"english cloudy", "Partly cloudy", CodeCloudy},
		{"vietnamese fog", "Sương mù dày đặc", CodeFoggy},
		{"no keyword", "Thời tiết ổn định", CodePartlyCloudy},
		{"empty", "", CodePartlyCloudy},
		// Rules are ordered: sun beats rain when both appear.
		{"mixed keywords", "Nắng sau có mưa", CodeSunny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConditionCode(tt.text))
		})
	}
}

func TestConditionIcon(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cover float64
		want  string
	}{
		{"sunny", "Trời nắng", 0, "☀️"},
		{"rain", "Mưa rào", 90, "🌧️"},
		{"cloudy below threshold", "Ít mây", 30, "⛅"},
		{"cloudy above threshold", "Nhiều mây", 80, "☁️"},
		{"fog", "Sương mù", 50, "🌫️"},
		{"no keyword", "Bình thường", 0, "🌤️"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConditionIcon(tt.text, tt.cover))
		})
	}
}
