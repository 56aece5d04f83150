package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "00:05", want: "5 0 * * *"},
		{in: "23:59", want: "59 23 * * *"},
		{in: "07:30", want: "30 7 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleDaily_RejectsBadTime(t *testing.T) {
	s := New(time.UTC)
	_, err := s.ScheduleDaily("25:00", func() {})
	assert.Error(t, err)
}
