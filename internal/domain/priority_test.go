package domain

import (
	"testing"
)

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Priority
		wantErr bool
	}{
		{
			name:    "valid high",
			value:   "high",
			want:    PriorityHigh,
			wantErr: false,
		},
		{
			name:    "valid medium",
			value:   "medium",
			want:    PriorityMedium,
			wantErr: false,
		},
		{
			name:    "valid low",
			value:   "low",
			want:    PriorityLow,
			wantErr: false,
		},
		{
			name:    "invalid uppercase",
			value:   "HIGH",
			wantErr: true,
		},
		{
			name:    "invalid empty",
			value:   "",
			wantErr: true,
		},
		{
			name:    "invalid legacy P0",
			value:   "P0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriority(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPriority() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NewPriority() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriority_Comparison(t *testing.T) {
	if !PriorityHigh.IsHigherThan(PriorityMedium) {
		t.Error("high should be higher than medium")
	}
	if !PriorityLow.IsLowerThan(PriorityMedium) {
		t.Error("low should be lower than medium")
	}
	if PriorityMedium.IsHigherThan(PriorityMedium) {
		t.Error("medium should not be higher than itself")
	}
}

func TestPriority_Next(t *testing.T) {
	tests := []struct {
		from Priority
		want Priority
	}{
		{PriorityHigh, PriorityMedium},
		{PriorityMedium, PriorityLow},
		{PriorityLow, PriorityHigh},
		{Priority(""), PriorityHigh},
	}

	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func TestPriorityAt(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []Priority
	}{
		{
			name: "single item is high",
			n:    1,
			want: []Priority{PriorityHigh},
		},
		{
			name: "ten items split 3/4/3",
			n:    10,
			want: []Priority{
				PriorityHigh, PriorityHigh, PriorityHigh,
				PriorityMedium, PriorityMedium, PriorityMedium, PriorityMedium,
				PriorityLow, PriorityLow, PriorityLow,
			},
		},
		{
			name: "three items have no low",
			n:    3,
			want: []Priority{PriorityHigh, PriorityMedium, PriorityMedium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.n; i++ {
				if got := PriorityAt(i, tt.n); got != tt.want[i] {
					t.Errorf("PriorityAt(%d, %d) = %q, want %q", i, tt.n, got, tt.want[i])
				}
			}
		})
	}
}
