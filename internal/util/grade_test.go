package util

import "testing"

func TestGradeLevel(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{6, 1},
		{7, 2},
		{10, 5},
		{17, 12},
		{18, 13},
		{25, 13},
		{99, 13},
	}

	for _, tt := range tests {
		if got := GradeLevel(tt.age); got != tt.want {
			t.Errorf("GradeLevel(%d) = %d, want %d", tt.age, got, tt.want)
		}
	}
}

func TestGradeLevelLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Preschool"},
		{1, "Kindergarten"},
		{2, "Grade 1"},
		{12, "Grade 11"},
		{13, "Grade 12"},
	}

	for _, tt := range tests {
		if got := GradeLevelLabel(tt.level); got != tt.want {
			t.Errorf("GradeLevelLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
