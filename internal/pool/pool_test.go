package pool

import (
	"errors"
	"testing"

	"github.com/JieUpup/MRGC/internal/graph"
	"github.com/JieUpup/MRGC/internal/models"
)

func TestGenerate_SeedsPerIndex(t *testing.T) {
	graphs, err := Generate(FamilyRandom, 4, 10, 3, 100)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(graphs) != 4 {
		t.Fatalf("len = %d, want 4", len(graphs))
	}
	for i, g := range graphs {
		want, err := graph.NewRandom(10, 3, int64(100+i))
		if err != nil {
			t.Fatalf("NewRandom: %v", err)
		}
		if !g.Equal(want) {
			t.Errorf("graph %d does not match NewRandom with seed %d", i, 100+i)
		}
	}
}

func TestGenerate_Fully(t *testing.T) {
	graphs, err := Generate(FamilyFully, 2, 6, 0, 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, g := range graphs {
		if g.NumEdges() != 15 {
			t.Errorf("graph %d has %d edges, want 15", i, g.NumEdges())
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		family   Family
		size     int
		agents   int
		maxEdges int
	}{
		{"unknown family", Family("ring"), 3, 10, 3},
		{"max edges too large", FamilyRandom, 3, 5, 5},
		{"negative size", FamilyFully, -1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graphs, err := Generate(tt.family, tt.size, tt.agents, tt.maxEdges, 0)
			if !errors.Is(err, models.ErrInvalidConfiguration) {
				t.Errorf("Generate() error = %v, want ErrInvalidConfiguration", err)
			}
			if graphs != nil {
				t.Errorf("Generate() returned %d graphs on error", len(graphs))
			}
		})
	}
}

func TestGenerate_UnknownFamilyWithZeroSize(t *testing.T) {
	if _, err := Generate(Family(""), 0, 10, 3, 0); !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for empty family, got %v", err)
	}
}

func TestEpisode(t *testing.T) {
	graphs, err := Generate(FamilyRandom, 3, 8, 2, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	g, err := Episode(FamilyRandom, 2, 8, 2, 5)
	if err != nil {
		t.Fatalf("Episode: %v", err)
	}
	if !g.Equal(graphs[2]) {
		t.Error("Episode(2) differs from Generate()[2]")
	}
}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		input   string
		want    Family
		wantErr bool
	}{
		{"random", FamilyRandom, false},
		{"fully", FamilyFully, false},
		{"complete", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFamily(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFamily(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFamily(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
