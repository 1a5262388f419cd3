package query

import (
	"math"
	"testing"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/order"
)

func TestNew_Defaults(t *testing.T) {
	m := New()
	if m.Text() != "" || m.Zip() != "" {
		t.Errorf("Text/Zip = %q/%q, want empty", m.Text(), m.Zip())
	}
	if m.Radius() != DefaultRadiusMiles {
		t.Errorf("Radius() = %v, want %v", m.Radius(), DefaultRadiusMiles)
	}
	if m.Sort() != order.Relevance {
		t.Errorf("Sort() = %q, want relevance", m.Sort())
	}
	if m.Page() != 1 {
		t.Errorf("Page() = %d, want 1", m.Page())
	}
	if m.PageSize() != 12 {
		t.Errorf("PageSize() = %d, want 12", m.PageSize())
	}
	if !m.Causes().IsEmpty() {
		t.Errorf("Causes() = %v, want empty", m.Causes().Values())
	}
}

func TestZeroValue_ReportsDefaults(t *testing.T) {
	var m Model
	if m.Sort() != order.Relevance {
		t.Errorf("Sort() = %q", m.Sort())
	}
	if m.Page() != 1 {
		t.Errorf("Page() = %d", m.Page())
	}
	if m.Radius() != DefaultRadiusMiles {
		t.Errorf("Radius() = %v, want %v", m.Radius(), DefaultRadiusMiles)
	}

	m.SetRadius(0)
	if m.Radius() != 0 {
		t.Errorf("after SetRadius(0): Radius() = %v, want 0", m.Radius())
	}
	m.SetRadiusText(" ")
	if m.Radius() != DefaultRadiusMiles {
		t.Errorf("after blank SetRadiusText: Radius() = %v, want default", m.Radius())
	}
}

func TestToggleCause_Twice(t *testing.T) {
	m := New()
	m.ToggleCause("veterans")
	before := m.Causes()
	m.ToggleCause("housing")
	m.ToggleCause("housing")
	if !m.Causes().Equal(before) {
		t.Errorf("Causes() = %v, want %v", m.Causes().Values(), before.Values())
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	m := New()
	m.SetText("housing")
	m.ToggleCause("housing")

	snap := m
	m.SetText("youth")
	m.ToggleCause("youth")
	m.ToggleCause("housing")

	if snap.Text() != "housing" {
		t.Errorf("snapshot text = %q", snap.Text())
	}
	if !snap.Causes().Contains("housing") || snap.Causes().Contains("youth") {
		t.Errorf("snapshot causes = %v", snap.Causes().Values())
	}
}

func TestSetRadiusText(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{"25", 25, false},
		{" 2.5 ", 2.5, false},
		{"", DefaultRadiusMiles, false},
		{"ten", 0, true},
	}
	for _, tc := range tests {
		m := New()
		m.SetRadiusText(tc.in)
		if tc.nan {
			if !math.IsNaN(m.Radius()) {
				t.Errorf("SetRadiusText(%q): Radius() = %v, want NaN", tc.in, m.Radius())
			}
			continue
		}
		if m.Radius() != tc.want {
			t.Errorf("SetRadiusText(%q): Radius() = %v, want %v", tc.in, m.Radius(), tc.want)
		}
	}
}

func TestSetSort_Unknown(t *testing.T) {
	m := New()
	m.SetSort(order.Distance)
	if m.Sort() != order.Distance {
		t.Errorf("Sort() = %q", m.Sort())
	}
	m.SetSort("cheapest")
	if m.Sort() != order.Relevance {
		t.Errorf("Sort() = %q, want relevance", m.Sort())
	}
}

func TestSetPage_Clamp(t *testing.T) {
	m := New()
	m.SetPage(3)
	if m.Page() != 3 {
		t.Errorf("Page() = %d", m.Page())
	}
	m.SetPage(0)
	if m.Page() != 1 {
		t.Errorf("Page() = %d, want 1", m.Page())
	}
	m.SetPage(-4)
	if m.Page() != 1 {
		t.Errorf("Page() = %d, want 1", m.Page())
	}
}
