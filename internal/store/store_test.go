package store

import (
	"context"
	"strings"
	"testing"

	"github.com/isuruf/jumplab/internal/derive"
)

func runTransmission(t *testing.T) *derive.Result {
	t.Helper()

	problem, err := derive.NewRegistry().Get("transmission")
	if err != nil {
		t.Fatal(err)
	}
	result, err := derive.Run(context.Background(), problem)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	result := runTransmission(t)

	runID, err := st.Save(result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "transmission_") {
		t.Errorf("unexpected run id: %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.Problem != "transmission" {
		t.Errorf("problem = %s, want transmission", meta.Problem)
	}
	if meta.Coefficient != "k" {
		t.Errorf("coefficient = %s, want k", meta.Coefficient)
	}
	if meta.Target != "Dp(t)" {
		t.Errorf("target = %s, want Dp(t)", meta.Target)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	result := runTransmission(t)
	if _, err := st.Save(result); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Problem != "transmission" {
		t.Errorf("listed problem = %s", runs[0].Problem)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/jumplab-test")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadDerivationAndLaTeX(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	result := runTransmission(t)
	runID, err := st.Save(result)
	if err != nil {
		t.Fatal(err)
	}

	trace, err := st.LoadDerivation(runID)
	if err != nil {
		t.Fatalf("LoadDerivation failed: %v", err)
	}
	if !strings.Contains(trace, "interior representation") {
		t.Error("trace missing first step")
	}
	if !strings.Contains(trace, "coefficient of Dp(t)") {
		t.Error("trace missing coefficient step")
	}

	tex, err := st.LoadLaTeX(runID)
	if err != nil {
		t.Fatalf("LoadLaTeX failed: %v", err)
	}
	if !strings.Contains(tex, "\\mathrm{pv}") {
		t.Error("latex export missing principal-value rendering")
	}
}
