package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

func testDatasets() []dataset.Dataset {
	return []dataset.Dataset{
		{Name: "states", Description: "relay only"},
		{Name: "license-age", Chart: scene.ChartStacked},
		{Name: "license-overlap", Chart: scene.ChartUpSet},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DatasetListModel, keys ...string) DatasetListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(DatasetListModel)
	}
	return m
}

func TestDatasetListStartsOnChart(t *testing.T) {
	m := NewDatasetListModel(testDatasets())
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1 (first chart dataset)", m.Cursor)
	}
}

func TestDatasetListSelect(t *testing.T) {
	m := press(NewDatasetListModel(testDatasets()), "down", "enter")
	if m.Selected == nil || m.Selected.Name != "license-overlap" {
		t.Fatalf("Selected = %+v, want license-overlap", m.Selected)
	}
}

func TestDatasetListSkipsRelayOnly(t *testing.T) {
	m := press(NewDatasetListModel(testDatasets()), "k", "enter")
	if m.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0", m.Cursor)
	}
	if m.Selected != nil {
		t.Errorf("relay-only dataset %q should not be selectable", m.Selected.Name)
	}
}

func TestDatasetListBounds(t *testing.T) {
	m := press(NewDatasetListModel(testDatasets()), "down", "down", "down", "j")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
	m = press(m, "up", "up", "up", "up")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestDatasetListScrolls(t *testing.T) {
	m := NewDatasetListModel(testDatasets())
	next, _ := m.Update(tea.WindowSizeMsg{Height: 4})
	m = next.(DatasetListModel)
	if m.Height != 3 {
		t.Fatalf("Height = %d, want minimum 3", m.Height)
	}
	m.Height = 1
	m = press(m, "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
}

func TestDatasetListQuit(t *testing.T) {
	_, cmd := NewDatasetListModel(testDatasets()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q returned %T, want tea.QuitMsg", cmd())
	}
}

func TestDatasetListView(t *testing.T) {
	view := NewDatasetListModel(testDatasets()).View()
	for _, want := range []string{"Select Dataset", "license-age", "upset", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() lacks %q", want)
		}
	}
}
