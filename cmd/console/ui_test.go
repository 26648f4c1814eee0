package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

func testMapData() *worldmap.MapData {
	return &worldmap.MapData{
		Nodes: []worldmap.MapNode{
			{ID: "region", Name: "Westmarch", NodeType: worldmap.NodeTypeRegion},
			{ID: "glen", Name: "Briar Glen", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region", Status: "current"},
			{ID: "thorn", Name: "Thornfield", NodeType: worldmap.NodeTypeLocation, ParentNodeID: "region"},
		},
		Edges: []worldmap.MapEdge{
			{ID: "e1", SourceNodeID: "glen", TargetNodeID: "thorn", Data: worldmap.EdgeData{Type: worldmap.EdgeTypePath}},
		},
	}
}

func resized(t *testing.T, ui ConsoleUI) ConsoleUI {
	t.Helper()
	model, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(ConsoleUI)
}

func TestConsoleUI_ViewBeforeResize(t *testing.T) {
	ui := NewConsoleUI(testMapData(), layout.DefaultConfig(), nil)
	if v := ui.View(); !strings.Contains(v, "Loading") {
		t.Errorf("Expected loading placeholder before first resize, got %q", v)
	}
}

func TestConsoleUI_RendersAfterResize(t *testing.T) {
	ui := resized(t, NewConsoleUI(testMapData(), layout.DefaultConfig(), nil))
	v := ui.View()
	if strings.Contains(v, "Loading") {
		t.Error("Expected map render after resize")
	}
	if !strings.Contains(v, "WORLD MAP") {
		t.Error("Expected metadata panel in render")
	}
}

func TestConsoleUI_StartsAtCurrentNode(t *testing.T) {
	ui := NewConsoleUI(testMapData(), layout.DefaultConfig(), nil)
	if ui.currentNodeID != "glen" {
		t.Errorf("Expected start at node marked current, got %q", ui.currentNodeID)
	}
}

func TestConsoleUI_SelectTogglesDestination(t *testing.T) {
	ui := resized(t, NewConsoleUI(testMapData(), layout.DefaultConfig(), nil))

	ui.selectNode("thorn")
	if ui.destinationID != "thorn" {
		t.Fatalf("Expected destination thorn, got %q", ui.destinationID)
	}
	if len(ui.route) != 1 || ui.route[0].NodeID != "thorn" {
		t.Errorf("Expected a 1-step route, got %+v", ui.route)
	}

	ui.selectNode("thorn")
	if ui.destinationID != "" || ui.route != nil {
		t.Error("Expected re-selecting the destination to clear it")
	}
}

func TestConsoleUI_EscClearsDestination(t *testing.T) {
	ui := resized(t, NewConsoleUI(testMapData(), layout.DefaultConfig(), nil))
	ui.selectNode("thorn")

	model, _ := ui.Update(tea.KeyMsg{Type: tea.KeyEsc})
	ui = model.(ConsoleUI)
	if ui.destinationID != "" || ui.route != nil {
		t.Error("Expected esc to clear destination and route")
	}
}

func TestConsoleUI_TravelMovesPlayer(t *testing.T) {
	ui := resized(t, NewConsoleUI(testMapData(), layout.DefaultConfig(), nil))
	ui.selectNode("thorn")

	model, _ := ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	ui = model.(ConsoleUI)
	if ui.currentNodeID != "thorn" {
		t.Errorf("Expected player at thorn after travel, got %q", ui.currentNodeID)
	}
	if ui.destinationID != "" {
		t.Error("Expected destination cleared after arriving")
	}
}
