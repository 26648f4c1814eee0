package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/map-engine/internal/config"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <map.json> [items.json]\n", os.Args[0])
		os.Exit(1)
	}

	data, err := loadMapFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load map: %v\n", err)
		os.Exit(1)
	}

	// Optional item placements, id -> item names. Drives icon overlays only.
	items := map[string][]string{}
	if len(os.Args) > 2 {
		if err := loadJSONFile(os.Args[2], &items); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load items: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := config.Load()
	ui := NewConsoleUI(data, cfg.Layout, func(nodeID string) bool {
		return len(items[nodeID]) > 0
	})

	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running map viewer: %v\n", err)
		os.Exit(1)
	}
}

func loadMapFile(path string) (*worldmap.MapData, error) {
	if !strings.HasSuffix(path, ".json") {
		return nil, fmt.Errorf("map file must have .json extension: %s", path)
	}
	var m worldmap.MapData
	if err := loadJSONFile(path, &m); err != nil {
		return nil, err
	}
	if len(m.Nodes) == 0 {
		return nil, fmt.Errorf("map file %s has no nodes", path)
	}
	return &m, nil
}

func loadJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
