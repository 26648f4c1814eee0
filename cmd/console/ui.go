package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/map-engine/internal/relayout"
	"github.com/jwebster45206/map-engine/pkg/geometry"
	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/travel"
	vp "github.com/jwebster45206/map-engine/pkg/viewport"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

const (
	metaPanelWidth = 32
	baseViewWidth  = 1000.0
	baseViewHeight = 800.0
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	destinationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")). // yellow
				Bold(true)

	routeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var titleCaser = cases.Title(language.English)

// ConsoleUI is the BubbleTea model that runs the map viewer.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	data      *worldmap.MapData
	scheduler *relayout.Scheduler
	camera    *vp.Controller
	routes    *travel.Cache
	presence  worldmap.PresenceFunc

	metaViewport viewport.Model
	ready        bool
	width        int
	height       int

	cfg           layout.Config
	currentNodeID string
	destinationID string
	route         []travel.Step
	selectedID    string
	status        string

	dragging bool
}

// relayoutDoneMsg re-reads the scheduler snapshot after the debounce
// window has passed.
type relayoutDoneMsg struct{}

func NewConsoleUI(data *worldmap.MapData, cfg layout.Config, presence worldmap.PresenceFunc) ConsoleUI {
	clean := data.Sanitize(nil)

	metaVp := viewport.New(metaPanelWidth, 20)

	ui := ConsoleUI{
		data:      clean,
		scheduler: relayout.NewScheduler(clean, cfg, nil, nil),
		routes:    travel.NewCache(),
		presence:  presence,
		cfg:       cfg.Clamped(),

		metaViewport: metaVp,
	}
	ui.currentNodeID = startingNode(clean)
	return ui
}

// startingNode picks where the player begins: the node marked current,
// else the deepest first node, else the first root.
func startingNode(data *worldmap.MapData) string {
	for i := range data.Nodes {
		if data.Nodes[i].Status == "current" {
			return data.Nodes[i].ID
		}
	}
	best := ""
	bestDepth := -1
	for i := range data.Nodes {
		if d := data.Nodes[i].NodeType.Depth(); d > bestDepth && data.Nodes[i].NodeType != worldmap.NodeTypeFeature {
			best = data.Nodes[i].ID
			bestDepth = d
		}
	}
	if best != "" {
		return best
	}
	roots := data.Roots()
	if len(roots) > 0 {
		return roots[0]
	}
	return ""
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		mapW, mapH := m.mapPaneSize()
		if m.camera == nil {
			m.camera = vp.NewController(float64(mapW), float64(mapH), baseViewWidth, baseViewHeight, nil)
		} else {
			m.camera.SetScreenSize(float64(mapW), float64(mapH))
		}

		m.metaViewport.Width = metaPanelWidth - 2
		m.metaViewport.Height = m.height - 4
		m.writeMetadata()
		m.ready = true
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case relayoutDoneMsg:
		// Snapshot may have been rebuilt by the debounced relayout.
		m.writeMetadata()
		return m, nil
	}

	var cmd tea.Cmd
	m.metaViewport, cmd = m.metaViewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.camera == nil {
		return m, nil
	}
	p := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.camera.Wheel(p, -1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.camera.Wheel(p, 1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id := m.nodeAt(msg.X, msg.Y); id != "" {
			m.selectNode(id)
			return m, nil
		}
		m.dragging = m.camera.PointerDown(p, false)
	case tea.MouseActionMotion:
		if m.dragging {
			m.camera.PointerMove(p)
		}
	case tea.MouseActionRelease:
		m.camera.PointerUp()
		m.dragging = false
	}
	return m, nil
}

func (m *ConsoleUI) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.scheduler.Stop()
		return m, tea.Quit

	case "r":
		m.scheduler.Refresh()
		m.status = "Layout refreshed"
		m.writeMetadata()

	case "esc":
		m.destinationID = ""
		m.route = nil
		m.status = "Destination cleared"
		m.writeMetadata()

	case "g":
		// Travel: jump the player to the selected destination.
		if m.destinationID == "" {
			m.status = "No destination set"
			break
		}
		m.currentNodeID = m.destinationID
		m.destinationID = ""
		m.route = nil
		m.status = "Arrived at " + m.nodeName(m.currentNodeID)
		m.writeMetadata()

	case "c":
		if len(m.route) == 0 {
			m.status = "No route to copy"
			break
		}
		if err := clipboard.WriteAll(m.routeText()); err != nil {
			m.status = "Clipboard unavailable"
		} else {
			m.status = "Route copied to clipboard"
		}
		m.writeMetadata()

	case "[", "]":
		// Spread or tighten the layout; relayout is debounced so holding
		// the key settles into a single recompute.
		if msg.String() == "[" {
			m.cfg.IdealEdgeLength -= 10
		} else {
			m.cfg.IdealEdgeLength += 10
		}
		m.cfg = m.cfg.Clamped()
		m.scheduler.SetConfig(m.cfg)
		m.status = fmt.Sprintf("Edge length %.0f", m.cfg.IdealEdgeLength)
		m.writeMetadata()
		return m, tea.Tick(relayout.DebounceDelay+50*time.Millisecond, func(time.Time) tea.Msg {
			return relayoutDoneMsg{}
		})

	case "up", "down", "left", "right":
		m.panByKey(msg.String())

	case "+", "=":
		m.zoomAtCenter(-1)
	case "-":
		m.zoomAtCenter(1)
	}
	return *m, nil
}

func (m *ConsoleUI) panByKey(key string) {
	if m.camera == nil {
		return
	}
	mapW, mapH := m.mapPaneSize()
	center := geometry.Point{X: float64(mapW) / 2, Y: float64(mapH) / 2}
	step := geometry.Point{}
	switch key {
	case "up":
		step.Y = 2
	case "down":
		step.Y = -2
	case "left":
		step.X = 4
	case "right":
		step.X = -4
	}
	m.camera.PointerDown(center, false)
	m.camera.PointerMove(center.Add(step))
	m.camera.PointerUp()
}

func (m *ConsoleUI) zoomAtCenter(deltaY float64) {
	if m.camera == nil {
		return
	}
	mapW, mapH := m.mapPaneSize()
	m.camera.Wheel(geometry.Point{X: float64(mapW) / 2, Y: float64(mapH) / 2}, deltaY)
}

// selectNode toggles the destination: clicking the destination again
// clears it, clicking anything else re-routes.
func (m *ConsoleUI) selectNode(id string) {
	m.selectedID = id
	if id == m.destinationID {
		m.destinationID = ""
		m.route = nil
		m.status = "Destination cleared"
	} else {
		m.destinationID = id
		m.route = m.routes.FindPath(m.data, m.currentNodeID, m.destinationID)
		if m.route == nil {
			if m.currentNodeID == id || m.data.IsAncestor(id, m.currentNodeID) || m.data.IsAncestor(m.currentNodeID, id) {
				m.status = "Already here"
			} else {
				m.status = "No route"
			}
		} else {
			m.status = fmt.Sprintf("Route: %d step(s)", len(m.route))
		}
	}
	m.writeMetadata()
}

func (m *ConsoleUI) nodeName(id string) string {
	if n := m.data.Node(id); n != nil {
		return n.Name
	}
	return id
}

func (m *ConsoleUI) routeText() string {
	var b strings.Builder
	b.WriteString("Route from " + m.nodeName(m.currentNodeID) + ":\n")
	for i, s := range m.route {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m.nodeName(s.NodeID))
	}
	return b.String()
}

func (m *ConsoleUI) mapPaneSize() (int, int) {
	w := m.width - metaPanelWidth - 1
	if w < 10 {
		w = 10
	}
	h := m.height - 2
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("WORLD MAP") + "\n\n")

	content.WriteString("Current location:\n")
	content.WriteString(currentStyle.Render(m.nodeName(m.currentNodeID)) + "\n\n")

	if m.destinationID != "" {
		content.WriteString("Destination:\n")
		content.WriteString(destinationStyle.Render(m.nodeName(m.destinationID)) + "\n\n")
	}

	if len(m.route) > 0 {
		content.WriteString("Route:\n")
		for i, s := range m.route {
			content.WriteString(routeStyle.Render(fmt.Sprintf("%d. %s", i+1, m.nodeName(s.NodeID))) + "\n")
		}
		content.WriteString("\n")
	}

	if m.selectedID != "" {
		if n := m.data.Node(m.selectedID); n != nil {
			content.WriteString(separatorStyle.Render(strings.Repeat("─", metaPanelWidth-4)) + "\n")
			content.WriteString(titleStyle.Render(n.Name) + "\n")
			content.WriteString(titleCaser.String(string(n.NodeType)) + "\n")
			if n.Status != "" {
				content.WriteString("Status: " + n.Status + "\n")
			}
			if m.presence != nil && m.presence(n.ID) {
				content.WriteString(itemStyle.Render("Items present") + "\n")
			}
			if n.Description != "" {
				content.WriteString("\n" + wordwrap.String(n.Description, metaPanelWidth-4) + "\n")
			}
			content.WriteString("\n")
		}
	}

	content.WriteString(separatorStyle.Render(strings.Repeat("─", metaPanelWidth-4)) + "\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Click: Set destination\n")
	content.WriteString("• Esc: Clear destination\n")
	content.WriteString("• g: Travel there\n")
	content.WriteString("• Wheel / + -: Zoom\n")
	content.WriteString("• Drag / arrows: Pan\n")
	content.WriteString("• [ ]: Spacing, r: Relayout\n")
	content.WriteString("• c: Copy route, q: Quit\n")

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading map..."
	}

	mapPane := m.renderMap()
	metaPane := m.metaViewport.View()

	statusLine := statusStyle.Render(m.status)
	body := lipgloss.JoinHorizontal(lipgloss.Top, mapPane, " ", metaPane)
	return lipgloss.JoinVertical(lipgloss.Left, body, statusLine)
}
