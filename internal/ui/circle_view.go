package ui

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/cespare/xxhash/v2"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// drawOrder paints the outer ring first so inner nodes stay on top.
var drawOrder = []engine.Tier{engine.TierPeripheral, engine.TierSecondary, engine.TierPrimary}

var tierKeys = map[engine.Tier]string{
	engine.TierPrimary:    config.TKeyTierPrimary,
	engine.TierSecondary:  config.TKeyTierSecondary,
	engine.TierPeripheral: config.TKeyTierPeripheral,
}

// tierCaption is the localized ring caption, English when the key is missing.
func (app *CircleApp) tierCaption(t engine.Tier) string {
	return app.localize(tierKeys[t], nil, nil, t.Label())
}

// nodePlacement is the position of one friend, in view units from the center.
type nodePlacement struct {
	View engine.FriendView
	X, Y float32
}

// placeNodes spreads the friends of each tier evenly around its ring.
// The angle offset and radial jitter come from a hash of the friend id, so a
// friend keeps its spot across refreshes as long as its tier does not change.
func placeNodes(dash engine.Dashboard) []nodePlacement {
	byTier := make(map[engine.Tier][]engine.FriendView, len(drawOrder))
	for _, v := range dash.Friends {
		byTier[v.Tier] = append(byTier[v.Tier], v)
	}

	out := make([]nodePlacement, 0, len(dash.Friends))
	for _, tier := range drawOrder {
		ring := byTier[tier]
		for i, v := range ring {
			seed := xxhash.Sum64String(v.Friend.ID)
			offset := float64(int(seed%config.AngleJitterDegrees)-config.AngleJitterDegrees/2) * math.Pi / (config.DegreesPerTurn / 2)
			jitter := float64(int(seed%config.RadiusJitterUnits) - config.RadiusJitterUnits/2)

			angle := float64(i)/float64(len(ring))*2*math.Pi + offset
			r := float64(tier.Radius()) + jitter
			out = append(out, nodePlacement{
				View: v,
				X:    float32(math.Cos(angle) * r),
				Y:    float32(math.Sin(angle) * r),
			})
		}
	}
	return out
}

// viewItem is a canvas object anchored in view units: (X, Y) is its top-left
// corner relative to the center of the view.
type viewItem struct {
	obj  fyne.CanvasObject
	x, y float32
	w, h float32
}

// circleLayout keeps the view at its native size, centered in the space it is given.
type circleLayout struct {
	items []viewItem
}

func (l *circleLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(config.CircleViewSize, config.CircleViewSize)
}

func (l *circleLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	cx, cy := size.Width/2, size.Height/2
	for _, it := range l.items {
		it.obj.Move(fyne.NewPos(cx+it.x, cy+it.y))
		it.obj.Resize(fyne.NewSize(it.w, it.h))
	}
}

func (l *circleLayout) add(obj fyne.CanvasObject, x, y, w, h float32) {
	l.items = append(l.items, viewItem{obj: obj, x: x, y: y, w: w, h: h})
}

// newCircleView draws the three recency rings and one node per friend.
func (app *CircleApp) newCircleView(dash engine.Dashboard) fyne.CanvasObject {
	l := &circleLayout{}

	for _, tier := range drawOrder {
		r := tier.Radius()
		accent := mustParseHexColor(tier.Color())

		ring := canvas.NewCircle(withAlpha(accent, 0x14))
		ring.StrokeColor = withAlpha(accent, 0x33)
		ring.StrokeWidth = config.RingStrokeWidth
		l.add(ring, -r, -r, 2*r, 2*r)

		label := canvas.NewText(app.tierCaption(tier), mustParseHexColor(config.ColorRingLabel))
		label.TextSize = config.RingLabelSize
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Alignment = fyne.TextAlignCenter
		l.add(label, -r, -r-2*config.RingLabelSize, 2*r, config.RingLabelSize)
	}

	for _, p := range placeNodes(dash) {
		fill := mustParseHexColor(config.ColorNodeFill)
		stroke := mustParseHexColor(p.View.Tier.Color())
		textColor := mustParseHexColor(config.ColorPeripheral)
		if p.View.Drift.IsDrifting {
			fill, stroke, textColor = mustParseHexColor(config.ColorDrifting), mustParseHexColor(config.ColorNodeFill), fill
		}

		node := canvas.NewCircle(fill)
		node.StrokeColor = stroke
		node.StrokeWidth = config.NodeStrokeWidth
		l.add(node, p.X-config.NodeRadius, p.Y-config.NodeRadius, 2*config.NodeRadius, 2*config.NodeRadius)

		initials := canvas.NewText(p.View.Initials, textColor)
		initials.TextSize = config.NodeLabelSize
		initials.TextStyle = fyne.TextStyle{Bold: true}
		initials.Alignment = fyne.TextAlignCenter
		l.add(initials, p.X-config.NodeRadius, p.Y-config.NodeLabelSize/2, 2*config.NodeRadius, config.NodeLabelSize)
	}

	center := canvas.NewText(app.localize(config.TKeyLblYou, nil, nil, config.CenterLabel), mustParseHexColor(config.ColorPeripheral))
	center.TextSize = config.CenterLabelSize
	center.TextStyle = fyne.TextStyle{Bold: true}
	center.Alignment = fyne.TextAlignCenter
	l.add(center, -config.RadiusPrimary/2, -config.CenterLabelSize/2, config.RadiusPrimary, config.CenterLabelSize)

	objects := make([]fyne.CanvasObject, 0, len(l.items))
	for _, it := range l.items {
		objects = append(objects, it.obj)
	}
	return container.New(l, objects...)
}

// parseHexColor parses a #RRGGBB color.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// mustParseHexColor is parseHexColor for the palette constants.
func mustParseHexColor(s string) color.NRGBA {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
