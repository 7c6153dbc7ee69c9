// Package ui is the ebiten display surface for the listings table. It is a
// thin view: all filter/sort rules live in internal/market, the refresh
// timer in internal/refresh. Everything that touches ViewState runs on the
// ebiten update goroutine; fetches run in a single in-flight goroutine and
// hand their result back over a channel.
package ui

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/benbjohnson/clock"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"github.com/temidaradev/esset/v2"

	"github.com/jerripat/CoinMarketCap/internal/cmc"
	"github.com/jerripat/CoinMarketCap/internal/config"
	"github.com/jerripat/CoinMarketCap/internal/format"
	"github.com/jerripat/CoinMarketCap/internal/market"
	"github.com/jerripat/CoinMarketCap/internal/refresh"
)

const (
	WindowWidth  = 1150
	WindowHeight = 640
)

var (
	colorBackground = color.RGBA{25, 25, 25, 255}
	colorPanel      = color.RGBA{50, 50, 50, 255}
	colorFocus      = color.RGBA{70, 70, 90, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorLabel      = color.RGBA{200, 200, 200, 255}
	colorPositive   = color.RGBA{0, 255, 0, 255}
	colorNegative   = color.RGBA{255, 0, 0, 255}
	colorNeutral    = color.RGBA{170, 170, 170, 255}
	colorError      = color.RGBA{255, 120, 120, 255}
)

type column struct {
	title      string
	key        market.SortKey
	width      float64
	alignRight bool
	render     func(market.CoinRecord) string
}

var columns = []column{
	{"Rank", market.SortByRank, 60, true, func(r market.CoinRecord) string { return format.Rank(r.Rank) }},
	{"Symbol", market.SortBySymbol, 80, false, func(r market.CoinRecord) string { return r.Symbol }},
	{"Name", market.SortByName, 190, false, func(r market.CoinRecord) string { return r.Name }},
	{"Price (USD)", market.SortByPrice, 130, true, func(r market.CoinRecord) string { return format.Price(r.PriceUSD) }},
	{"24h %", market.SortByPct24h, 90, true, func(r market.CoinRecord) string { return format.Percent(r.PctChange24h) }},
	{"7d %", market.SortByPct7d, 90, true, func(r market.CoinRecord) string { return format.Percent(r.PctChange7d) }},
	{"Market Cap", market.SortByMarketCap, 140, true, func(r market.CoinRecord) string { return format.Money(r.MarketCapUSD) }},
	{"Volume (24h)", market.SortByVolume, 140, true, func(r market.CoinRecord) string { return format.Money(r.Volume24hUSD) }},
	{"Last Updated", market.SortByUpdated, 170, false, func(r market.CoinRecord) string { return format.Timestamp(r.LastUpdated) }},
}

// textField is a minimal click-to-focus input box.
type textField struct {
	label   string
	value   string
	numeric bool
	width   float64 // logical
	onEdit  func(string)

	// hit box in physical pixels, refreshed every Draw
	x, y, w, h float64
}

func (f *textField) contains(mx, my int) bool {
	return float64(mx) >= f.x && float64(mx) < f.x+f.w &&
		float64(my) >= f.y && float64(my) < f.y+f.h
}

type button struct {
	label   string
	onClick func()

	x, y, w, h float64
}

func (b *button) contains(mx, my int) bool {
	return float64(mx) >= b.x && float64(mx) < b.x+b.w &&
		float64(my) >= b.y && float64(my) < b.y+b.h
}

type fetchResult struct {
	rows []market.CoinRecord
	err  error
}

// Game implements ebiten.Game for the listings viewer.
type Game struct {
	cfg    *config.Config
	client *cmc.Client
	state  *market.ViewState
	sched  *refresh.Scheduler

	searchField   *textField
	limitField    *textField
	intervalField *textField
	fields        []*textField
	focused       *textField
	buttons       []*button

	refreshReq chan struct{}
	results    chan fetchResult
	inFlight   atomic.Bool

	visible []market.CoinRecord
	dirty   bool

	status    string
	statusErr bool
	scroll    int

	fontFace    text.Face
	deviceScale float64
	lineHeight  float64

	headerHits []struct {
		x0, x1 float64
		key    market.SortKey
	}
	headerY, headerH float64
}

// New wires the viewer. The clock is injected so the scheduler stays
// testable; pass clock.New() in production.
func New(cfg *config.Config, client *cmc.Client, clk clock.Clock, face text.Face, deviceScale float64) *Game {
	g := &Game{
		cfg:         cfg,
		client:      client,
		state:       market.NewViewState(),
		refreshReq:  make(chan struct{}, 1),
		results:     make(chan fetchResult, 1),
		dirty:       true,
		fontFace:    face,
		deviceScale: deviceScale,
	}

	baseFontSize := 12.0
	g.lineHeight = baseFontSize*deviceScale*1.5 + 5.0*deviceScale

	// Timer fires only signal; the actual fetch starts on the update
	// goroutine so ViewState is never touched concurrently.
	g.sched = refresh.New(clk, func() {
		select {
		case g.refreshReq <- struct{}{}:
		default:
		}
	})

	g.searchField = &textField{label: "Search:", width: 240, onEdit: func(s string) {
		g.state.SetQuery(s)
		g.dirty = true
		g.scroll = 0
	}}
	g.limitField = &textField{label: "Limit:", value: strconv.Itoa(cfg.DefaultLimit), numeric: true, width: 70}
	g.intervalField = &textField{label: "Auto-refresh (ms):", value: strconv.Itoa(cfg.AutoRefreshMS), numeric: true, width: 90}
	g.fields = []*textField{g.limitField, g.searchField, g.intervalField}

	g.buttons = []*button{
		{label: "Refresh", onClick: g.requestRefresh},
		{label: "Apply", onClick: g.applyAutoRefresh},
	}

	g.applyAutoRefresh()
	g.requestRefresh()
	return g
}

// Scheduler exposes the refresh timer for shutdown.
func (g *Game) Scheduler() *refresh.Scheduler {
	return g.sched
}

// requestRefresh validates the limit box and starts one fetch. A refresh
// while a fetch is outstanding is dropped, keeping one request in flight.
func (g *Game) requestRefresh() {
	limit, err := strconv.Atoi(strings.TrimSpace(g.limitField.value))
	if err != nil || limit < 1 {
		g.setStatus("Limit must be a positive integer.", true)
		return
	}

	if !g.inFlight.CompareAndSwap(false, true) {
		return
	}

	go func() {
		rows, err := g.client.Listings(context.Background(), limit)
		g.results <- fetchResult{rows: rows, err: err}
		g.inFlight.Store(false)
	}()
}

// applyAutoRefresh re-arms the scheduler from the interval box. Unparsable
// input counts as 0 and disables auto-refresh.
func (g *Game) applyAutoRefresh() {
	ms, err := strconv.Atoi(strings.TrimSpace(g.intervalField.value))
	if err != nil {
		ms = 0
	}
	g.sched.Configure(time.Duration(ms) * time.Millisecond)
	if ms > 0 {
		g.setStatus(fmt.Sprintf("Auto-refresh every %d ms.", ms), false)
	} else {
		g.setStatus("Auto-refresh off.", false)
	}
}

func (g *Game) setStatus(msg string, isErr bool) {
	g.status = msg
	g.statusErr = isErr
	if isErr {
		logrus.Warn(msg)
	} else {
		logrus.Info(msg)
	}
}

func (g *Game) Update() error {
	// Fetch results first so this frame renders fresh data.
	select {
	case res := <-g.results:
		if res.err != nil {
			// All fetch failures surface here and leave the table empty.
			g.setStatus("Refresh failed: "+res.err.Error(), true)
			g.state.SetRows(nil)
		} else {
			g.state.SetRows(res.rows)
			g.setStatus(fmt.Sprintf("Fetched %d coins at %s.", len(res.rows), time.Now().Format("15:04:05")), false)
		}
		g.dirty = true
	default:
	}

	select {
	case <-g.refreshReq:
		g.requestRefresh()
	default:
	}

	g.handleMouse()
	g.handleKeyboard()

	if g.dirty {
		g.visible = g.state.Visible()
		g.clampScroll()
		g.dirty = false
	}
	return nil
}

func (g *Game) handleMouse() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.scroll -= int(wy) * 3
		g.clampScroll()
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()

	for _, f := range g.fields {
		if f.contains(mx, my) {
			g.focused = f
			return
		}
	}
	for _, b := range g.buttons {
		if b.contains(mx, my) {
			g.focused = nil
			b.onClick()
			return
		}
	}

	// Column header click: toggle rule lives in ViewState.
	if float64(my) >= g.headerY && float64(my) < g.headerY+g.headerH {
		for _, h := range g.headerHits {
			if float64(mx) >= h.x0 && float64(mx) < h.x1 {
				g.state.SortBy(h.key)
				g.dirty = true
				return
			}
		}
	}
	g.focused = nil
}

func (g *Game) handleKeyboard() {
	if g.focused == nil {
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if g.focused.numeric && !unicode.IsDigit(r) {
			continue
		}
		if unicode.IsPrint(r) {
			g.focused.value += string(r)
			g.focused.edited()
		}
	}

	if repeated(ebiten.KeyBackspace) && g.focused.value != "" {
		g.focused.value = g.focused.value[:len(g.focused.value)-len(lastRune(g.focused.value))]
		g.focused.edited()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch g.focused {
		case g.limitField:
			g.requestRefresh()
		case g.intervalField:
			g.applyAutoRefresh()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.focused = nil
	}
}

func (f *textField) edited() {
	if f.onEdit != nil {
		f.onEdit(f.value)
	}
}

// repeated reports a key press with simple hold-to-repeat.
func repeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 20 && d%3 == 0)
}

func lastRune(s string) string {
	rs := []rune(s)
	return string(rs[len(rs)-1])
}

func (g *Game) clampScroll() {
	max := len(g.visible) - 1
	if max < 0 {
		max = 0
	}
	if g.scroll > max {
		g.scroll = max
	}
	if g.scroll < 0 {
		g.scroll = 0
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	pad := 8.0 * g.deviceScale
	x := pad
	y := pad

	// --- Controls row ---
	for i, f := range g.fields {
		x = g.drawField(screen, f, x, y)
		if i == 0 {
			x = g.drawButton(screen, g.buttons[0], x+6.0*g.deviceScale, y)
		}
		x += 14.0 * g.deviceScale
	}
	g.drawButton(screen, g.buttons[1], x, y)

	y += g.lineHeight + pad

	// --- Header row ---
	g.headerY = y
	g.headerH = g.lineHeight
	g.headerHits = g.headerHits[:0]
	cx := pad
	for _, col := range columns {
		w := col.width * g.deviceScale
		title := col.title
		if col.key == g.state.SortKey {
			if g.state.SortDescending {
				title += " v"
			} else {
				title += " ^"
			}
		}
		esset.DrawText(screen, title, 0, cx, y, g.fontFace, colorLabel)
		g.headerHits = append(g.headerHits, struct {
			x0, x1 float64
			key    market.SortKey
		}{cx, cx + w, col.key})
		cx += w
	}
	y += g.lineHeight
	vector.StrokeLine(screen, float32(pad), float32(y), float32(float64(sw)-pad), float32(y), 1, colorPanel, false)
	y += 4.0 * g.deviceScale

	// --- Rows ---
	statusH := g.lineHeight + pad
	maxRows := int((float64(sh) - y - statusH) / g.lineHeight)
	if maxRows < 0 {
		maxRows = 0
	}
	end := g.scroll + maxRows
	if end > len(g.visible) {
		end = len(g.visible)
	}
	for _, rec := range g.visible[g.scroll:end] {
		rowColor := colorText
		switch market.Change(rec) {
		case market.ChangePositive:
			rowColor = colorPositive
		case market.ChangeNegative:
			rowColor = colorNegative
		default:
			rowColor = colorNeutral
		}

		cx = pad
		for _, col := range columns {
			w := col.width * g.deviceScale
			cell := col.render(rec)
			dx := cx
			if col.alignRight {
				tw, _ := text.Measure(cell, g.fontFace, -1)
				dx = cx + w - tw - 8.0*g.deviceScale
			}
			esset.DrawText(screen, cell, 0, dx, y, g.fontFace, rowColor)
			cx += w
		}
		y += g.lineHeight
	}

	// --- Status line ---
	statusColor := colorLabel
	if g.statusErr {
		statusColor = colorError
	}
	esset.DrawText(screen, g.status, 0, pad, float64(sh)-statusH+2.0*g.deviceScale, g.fontFace, statusColor)
}

func (g *Game) drawField(screen *ebiten.Image, f *textField, x, y float64) float64 {
	esset.DrawText(screen, f.label, 0, x, y, g.fontFace, colorLabel)
	lw, _ := text.Measure(f.label, g.fontFace, -1)
	x += lw + 6.0*g.deviceScale

	f.x, f.y = x, y
	f.w, f.h = f.width*g.deviceScale, g.lineHeight

	boxColor := colorPanel
	if g.focused == f {
		boxColor = colorFocus
	}
	vector.DrawFilledRect(screen, float32(f.x), float32(f.y), float32(f.w), float32(f.h), boxColor, false)

	shown := f.value
	if g.focused == f {
		shown += "_"
	}
	esset.DrawText(screen, shown, 0, f.x+4.0*g.deviceScale, y, g.fontFace, colorText)
	return x + f.w
}

func (g *Game) drawButton(screen *ebiten.Image, b *button, x, y float64) float64 {
	tw, _ := text.Measure(b.label, g.fontFace, -1)
	b.x, b.y = x, y
	b.w, b.h = tw+16.0*g.deviceScale, g.lineHeight

	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), colorPanel, false)
	esset.DrawText(screen, b.label, 0, x+8.0*g.deviceScale, y, g.fontFace, colorText)
	return x + b.w
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
