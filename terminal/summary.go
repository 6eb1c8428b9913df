package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/highscore"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/service"
	"github.com/rivo/tview"
)

// SummaryLine is the one-line run report copied to the clipboard
func SummaryLine(st event.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "oncoarena: score %d, level %d, %d kills, survived %s",
		st.Score, st.Level, st.EnemiesKilled, clock(time.Duration(st.SurvivalSeconds)*time.Second))
	if len(st.BossNames) > 0 {
		fmt.Fprintf(&b, ", bosses: %s", strings.Join(st.BossNames, ", "))
	}
	return b.String()
}

// SummaryView is the post-run screen: stats, name entry and the top-10 table
type SummaryView struct {
	app    *tview.Application
	root   *tview.Flex
	form   *tview.Form
	table  *tview.Table
	status *tview.TextView

	stats     event.Stats
	store     service.ScoreStore
	name      string
	qualifies bool
	submitted bool
	again     bool

	copy func(string) error
}

// NewSummaryView builds the widgets; store may be nil to skip the table
func NewSummaryView(stats event.Stats, store service.ScoreStore, name string) *SummaryView {
	v := &SummaryView{
		app:   tview.NewApplication(),
		stats: stats,
		store: store,
		name:  highscore.SanitizeName(name),
		copy:  clipboard.WriteAll,
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), parameter.HighScoreHTTPTimeout)
		v.qualifies, _ = store.Qualifies(ctx, stats.Score)
		cancel()
	}
	v.build()
	v.refreshTable()
	return v
}

func (v *SummaryView) build() {
	report := tview.NewTextView().SetDynamicColors(true)
	report.SetBorder(true).SetTitle(" Run over ")
	fmt.Fprintf(report, "[gold]Score[-]   %d\n[gold]Level[-]   %d\n[gold]Kills[-]   %d\n[gold]Time[-]    %s\n",
		v.stats.Score, v.stats.Level, v.stats.EnemiesKilled,
		clock(time.Duration(v.stats.SurvivalSeconds)*time.Second))
	if len(v.stats.BossNames) > 0 {
		fmt.Fprintf(report, "[gold]Bosses[-]  %s\n", tview.Escape(strings.Join(v.stats.BossNames, ", ")))
	}
	fmt.Fprintf(report, "[gold]Damage[-]  %.0f dealt, %.0f taken\n", v.stats.DamageDealt, v.stats.DamageTaken)

	v.status = tview.NewTextView().SetDynamicColors(true)

	v.form = tview.NewForm()
	if v.qualifies {
		v.form.AddInputField("Name", v.name, parameter.HighScoreNameMax+2, nil, func(text string) {
			v.name = text
		})
		v.form.AddButton("Submit", v.submit)
		v.setStatus("[lime]New high score![-]")
	}
	v.form.AddButton("Copy", v.copySummary)
	v.form.AddButton("Play again", func() { v.again = true; v.app.Stop() })
	v.form.AddButton("Quit", v.app.Stop)
	v.form.SetBorder(true).SetTitle(" Record ")
	v.form.SetCancelFunc(v.app.Stop)

	v.table = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	v.table.SetBorder(true).SetTitle(" High scores ")

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(report, 0, 2, false).
		AddItem(v.form, 0, 2, true).
		AddItem(v.status, 1, 0, false)
	v.root = tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(v.table, 0, 1, false)
}

// Run shows the view on screen until the player leaves
// Returns true when they asked for another run; the screen is finalized on return
func (v *SummaryView) Run(screen tcell.Screen) (again bool, err error) {
	v.app.SetScreen(screen)
	v.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlC {
			v.app.Stop()
			return nil
		}
		return ev
	})
	if err := v.app.SetRoot(v.root, true).Run(); err != nil {
		return false, err
	}
	return v.again, nil
}

func (v *SummaryView) submit() {
	if v.submitted || v.store == nil {
		return
	}
	sc := service.ScoreFromStats(v.stats)
	sc.Name = v.name

	ctx, cancel := context.WithTimeout(context.Background(), parameter.HighScoreHTTPTimeout)
	defer cancel()
	rank, err := v.store.Submit(ctx, sc)
	switch {
	case errors.Is(err, highscore.ErrNotQualified):
		v.setStatus("[orange]Score no longer makes the table[-]")
		v.submitted = true
	case err != nil:
		v.setStatus(fmt.Sprintf("[red]Submit failed: %s[-]", tview.Escape(err.Error())))
	default:
		v.submitted = true
		if rank > 0 {
			v.setStatus(fmt.Sprintf("[lime]Recorded at #%d[-]", rank))
		} else {
			v.setStatus("[lime]Recorded[-]")
		}
		v.refreshTable()
	}
}

func (v *SummaryView) copySummary() {
	if err := v.copy(SummaryLine(v.stats)); err != nil {
		v.setStatus("[orange]Clipboard unavailable[-]")
		return
	}
	v.setStatus("Summary copied")
}

func (v *SummaryView) setStatus(text string) {
	v.status.SetText(" " + text)
}

func (v *SummaryView) refreshTable() {
	v.table.Clear()
	header := []string{"#", "Name", "Score", "Lv", "Kills", "Time"}
	for c, h := range header {
		v.table.SetCell(0, c, tview.NewTableCell(h).SetTextColor(tcell.ColorGold).SetSelectable(false))
	}
	if v.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), parameter.HighScoreHTTPTimeout)
	defer cancel()
	entries, err := v.store.Top(ctx)
	if err != nil {
		v.setStatus("[red]High scores unavailable[-]")
		return
	}
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			tview.Escape(e.Name),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Kills),
			clock(time.Duration(e.Survival) * time.Second),
		}
		for c, text := range row {
			cell := tview.NewTableCell(text)
			if c >= 2 {
				cell.SetAlign(tview.AlignRight)
			}
			v.table.SetCell(i+1, c, cell)
		}
	}
}
