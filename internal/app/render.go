package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/nvshader/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/nvshader/internal/engine/prewarm"
	"go.trai.ch/nvshader/internal/engine/validator"
	"go.trai.ch/nvshader/internal/ui/output"
	"go.trai.ch/nvshader/internal/ui/style"
)

// renderer writes command results either as styled text or as JSON.
type renderer struct {
	w    io.Writer
	out  *termenv.Output
	json bool
	now  func() time.Time
}

func newRenderer(w io.Writer, mode detector.OutputMode, now func() time.Time) *renderer {
	return &renderer{
		w:    w,
		out:  output.NewWithProfile(w, detector.Profile(mode)),
		json: mode == detector.ModeJSON,
		now:  now,
	}
}

func (r *renderer) color(s string, c lipgloss.Color) string {
	return r.out.String(s).Foreground(style.Term(c)).String()
}

func (r *renderer) faint(s string) string {
	return r.out.String(s).Faint().String()
}

func (r *renderer) bold(s string) string {
	return r.out.String(s).Bold().String()
}

func (r *renderer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type typeView struct {
	Units int   `json:"units"`
	Bytes int64 `json:"bytes"`
}

type statsView struct {
	TotalBytes int64               `json:"total_bytes"`
	Units      int                 `json:"units"`
	Games      int                 `json:"games"`
	OldestDays int                 `json:"oldest_days"`
	NewestDays int                 `json:"newest_days"`
	Types      map[string]typeView `json:"types"`
}

// Stats prints the aggregate view with one row per cache type.
func (r *renderer) Stats(s domain.Stats) error {
	if r.json {
		v := statsView{
			TotalBytes: s.TotalSizeBytes,
			Units:      s.FileCount,
			Games:      s.GameCount,
			OldestDays: s.OldestDays,
			NewestDays: s.NewestDays,
			Types:      make(map[string]typeView, domain.NumCacheTypes),
		}
		for _, t := range domain.AllCacheTypes() {
			v.Types[t.String()] = typeView{Units: s.CountOf(t), Bytes: s.SizeOf(t)}
		}
		return r.encode(v)
	}

	r.line("%s %s in %d units across %d games",
		r.bold("Shader caches"),
		r.color(domain.FormatBytes(s.TotalSizeBytes), style.Green),
		s.FileCount, s.GameCount)
	r.line("")
	r.line("%s", r.faint("  "+style.Pad("TYPE", 11)+style.PadLeft("UNITS", 7)+
		style.PadLeft("SIZE", 12)+style.PadLeft("SHARE", 8)))
	for _, t := range domain.AllCacheTypes() {
		share := "-"
		if s.TotalSizeBytes > 0 {
			share = fmt.Sprintf("%.1f%%", float64(s.SizeOf(t))*100/float64(s.TotalSizeBytes))
		}
		r.line("  %s%s%s%s",
			style.Pad(t.String(), 11),
			style.PadLeft(fmt.Sprint(s.CountOf(t)), 7),
			style.PadLeft(domain.FormatBytes(s.SizeOf(t)), 12),
			style.PadLeft(share, 8))
	}
	if s.FileCount > 0 {
		r.line("")
		r.line("%s oldest %d days, newest %d days", r.faint(style.Dot), s.OldestDays, s.NewestDays)
	}
	return nil
}

// Entries prints one row per cache unit.
func (r *renderer) Entries(entries []domain.Entry) error {
	if r.json {
		if entries == nil {
			entries = []domain.Entry{}
		}
		return r.encode(entries)
	}

	if len(entries) == 0 {
		r.line("%s", r.faint("No cache units found."))
		return nil
	}

	now := r.now()
	for _, e := range entries {
		r.line("%s%s%s  %s  %s",
			style.Pad(e.Type.String(), 11),
			style.PadLeft(domain.FormatBytes(e.SizeBytes), 12),
			style.PadLeft(fmt.Sprintf("%dd", e.AgeDays(now)), 6),
			style.Pad(gameLabel(e), 24),
			r.faint(e.Path))
	}
	return nil
}

func gameLabel(e domain.Entry) string {
	switch {
	case e.GameName != "" && e.HasGame():
		return fmt.Sprintf("%s (%s)", e.GameName, e.GameID)
	case e.GameName != "":
		return e.GameName
	case e.HasGame():
		return e.GameID
	default:
		return "-"
	}
}

type evictionView struct {
	Policy     string   `json:"policy"`
	Removed    []string `json:"removed"`
	FreedBytes int64    `json:"freed_bytes"`
	Failures   []string `json:"failures,omitempty"`
}

// Eviction summarises what an eviction pass deleted.
func (r *renderer) Eviction(policy string, rep eviction.Report) error {
	if r.json {
		removed := rep.Removed
		if removed == nil {
			removed = []string{}
		}
		return r.encode(evictionView{
			Policy:     policy,
			Removed:    removed,
			FreedBytes: rep.FreedBytes,
			Failures:   messages(rep.Failures),
		})
	}

	for _, p := range rep.Removed {
		r.line("%s %s", r.color(style.Check, style.Green), r.faint(p))
	}
	for _, err := range rep.Failures {
		r.line("%s %s", r.color(style.Cross, style.Red), err.Error())
	}
	if rep.Count() == 0 && len(rep.Failures) == 0 {
		r.line("%s", r.faint("Nothing to remove."))
		return nil
	}
	r.line("Removed %d units, freed %s", rep.Count(), r.color(domain.FormatBytes(rep.FreedBytes), style.Green))
	return nil
}

type findingView struct {
	Path   string `json:"path"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type validationView struct {
	Checked  int           `json:"checked"`
	Invalid  int           `json:"invalid"`
	Findings []findingView `json:"findings"`
}

// Validation prints the units that failed their structural check.
func (r *renderer) Validation(rep validator.Report) error {
	if r.json {
		v := validationView{Checked: rep.Checked, Invalid: rep.InvalidCount(), Findings: []findingView{}}
		for _, f := range rep.Findings {
			v.Findings = append(v.Findings, findingView{Path: f.Path, Type: f.Type.String(), Reason: f.Reason.Error()})
		}
		return r.encode(v)
	}

	for _, f := range rep.Findings {
		r.line("%s %s %s", r.color(style.Warning, style.Yellow), style.Pad(f.Type.String(), 11), f.Path)
		r.line("    %s", r.faint(f.Reason.Error()))
	}
	if rep.InvalidCount() == 0 {
		r.line("%s %d units checked, all valid", r.color(style.Check, style.Green), rep.Checked)
		return nil
	}
	r.line("%d of %d units are invalid", rep.InvalidCount(), rep.Checked)
	return nil
}

type prewarmView struct {
	domain.PrewarmResult
	Games    map[string]domain.PrewarmResult `json:"games"`
	Failures []string                        `json:"failures,omitempty"`
}

// Prewarm prints the per-game outcome of a replay batch.
func (r *renderer) Prewarm(rep prewarm.Report) error {
	if r.json {
		games := rep.Games
		if games == nil {
			games = map[string]domain.PrewarmResult{}
		}
		return r.encode(prewarmView{PrewarmResult: rep.Result, Games: games, Failures: messages(rep.Failures)})
	}

	for _, id := range rep.GameIDs() {
		g := rep.Games[id]
		icon := r.color(style.Check, style.Green)
		if g.Failed > 0 {
			icon = r.color(style.Cross, style.Red)
		}
		r.line("%s %s %d/%d replayed", icon, style.Pad(id, 12), g.Completed, g.Total)
	}
	for _, err := range rep.Failures {
		r.line("    %s", r.faint(err.Error()))
	}
	res := rep.Result
	r.line("Prewarm: %d completed, %d failed, %d skipped of %d", res.Completed, res.Failed, res.Skipped, res.Total)
	return nil
}

// Info describes the host and the resolved configuration.
type Info struct {
	Version    string                 `json:"version"`
	NVIDIAGPU  bool                   `json:"nvidia_gpu"`
	Prewarm    bool                   `json:"prewarm_available"`
	ConfigPath string                 `json:"config_path"`
	StateDir   string                 `json:"state_dir,omitempty"`
	Roots      map[string][]string    `json:"roots"`
	History    []domain.PrewarmRecord `json:"history"`
}

// Info prints the environment summary.
func (r *renderer) Info(info Info) error {
	if r.json {
		if info.History == nil {
			info.History = []domain.PrewarmRecord{}
		}
		return r.encode(info)
	}

	yesNo := func(b bool) string {
		if b {
			return r.color("yes", style.Green)
		}
		return r.color("no", style.Yellow)
	}

	r.line("%s %s", r.bold(domain.AppName), info.Version)
	r.line("  %s %s", style.Pad("NVIDIA GPU", 14), yesNo(info.NVIDIAGPU))
	r.line("  %s %s", style.Pad("Prewarm", 14), yesNo(info.Prewarm))
	r.line("  %s %s", style.Pad("Config", 14), info.ConfigPath)
	if info.StateDir != "" {
		r.line("  %s %s", style.Pad("State", 14), info.StateDir)
	}
	r.line("")
	r.line("%s", r.bold("Roots"))
	for _, t := range domain.AllCacheTypes() {
		dirs := info.Roots[t.String()]
		if len(dirs) == 0 {
			continue
		}
		r.line("  %s %s", style.Pad(t.String(), 11), strings.Join(dirs, ", "))
	}
	if len(info.History) > 0 {
		r.line("")
		r.line("%s", r.bold("Prewarm history"))
		for _, h := range info.History {
			name := h.GameID
			if h.GameName != "" {
				name = fmt.Sprintf("%s (%s)", h.GameName, h.GameID)
			}
			r.line("  %s %s %s %d/%d", r.color(style.Arrow, style.Cyan), style.Pad(name, 24),
				h.LastRun.UTC().Format(time.RFC3339), h.Result.Completed, h.Result.Total)
		}
	}
	return nil
}

// Watching announces that watch mode is running.
func (r *renderer) Watching(roots int) {
	if r.json {
		return
	}
	r.line("%s watching %d cache roots, press Ctrl+C to stop", r.color(style.Dot, style.Cyan), roots)
}

func messages(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
