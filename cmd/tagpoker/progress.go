package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type progressMsg float64

type finishMsg time.Duration

type progressModel struct {
	bar     progress.Model
	total   int
	percent float64
	elapsed time.Duration
	done    bool
}

func newProgressModel(total int) progressModel {
	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.percent = float64(msg)
		return m, nil
	case finishMsg:
		m.percent = 1
		m.elapsed = time.Duration(msg)
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-30, 10), 60)
	}
	return m, nil
}

func (m progressModel) View() string {
	line := fmt.Sprintf("Simulating %d boards %s", m.total, m.bar.ViewAs(m.percent))
	if m.done {
		line += fmt.Sprintf(" done in %v", m.elapsed.Round(time.Millisecond))
	}
	return line + "\n"
}

// barReporter drives a bubbletea progress bar from simulator callbacks.
type barReporter struct {
	out     io.Writer
	program *tea.Program
	exited  chan struct{}

	mu   sync.Mutex
	last int
}

func newBarReporter(out io.Writer) *barReporter {
	return &barReporter{out: out}
}

func (r *barReporter) Start(total int) {
	r.program = tea.NewProgram(newProgressModel(total), tea.WithOutput(r.out), tea.WithoutSignalHandler())
	r.exited = make(chan struct{})
	go func() {
		defer close(r.exited)
		_, _ = r.program.Run()
	}()
}

// Progress forwards whole-percent changes only.
func (r *barReporter) Progress(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total
	r.mu.Lock()
	if pct <= r.last {
		r.mu.Unlock()
		return
	}
	r.last = pct
	r.mu.Unlock()
	r.program.Send(progressMsg(float64(pct) / 100))
}

func (r *barReporter) Finish(elapsed time.Duration) {
	r.program.Send(finishMsg(elapsed))
	<-r.exited
}

// Close stops the bar if the run ended without Finish.
func (r *barReporter) Close() {
	if r.program == nil {
		return
	}
	r.program.Quit()
	<-r.exited
}
