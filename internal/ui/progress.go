package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Phase is a stage of a generation run
type Phase string

const (
	PhaseScanning   Phase = "Scanning"
	PhaseParsing    Phase = "Parsing"
	PhaseGenerating Phase = "Generating"
	PhaseWriting    Phase = "Writing"
	PhaseReporting  Phase = "Reporting"
)

// ProgressBar wraps the progressbar library with our styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
}

func newProgressBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

// Increment advances the bar by one step
func (pb *ProgressBar) Increment() {
	_ = pb.bar.Add(1)
}

// Describe shows the item currently being processed
func (pb *ProgressBar) Describe(item string) {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, item))
}

// Finish completes the bar
func (pb *ProgressBar) Finish() {
	_ = pb.bar.Finish()
}

// Pipeline shows one progress bar per phase, in the order phases are started
type Pipeline struct {
	output   io.Writer
	disabled bool
	current  *ProgressBar
	started  []Phase
}

// NewPipeline creates a pipeline writing to stdout
func NewPipeline() *Pipeline {
	return NewPipelineWithOutput(os.Stdout)
}

// NewPipelineWithOutput creates a pipeline with custom output
func NewPipelineWithOutput(output io.Writer) *Pipeline {
	return &Pipeline{output: output}
}

// Disable sends all further output to io.Discard
func (p *Pipeline) Disable() {
	p.disabled = true
}

// Start finishes the running phase and starts a new one with total steps
func (p *Pipeline) Start(phase Phase, total int) *ProgressBar {
	p.Finish()

	output := p.output
	if p.disabled {
		output = io.Discard
	}
	p.current = newProgressBar(phase, total, output)
	p.started = append(p.started, phase)
	return p.current
}

// Phases returns the phases started so far
func (p *Pipeline) Phases() []Phase {
	return p.started
}

// Finish completes the running phase, if any
func (p *Pipeline) Finish() {
	if p.current != nil {
		p.current.Finish()
		p.current = nil
	}
}

// PrintSummary prints a closing line unless output is disabled
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
