package markup

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

const (
	markerTipsOpen   = "[tips]"
	markerTipsClose  = "[/tips]"
	markerNotesOpen  = "[notes]"
	markerNotesClose = "[/notes]"
)

// stepParser is the timeline body state machine. With current == nil it is
// between steps; otherwise it is inside a step and the tips/notes flags
// select which list receives item lines.
type stepParser struct {
	blockID string
	steps   []interfaces.ItineraryStep
	current *interfaces.ItineraryStep
	inTips  bool
	inNotes bool
}

// ParseSteps runs the timeline step grammar over a block body. Steps are
// separated by blank lines; the first line of a step is its title verbatim.
// Step ids are derived from blockID and the step position.
func ParseSteps(blockID, body string) []interfaces.ItineraryStep {
	p := &stepParser{
		blockID: blockID,
		steps:   []interfaces.ItineraryStep{},
	}
	for _, raw := range strings.Split(body, "\n") {
		p.line(strings.TrimSpace(raw))
	}
	p.emit()
	return p.steps
}

func (p *stepParser) line(line string) {
	if line == "" {
		p.emit()
		return
	}

	switch line {
	case markerTipsOpen:
		if p.current != nil {
			p.inTips = true
			if p.current.Tips == nil {
				p.current.Tips = []string{}
			}
		}
		return
	case markerTipsClose:
		p.inTips = false
		return
	case markerNotesOpen:
		if p.current != nil {
			p.inNotes = true
			if p.current.Notes == nil {
				p.current.Notes = []string{}
			}
		}
		return
	case markerNotesClose:
		p.inNotes = false
		return
	}

	if p.current == nil {
		p.current = &interfaces.ItineraryStep{
			ID:      stepID(p.blockID, len(p.steps)),
			Title:   line,
			Details: []string{},
		}
		return
	}

	item := stripItemPrefix(line)
	switch {
	case p.inTips:
		p.current.Tips = append(p.current.Tips, item)
	case p.inNotes:
		p.current.Notes = append(p.current.Notes, item)
	default:
		p.current.Details = append(p.current.Details, item)
	}
}

func (p *stepParser) emit() {
	if p.current != nil {
		p.steps = append(p.steps, *p.current)
	}
	p.current = nil
	p.inTips = false
	p.inNotes = false
}

func stepID(blockID string, index int) string {
	return blockID + "-step-" + strconv.Itoa(index)
}
