package harness

import (
	"fmt"

	"github.com/sarchlab/skidsim/signal"
)

// ViolationKind classifies a conformance failure observed on the wires.
type ViolationKind int

// The violation taxonomy: the three conservation failures, the two egress
// stability failures, and capacity overflow.
const (
	// ViolationLoss marks a word accepted on ingress that never appeared
	// on egress, or an egress word that was never accepted on ingress.
	ViolationLoss ViolationKind = iota
	// ViolationDuplication marks a word that appeared on egress twice.
	ViolationDuplication
	// ViolationReordering marks an egress word that arrived ahead of an
	// older resident word.
	ViolationReordering
	// ViolationValidDrop marks tx_valid deasserted on a word the consumer
	// had not accepted.
	ViolationValidDrop
	// ViolationDataMutation marks tx_data changing while tx_valid was held
	// on an unaccepted word.
	ViolationDataMutation
	// ViolationOverflow marks more than two words resident at once.
	ViolationOverflow
)

func (k ViolationKind) String() string {
	switch k {
	case ViolationLoss:
		return "loss"
	case ViolationDuplication:
		return "duplication"
	case ViolationReordering:
		return "reordering"
	case ViolationValidDrop:
		return "valid-drop"
	case ViolationDataMutation:
		return "data-mutation"
	case ViolationOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// A Violation is one conformance failure pinned to the tick it was observed.
type Violation struct {
	Tick   uint64
	Kind   ViolationKind
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("tick %d: %s: %s", v.Tick, v.Kind, v.Detail)
}

// A Report summarizes one run.
type Report struct {
	// Accepted is the number of words accepted on ingress.
	Accepted uint64
	// Emitted is the number of words delivered on egress.
	Emitted uint64
	// Discarded is the number of in-flight words dropped by a synchronous
	// clear or a hard reset. Those losses are by design and are not
	// violations.
	Discarded uint64
	// Pending is the number of accepted words still resident when the run
	// ended.
	Pending int
	// Violations lists every conformance failure, in observation order.
	Violations []Violation
}

// Ok reports whether the run completed without any violation.
func (r Report) Ok() bool {
	return len(r.Violations) == 0
}

// Summary renders a one-line human-readable digest of the run.
func (r Report) Summary() string {
	return fmt.Sprintf(
		"accepted=%d emitted=%d discarded=%d pending=%d violations=%d",
		r.Accepted, r.Emitted, r.Discarded, r.Pending, len(r.Violations))
}

// A Scoreboard observes the decoupler's wires one tick at a time and checks
// the conservation and egress stability contracts. It keeps the queue of
// words accepted on ingress but not yet seen on egress; with a two-slot
// decoupler that queue can never legally exceed two entries.
type Scoreboard struct {
	inFlight  []signal.Word
	emitted   []signal.Word
	accepted  uint64
	delivered uint64
	discarded uint64

	havePrev bool
	prev     signal.TickSample

	violations []Violation
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// Observe records one tick's sample. Samples must arrive in tick order.
func (sb *Scoreboard) Observe(s signal.TickSample) {
	sb.checkEgressStability(s)

	if s.Reset {
		// Hard reset forcibly empties the decoupler. Anything still
		// resident is discarded, not lost.
		sb.discarded += uint64(len(sb.inFlight))
		sb.inFlight = nil
		sb.prev = s
		sb.havePrev = true

		return
	}

	// Egress first: a word accepted on ingress this tick lands in a
	// register and cannot appear on egress before the next tick.
	if s.EgressTransfer() {
		sb.recordEgress(s)
	}

	if s.IngressTransfer() {
		sb.accepted++
		if s.Clear {
			// The clear wins over the same-tick acceptance; the
			// word is never stored.
			sb.discarded++
		} else {
			sb.inFlight = append(sb.inFlight, s.RxData)
		}
	}

	if s.Clear {
		sb.discarded += uint64(len(sb.inFlight))
		sb.inFlight = nil
	}

	if len(sb.inFlight) > 2 {
		sb.violate(s.Tick, ViolationOverflow, fmt.Sprintf(
			"%d words resident in a two-slot buffer", len(sb.inFlight)))
	}

	sb.prev = s
	sb.havePrev = true
}

// checkEgressStability enforces the output side of the handshake contract:
// a word presented with tx_valid high must stay presented, bit for bit, until
// the consumer accepts it. A clear or reset on the previous tick legally
// silences the output.
func (sb *Scoreboard) checkEgressStability(s signal.TickSample) {
	if !sb.havePrev {
		return
	}

	p := sb.prev
	if !p.TxValid || p.TxReady || p.Clear || p.Reset || s.Reset {
		return
	}

	if !s.TxValid {
		sb.violate(s.Tick, ViolationValidDrop, fmt.Sprintf(
			"tx_valid dropped while %s was still unaccepted", p.TxData))
		return
	}

	if !s.TxData.Equal(p.TxData) {
		sb.violate(s.Tick, ViolationDataMutation, fmt.Sprintf(
			"tx_data changed from %s to %s while unaccepted",
			p.TxData, s.TxData))
	}
}

func (sb *Scoreboard) recordEgress(s signal.TickSample) {
	word := s.TxData
	sb.delivered++

	if len(sb.inFlight) == 0 {
		if len(sb.emitted) > 0 &&
			word.Equal(sb.emitted[len(sb.emitted)-1]) {
			sb.violate(s.Tick, ViolationDuplication, fmt.Sprintf(
				"%s emitted twice", word))
		} else {
			sb.violate(s.Tick, ViolationLoss, fmt.Sprintf(
				"%s emitted but never accepted on ingress", word))
		}

		return
	}

	expected := sb.inFlight[0]
	if word.Equal(expected) {
		sb.inFlight = sb.inFlight[1:]
		sb.emitted = append(sb.emitted, word)

		return
	}

	// The oldest resident word did not come out. Classify the failure,
	// then resynchronize on the word that actually appeared.
	for i := 1; i < len(sb.inFlight); i++ {
		if word.Equal(sb.inFlight[i]) {
			sb.violate(s.Tick, ViolationReordering, fmt.Sprintf(
				"expected %s, got younger word %s", expected, word))
			sb.inFlight = sb.inFlight[i+1:]
			sb.emitted = append(sb.emitted, word)

			return
		}
	}

	sb.violate(s.Tick, ViolationLoss, fmt.Sprintf(
		"expected %s, got %s which was never accepted", expected, word))
	sb.inFlight = sb.inFlight[1:]
	sb.emitted = append(sb.emitted, word)
}

func (sb *Scoreboard) violate(tick uint64, kind ViolationKind, detail string) {
	sb.violations = append(sb.violations, Violation{
		Tick:   tick,
		Kind:   kind,
		Detail: detail,
	})
}

// Emitted returns the egress word sequence recorded so far.
func (sb *Scoreboard) Emitted() []signal.Word {
	return sb.emitted
}

// Report summarizes the run observed so far.
func (sb *Scoreboard) Report() Report {
	return Report{
		Accepted:   sb.accepted,
		Emitted:    sb.delivered,
		Discarded:  sb.discarded,
		Pending:    len(sb.inFlight),
		Violations: sb.violations,
	}
}
