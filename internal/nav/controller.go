package nav

import "time"

// DefaultAutoAdvanceDelay is how long the title page stays up before moving
// to the notice page.
const DefaultAutoAdvanceDelay = 4500 * time.Millisecond

// PageState is the per-session navigation state. The zero value means the
// session has no prior state yet.
type PageState struct {
	ActivePage      PageID `json:"activePage"`
	Acknowledged    bool   `json:"acknowledged"`
	HasAutoAdvanced bool   `json:"hasAutoAdvanced"`
}

func NewPageState() PageState { return PageState{ActivePage: PageTitle} }

func (s PageState) IsZero() bool { return s == PageState{} }

// Resolve reconciles the address with the prior session state. A recognized
// page in the address always wins; otherwise the prior page is kept, and a
// session without a prior page starts on the title page.
func Resolve(addr Address, prior PageState) PageState {
	next := prior
	if p, ok := addr.Page(); ok {
		next.ActivePage = p
		return next
	}
	if !next.ActivePage.Valid() {
		next.ActivePage = PageTitle
	}
	return next
}

// Transition is the outcome of one navigation step.
type Transition struct {
	// State is the session state to persist.
	State PageState
	// Render is the page to show for this request.
	Render PageID
	// Redirect, when set, is the address the client should move to. A zero
	// Delay means immediately and nothing should be rendered.
	Redirect *Address
	Delay    time.Duration
	// FirstAcknowledgment is set only on the step that first acknowledges the
	// notice in this session.
	FirstAcknowledgment bool
}

// Immediate reports whether the client should be sent to Redirect right away.
func (t Transition) Immediate() bool { return t.Redirect != nil && t.Delay <= 0 }

type Controller struct {
	AutoAdvanceDelay time.Duration
}

// Navigate resolves the address against prior and applies page events.
func (c Controller) Navigate(addr Address, prior PageState) Transition {
	return c.Step(addr, Resolve(addr, prior))
}

// Step applies the events of the already-resolved active page:
//   - title auto-advances to notice once per session, after the delay;
//   - notice moves to welcome when the address acknowledges it;
//   - any other page just drops a stray ack from the address.
func (c Controller) Step(addr Address, state PageState) Transition {
	if !state.ActivePage.Valid() {
		state.ActivePage = PageTitle
	}
	t := Transition{State: state, Render: state.ActivePage}

	switch state.ActivePage {
	case PageTitle:
		if state.HasAutoAdvanced {
			return t
		}
		t.State.HasAutoAdvanced = true
		t.State.ActivePage = PageNotice
		next := addr.Without(KeyAck).WithPage(PageNotice)
		t.Redirect = &next
		t.Delay = c.delay()
	case PageNotice:
		if !addr.Acknowledges() {
			if addr.Has(KeyAck) {
				next := addr.Without(KeyAck)
				t.Redirect = &next
			}
			return t
		}
		t.FirstAcknowledgment = !state.Acknowledged
		t.State.Acknowledged = true
		t.State.ActivePage = PageWelcome
		t.Render = PageWelcome
		next := addr.Without(KeyAck).WithPage(PageWelcome)
		t.Redirect = &next
	default:
		if addr.Has(KeyAck) {
			next := addr.Without(KeyAck)
			t.Redirect = &next
		}
	}
	return t
}

func (c Controller) delay() time.Duration {
	if c.AutoAdvanceDelay > 0 {
		return c.AutoAdvanceDelay
	}
	return DefaultAutoAdvanceDelay
}
