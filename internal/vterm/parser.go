package vterm

// Parser states
type parseState int

const (
	stateGround parseState = iota
	stateEscape
	stateCharset
	stateCSI
	stateString
	stateStringEscape
)

const (
	maxParams     = 32
	maxParamValue = 99999
)

// Parser turns text into buffer operations on its Terminal. Sequences are
// never carried across Parse calls: anything unterminated at the end of the
// input is dropped.
type Parser struct {
	t     *Terminal
	state parseState

	params    []int
	cur       int
	hasDigits bool
	private   bool
	// ignore marks a CSI that is consumed without effect (intermediate
	// bytes, unsupported markers, misplaced '?').
	ignore bool
}

// NewParser creates a parser bound to t
func NewParser(t *Terminal) *Parser {
	return &Parser{
		t:      t,
		params: make([]int, 0, maxParams),
	}
}

// Parse processes one chunk of text
func (p *Parser) Parse(text string) {
	for _, r := range text {
		p.parseRune(r)
	}
	p.Reset()
}

// Reset returns to the ground state, discarding any partial sequence
func (p *Parser) Reset() {
	p.state = stateGround
	p.resetCSI()
}

func (p *Parser) resetCSI() {
	p.params = p.params[:0]
	p.cur = 0
	p.hasDigits = false
	p.private = false
	p.ignore = false
}

func (p *Parser) parseRune(r rune) {
	switch p.state {
	case stateGround:
		if r == 0x1b {
			p.state = stateEscape
			return
		}
		p.t.putChar(r)
	case stateEscape:
		p.parseEscape(r)
	case stateCharset:
		p.state = stateGround
	case stateCSI:
		p.parseCSI(r)
	case stateString:
		switch r {
		case 0x07:
			p.state = stateGround
		case 0x1b:
			p.state = stateStringEscape
		}
	case stateStringEscape:
		if r == '\\' {
			p.state = stateGround
			return
		}
		p.state = stateString
	}
}

func (p *Parser) parseEscape(r rune) {
	switch r {
	case '[':
		p.resetCSI()
		p.state = stateCSI
	case ']', 'P', 'X', '^', '_': // OSC, DCS, SOS, PM, APC
		p.state = stateString
	case '(', ')', '*', '+': // charset designation
		p.state = stateCharset
	case 0x1b:
		// ESC ESC: stay in escape state
	default:
		p.state = stateGround
	}
}

func (p *Parser) parseCSI(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.hasDigits = true
		if p.cur < maxParamValue {
			p.cur = min(p.cur*10+int(r-'0'), maxParamValue)
		}
	case r == ';':
		p.pushParam()
	case r == '?':
		if p.hasDigits || len(p.params) > 0 || p.private {
			p.ignore = true
		}
		p.private = true
	case r >= '<' && r <= '>', r == ':':
		p.ignore = true
	case r >= 0x20 && r <= 0x2f: // intermediate bytes
		p.ignore = true
	case r >= '@' && r <= '~':
		if p.hasDigits || len(p.params) > 0 {
			p.pushParam()
		}
		if !p.ignore {
			p.t.executeCSI(r, p.params, p.private)
		}
		p.state = stateGround
		p.resetCSI()
	case r == 0x1b:
		p.resetCSI()
		p.state = stateEscape
	default:
		// other controls and non-ASCII runes inside a CSI are ignored
	}
}

// pushParam records the current parameter. Empty parameters are stored as
// zero, which getParam treats as unsupplied.
func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.cur)
	}
	p.cur = 0
	p.hasDigits = false
}

// getParam returns params[idx], or def when it is missing or zero
func getParam(params []int, idx, def int) int {
	if idx < len(params) && params[idx] != 0 {
		return params[idx]
	}
	return def
}
