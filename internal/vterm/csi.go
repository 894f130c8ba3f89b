package vterm

func (t *Terminal) executeCSI(final rune, params []int, private bool) {
	if private {
		switch final {
		case 'h':
			t.executeMode(getParam(params, 0, 0), true)
		case 'l':
			t.executeMode(getParam(params, 0, 0), false)
		}
		return
	}

	b := t.ActiveBuffer()
	n := getParam(params, 0, 1)
	switch final {
	case 'A': // CUU
		b.MoveCursorRelative(-n, 0)
	case 'B': // CUD
		b.MoveCursorRelative(n, 0)
	case 'C': // CUF
		b.MoveCursorRelative(0, n)
	case 'D': // CUB
		b.MoveCursorRelative(0, -n)
	case 'H', 'f': // CUP
		b.MoveCursor(getParam(params, 0, 1)-1, getParam(params, 1, 1)-1)
	case 'J': // ED
		b.EraseInDisplay(getParam(params, 0, 0))
	case 'K': // EL
		b.EraseInLine(getParam(params, 0, 0))
	case 'm': // SGR
		b.SetSGR(params)
	case 's': // SCP
		b.SaveCursor()
	case 'u': // RCP
		b.RestoreCursor()
	case 'r': // DECSTBM
		if len(params) == 0 {
			b.ResetScrollRegion()
			return
		}
		b.SetScrollRegion(getParam(params, 0, 1)-1, getParam(params, 1, b.Rows())-1)
	case 'S': // SU
		b.ScrollUp(n, t.sinkFor(b))
	case 'T': // SD
		b.ScrollDown(n)
	case 'L': // IL
		b.InsertLines(n)
	case 'M': // DL
		b.DeleteLines(n)
	case '@': // ICH
		b.InsertChars(n)
	case 'P': // DCH
		b.DeleteChars(n)
	case 'X': // ECH
		b.EraseChars(n)
	}
}
