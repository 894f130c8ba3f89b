package vterm

import "github.com/andyrewlee/gridterm/internal/logging"

// executeMode handles DEC private modes (CSI ? Pm h / CSI ? Pm l).
// Only the first parameter is honored.
func (t *Terminal) executeMode(mode int, set bool) {
	switch mode {
	case 25: // DECTCEM
		t.ActiveBuffer().SetCursorVisible(set)
	case 47, 1047, 1049: // alternate screen
		if set {
			t.enterAlt(mode == 1049)
		} else {
			t.leaveAlt()
		}
		logging.Debug("vterm: private mode %d set=%v alt=%v", mode, set, t.useAlt)
	}
}
