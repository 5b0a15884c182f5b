package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

const (
	netWmStateAdd = 1
	// Source indication 1 is a normal application.
	sourceApplication = 1
)

// RequestAlwaysOnTop asks the window manager to add _NET_WM_STATE_ABOVE to
// the window. Compliant window managers honour it; RaiseIfNotTop covers the
// rest. The client message is built manually so both atoms are resolved
// up front and a failed intern is reported instead of sending atom 0.
func RequestAlwaysOnTop(s Server, root, win xproto.Window) error {
	wmState, err := s.InternAtom("_NET_WM_STATE")
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_STATE: %w", err)
	}
	wmStateAbove, err := s.InternAtom("_NET_WM_STATE_ABOVE")
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_STATE_ABOVE: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wmState,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			netWmStateAdd, uint32(wmStateAbove), 0, sourceApplication, 0,
		}),
	}

	err = s.SendClientMessage(root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		ev,
	)
	if err != nil {
		return fmt.Errorf("failed to send _NET_WM_STATE request: %w", err)
	}
	return nil
}

// RaiseIfNotTop restacks win above its siblings unless it is already the
// last child of root, which is topmost in X11 stacking order. It reports
// whether a configure request was issued.
func RaiseIfNotTop(s Server, root, win xproto.Window) (bool, error) {
	children, err := s.QueryTree(root)
	if err != nil {
		return false, fmt.Errorf("failed to query root children: %w", err)
	}
	if len(children) > 0 && children[len(children)-1] == win {
		return false, nil
	}
	if err := s.ConfigureStackMode(win, xproto.StackModeAbove); err != nil {
		return false, fmt.Errorf("failed to raise window 0x%x: %w", uint32(win), err)
	}
	return true, nil
}
