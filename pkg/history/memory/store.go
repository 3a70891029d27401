package memory

import (
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"context"
)

// HistoryStore keeps switches for the lifetime of the process. It stands in
// when the on-disk history cannot be opened.
type HistoryStore struct {
	switches []kbpanel.Switch
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) Record(_ context.Context, sw kbpanel.Switch) error {
	s.switches = append(s.switches, sw)
	return nil
}

func (s *HistoryStore) LastSelected(context.Context) (string, error) {
	for i := len(s.switches) - 1; i >= 0; i-- {
		if s.switches[i].Origin == kbpanel.OriginMenu {
			return s.switches[i].Layout, nil
		}
	}
	return "", nil
}
