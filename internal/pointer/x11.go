package pointer

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/zoobzio/clockz"
)

// X11 polls the pointer on the root window of the default screen.
type X11 struct {
	Interval time.Duration
	Clock    clockz.Clock

	conn *xgb.Conn
	root xproto.Window
}

func (s *X11) connect() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	s.conn = conn
	s.root = setup.DefaultScreen(conn).Root
	return nil
}

func (s *X11) position() (int, int, error) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (s *X11) Run(ctx context.Context, fn func(x, y float64)) error {
	if s.conn == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}
	defer s.conn.Close()

	return poll(ctx, s.Clock, s.Interval, s.position, fn)
}
