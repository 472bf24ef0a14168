// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/staker"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
	// Events a connection may fall behind before it is dropped.
	backlogSize = 1024
)

var errSlowConsumer = errors.New("subscriber too slow")

type Subscriptions struct {
	staker   *staker.Staker
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates the websocket endpoints. allowedOrigins holds lower cased origins; "*"
// accepts any.
func New(s *staker.Staker, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		staker: s,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == strings.ToLower(origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

type eventFilter struct {
	actor *core.Address
	kinds map[staker.EventKind]bool
}

func parseEventFilter(req *http.Request) (*eventFilter, error) {
	q := req.URL.Query()
	f := &eventFilter{}
	if raw := q.Get("actor"); raw != "" {
		actor, err := core.ParseAddress(raw)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "actor"))
		}
		f.actor = actor
	}
	if raw := q.Get("kind"); raw != "" {
		f.kinds = make(map[staker.EventKind]bool)
		for _, k := range strings.Split(raw, ",") {
			f.kinds[staker.EventKind(strings.TrimSpace(k))] = true
		}
	}
	return f, nil
}

func (f *eventFilter) match(ev *staker.Event) bool {
	if f.actor != nil && *f.actor != ev.Actor {
		return false
	}
	if f.kinds != nil && !f.kinds[ev.Kind] {
		return false
	}
	return true
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req)
	if err != nil {
		return err
	}
	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}

	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	if err := s.pipe(conn, filter); err != nil {
		logger.Debug("subscription closed", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	return nil
}

// forward moves matching events from feedCh into backlog until stop closes. When
// backlog is full the subscription is cancelled before the returned channel closes,
// so the feed is released before the writer notices.
func forward(sub event.Subscription, feedCh <-chan *staker.Event, backlog chan<- *staker.Event, filter *eventFilter, stop <-chan struct{}) <-chan struct{} {
	overflow := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-feedCh:
				if !filter.match(ev) {
					continue
				}
				select {
				case backlog <- ev:
				default:
					sub.Unsubscribe()
					close(overflow)
					return
				}
			case <-stop:
				return
			}
		}
	}()
	return overflow
}

// pipe forwards matching events to conn until the peer leaves or the server closes.
// Events go to a backlog; a full backlog drops the subscriber.
func (s *Subscriptions) pipe(conn *websocket.Conn, filter *eventFilter) error {
	feedCh := make(chan *staker.Event, 16)
	sub := s.staker.SubscribeEvents(feedCh)
	defer sub.Unsubscribe()

	backlog := make(chan *staker.Event, backlogSize)
	stopForward := make(chan struct{})
	defer close(stopForward)
	overflow := forward(sub, feedCh, backlog, filter, stopForward)

	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-overflow:
			return errSlowConsumer
		default:
		}
		select {
		case ev := <-backlog:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(types.ConvertEvent(ev)); err != nil {
				return nil
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-overflow:
			return errSlowConsumer
		case err, ok := <-sub.Err():
			if !ok {
				// only the forwarder unsubscribes while the loop runs
				return errSlowConsumer
			}
			return err
		case <-closed:
			return nil
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return nil
		}
	}
}

// Close disconnects every subscriber and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").Methods(http.MethodGet).Name("WS /subscriptions/events").HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
