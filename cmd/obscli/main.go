// obscli is an interactive console for live OBS Lite monitoring
// sessions over the MQTT radio bridge.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/abiosoft/ishell"

	"github.com/obslite/obsmon/pkg/diag"
	"github.com/obslite/obsmon/pkg/event"
	"github.com/obslite/obsmon/pkg/monitor"
	"github.com/obslite/obsmon/pkg/notify"
)

var (
	mqttURL  = "mqtt://localhost:1883/obs/events"
	evalOnly bool
)

func init() {
	if val := os.Getenv("OBSMON_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL of the radio bridge.")
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluate the command line only, no interactive shell.")
}

const sessionKey = "$session"

// session is the state behind one shell: a live subscription feeding a
// classifier, and a watch switch gating per-record console output.
type session struct {
	conn       *notify.Conn
	classifier *diag.Classifier
	reporter   monitor.LogReporter
	watching   int32
}

// Report implements monitor.Reporter, printing records only while
// watching is enabled. It runs on the MQTT callback goroutine.
func (s *session) Report(rec monitor.Record) {
	if atomic.LoadInt32(&s.watching) != 0 {
		s.reporter.Report(rec)
	}
}

func sessionFrom(c *ishell.Context) *session {
	return c.Get(sessionKey).(*session)
}

func mustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if sessionFrom(c).conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	s := &session{}
	shell := ishell.New()
	shell.Set(sessionKey, s)
	shell.SetPrompt("[none] > ")

	shell.AddCmd(&ishell.Cmd{
		Name: "connect",
		Help: "connect [url]: subscribe to the radio bridge",
		Func: func(c *ishell.Context) {
			url := mqttURL
			if len(c.Args) > 0 {
				url = c.Args[0]
			}
			if s.conn != nil {
				c.Err(fmt.Errorf("already connected to %s", s.conn.Topic))
				return
			}
			conn, err := notify.Dial(url)
			if err != nil {
				c.Err(err)
				return
			}
			s.classifier = diag.NewClassifier()
			mon := monitor.New(s.classifier, s)
			if err := conn.Subscribe(mon.HandleNotification); err != nil {
				conn.Close()
				c.Err(err)
				return
			}
			s.conn = conn
			shell.SetPrompt(fmt.Sprintf("[%s] > ", conn.Topic))
			c.Printf("connected, session counters reset\n")
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "disconnect",
		Help: "close the current session",
		Func: mustBeConnected(func(c *ishell.Context) {
			s.conn.Close()
			s.conn = nil
			atomic.StoreInt32(&s.watching, 0)
			shell.SetPrompt("[none] > ")
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "watch",
		Help: "watch [on|off]: toggle live record output",
		Func: mustBeConnected(func(c *ishell.Context) {
			on := atomic.LoadInt32(&s.watching) == 0
			if len(c.Args) > 0 {
				on = c.Args[0] == "on"
			}
			if on {
				atomic.StoreInt32(&s.watching, 1)
				c.Println("watching (watch off to stop)")
			} else {
				atomic.StoreInt32(&s.watching, 0)
				c.Println("watch off")
			}
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "stats",
		Help: "print session counters",
		Func: mustBeConnected(func(c *ishell.Context) {
			printStats(c, s.classifier.Snapshot())
		}),
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "decode",
		Help: "decode <hex>: decode one frame from a hex dump",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: decode <hex>"))
				return
			}
			frame, err := hex.DecodeString(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(formatEvent(event.Decode(frame)))
		},
	})

	if evalOnly || flag.NArg() > 0 {
		if err := shell.Process(flag.Args()...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	shell.Println("obscli - OBS Lite monitor console (help for commands)")
	shell.Run()
	if s.conn != nil {
		s.conn.Close()
	}
}

func printStats(c *ishell.Context, s diag.Snapshot) {
	c.Printf("events=%d ok=%d zero_no_field=%d zero_explicit=%d truncated=%d frame_errors=%d\n",
		s.Events, s.OK, s.ZeroNoField, s.ZeroExplicit, s.Truncated, s.FrameErrors)
	for id, counts := range s.Sources {
		c.Printf("  sid%d: ok=%d zero=%d\n", id, counts.OK, counts.Zero)
	}
	if total := s.OK + s.ZeroExplicit + s.ZeroNoField; total > 0 {
		c.Printf("  zero rate: %.1f%%\n", s.ZeroRate()*100)
	}
}

func formatEvent(ev event.Event) string {
	switch e := ev.(type) {
	case event.Distance:
		return fmt.Sprintf("distance sid=%d dist=%.3fm has_field=%v class=%s raw=%x",
			e.SourceID, e.Distance, e.HasDistance, diag.Classify(e.Measurement), e.Raw)
	case event.TextMessage:
		return fmt.Sprintf("text %q", e.Raw)
	case event.Truncated:
		return fmt.Sprintf("truncated field=%d expected=%d got=%d raw=%x",
			e.FieldNum, e.Expected, e.Available, e.Frame)
	case event.Unknown:
		return fmt.Sprintf("unknown field=%d (%d bytes)", e.FieldNum, e.FrameLen)
	default:
		return event.Kind(ev)
	}
}
