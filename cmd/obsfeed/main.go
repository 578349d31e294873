// obsfeed emits a synthetic OBS Lite sensor feed for exercising the
// monitor without hardware: a COBS-framed byte stream on stdout or a
// file (pipe it into a pty or replay it through obsmon -serial), or
// per-frame MQTT publishes mimicking the radio bridge.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/obslite/obsmon/pkg/cobs"
	"github.com/obslite/obsmon/pkg/event"
	"github.com/obslite/obsmon/pkg/notify"
	"github.com/obslite/obsmon/pkg/runner"
)

var (
	mqttURL     string
	outPath     = "-"
	rateHz      = 20.0
	zeroRate    = 0.03
	noFieldRate = 0.03
	truncRate   = 0.01
	frameCount  = 0
	seed        = int64(0)
)

func init() {
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "Publish frames to this MQTT broker URL instead of writing a stream.")
	flag.StringVar(&outPath, "out", outPath, "Output file for the framed stream, - for stdout.")
	flag.Float64Var(&rateHz, "rate", rateHz, "Frames per second.")
	flag.Float64Var(&zeroRate, "zero-rate", zeroRate, "Probability of an explicit zero distance.")
	flag.Float64Var(&noFieldRate, "nofield-rate", noFieldRate, "Probability of omitting the distance field.")
	flag.Float64Var(&truncRate, "truncate-rate", truncRate, "Probability of truncating a frame mid-message.")
	flag.IntVar(&frameCount, "count", frameCount, "Stop after this many frames, 0 for unlimited.")
	flag.Int64Var(&seed, "seed", seed, "Random seed, 0 uses the clock.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	feed := &feed{rnd: rand.New(rand.NewSource(seed))}

	var send func(frame []byte) error
	if mqttURL != "" {
		conn, err := notify.Dial(mqttURL)
		if err != nil {
			log.Fatalln(err)
		}
		defer conn.Close()
		send = conn.Publish
		log.Printf("publishing to %s", conn.Topic)
	} else {
		var w io.Writer = os.Stdout
		if outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			w = f
		}
		send = func(frame []byte) error {
			_, err := w.Write(append(cobs.Encode(frame), cobs.Delimiter))
			return err
		}
	}

	r := runner.NewRunner().HandleSignals()
	r.Go(runner.RunFunc(func(ctx context.Context) error {
		return feed.run(ctx, send)
	}))
	if err := r.Wait(); err != nil {
		log.Fatalln(err)
	}
}

type feed struct {
	rnd  *rand.Rand
	sent int
	walk [2]float32 // per-source random walk, meters
}

func (f *feed) run(ctx context.Context, send func([]byte) error) error {
	interval := time.Duration(float64(time.Second) / rateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := send(f.next()); err != nil {
				return err
			}
			f.sent++
			if frameCount > 0 && f.sent >= frameCount {
				return nil
			}
		}
	}
}

// next produces one frame, mostly distance measurements with the
// occasional marker event and the configured fault mix.
func (f *feed) next() []byte {
	switch {
	case f.sent%400 == 199:
		return event.MarshalEvent(event.Geolocation{})
	case f.sent%997 == 500:
		return event.MarshalEvent(event.UserInput{})
	case f.sent%1500 == 750:
		return event.MarshalEvent(event.TextMessage{Raw: []byte("obs-lite ok")})
	}

	src := f.sent % 2
	m := event.Measurement{SourceID: uint64(src) + 1}
	switch p := f.rnd.Float64(); {
	case p < noFieldRate:
		// distance field omitted entirely
	case p < noFieldRate+zeroRate:
		m.HasDistance = true
	default:
		f.walk[src] += float32(f.rnd.Float64()-0.5) * 0.2
		if f.walk[src] < 0.3 {
			f.walk[src] = 0.3
		}
		if f.walk[src] > 4.0 {
			f.walk[src] = 4.0
		}
		m.Distance, m.HasDistance = f.walk[src], true
	}
	frame := event.MarshalEvent(event.Distance{Measurement: m})

	if f.rnd.Float64() < truncRate && len(frame) > 3 {
		frame = frame[:len(frame)/2]
	}
	return frame
}
