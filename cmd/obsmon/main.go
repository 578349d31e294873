package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/obslite/obsmon/pkg/diag"
	"github.com/obslite/obsmon/pkg/monitor"
	"github.com/obslite/obsmon/pkg/notify"
	"github.com/obslite/obsmon/pkg/runner"
	"github.com/obslite/obsmon/pkg/stream"
	"github.com/obslite/obsmon/pkg/telemetry"
)

var (
	serialPath  string
	mqttURL     = "mqtt://localhost:1883/obs/events"
	configPath  string
	metricsAddr string
	statsEvery  = 10 * time.Second
	sampleEvery = 50
)

func init() {
	if val := os.Getenv("OBSMON_SERIAL"); val != "" {
		serialPath = val
	}
	if val := os.Getenv("OBSMON_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&serialPath, "serial", serialPath, "Serial device path; empty to use the MQTT bridge.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL of the radio bridge.")
	flag.StringVar(&configPath, "config", configPath, "Optional TOML config file.")
	flag.StringVar(&metricsAddr, "metrics", metricsAddr, "Prometheus listen address; empty to disable.")
	flag.DurationVar(&statsEvery, "stats", statsEvery, "Stats reporting interval.")
	flag.IntVar(&sampleEvery, "sample", sampleEvery, "Print every Nth OK distance record.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if configPath != "" {
		if err := applyConfig(configPath); err != nil {
			log.Fatalln(err)
		}
	}

	classifier := diag.NewClassifier()
	reporters := []monitor.Reporter{&monitor.LogReporter{SampleEvery: uint64(sampleEvery)}}
	if metricsAddr != "" {
		reporters = append(reporters, monitor.MetricsReporter{})
	}
	mon := monitor.New(classifier, reporters...)

	r := runner.NewRunner().HandleSignals()
	r.Go(&monitor.StatsTicker{Classifier: classifier, Interval: statsEvery})
	if metricsAddr != "" {
		r.Go(metricsServer(metricsAddr))
	}

	if serialPath != "" {
		port, err := os.OpenFile(serialPath, os.O_RDWR, 0)
		if err != nil {
			log.Fatalln(err)
		}
		reader := stream.NewReader(port, mon)
		reader.OnDropped = mon.HandleDropped
		r.Go(runner.RunFunc(func(ctx context.Context) error {
			defer port.Close()
			return reader.Run(ctx)
		}))
		log.Printf("reading %s", serialPath)
	} else {
		conn, err := notify.Dial(mqttURL)
		if err != nil {
			log.Fatalln(err)
		}
		if err := conn.Subscribe(mon.HandleNotification); err != nil {
			log.Fatalln(err)
		}
		r.Go(runner.RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			conn.Close()
			return ctx.Err()
		}))
		log.Printf("subscribed %s", conn.Topic)
	}

	if err := r.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func metricsServer(addr string) runner.Runnable {
	return runner.RunFunc(func(ctx context.Context) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		srv := &http.Server{Addr: addr, Handler: mux}
		err := runner.RunWithContextCloser(ctx, srv, srv.ListenAndServe)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
}
