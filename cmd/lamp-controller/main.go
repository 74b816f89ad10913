// Command lamp-controller holds a lamp's bounded brightness state,
// applies commands received over MQTT, and publishes state changes and
// power-event notifications.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/lamp-controller/internal/gpio"
	"github.com/sweeney/lamp-controller/internal/lamp"
	"github.com/sweeney/lamp-controller/internal/mqtt"
	"github.com/sweeney/lamp-controller/internal/power"
	"github.com/sweeney/lamp-controller/internal/profile"
	"github.com/sweeney/lamp-controller/internal/status"
	"github.com/sweeney/lamp-controller/internal/web"
)

func main() {
	profilePath := flag.String("profile", "", "Power profile YAML file (empty uses the built-in profile)")
	name := flag.String("name", "", "Device tag override")
	maxLevel := flag.Int("max", -1, "Max level override (-1 uses the profile value)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	pin := flag.Int("pin", -1, "BCM output pin mirroring lamp on/off state (-1 to disable)")
	demo := flag.Bool("demo", false, "Run the scripted demo sequence against stdout and exit")

	flag.Parse()

	prof, err := resolveProfile(*profilePath, *name, *maxLevel)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if *demo {
		if err := runDemo(prof); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	if err := run(prof, *profilePath, *broker, *heartbeat, *httpAddr, *pin); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// resolveProfile loads the profile file (or the built-in default) and
// applies flag overrides on top.
func resolveProfile(path, name string, maxLevel int) (profile.Profile, error) {
	prof := profile.Default()
	if path != "" {
		var err error
		prof, err = profile.Load(path)
		if err != nil {
			return profile.Profile{}, err
		}
	}

	if name != "" {
		prof.Name = name
	}
	if maxLevel >= 0 {
		prof.MaxLevel = maxLevel
	}

	if err := prof.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("profile: %w", err)
	}
	return prof, nil
}

// stdoutNotifier prints power notifications, used by demo mode.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(event power.Event) error {
	fmt.Printf("%s: %s\n", event.Type, event.Message)
	return nil
}

// runDemo plays the canonical sequence through every lamp operation and
// both power events, printing the level after each step.
func runDemo(prof profile.Profile) error {
	l, err := lamp.New(prof.Name, prof.MaxLevel)
	if err != nil {
		return err
	}

	n := stdoutNotifier{}
	show := func(op string) {
		fmt.Printf("%-12s level %d/%d\n", op, l.CurrentLevel, l.MaxLevel)
	}

	show("new")
	l.Increase(0)
	show("increase()")
	l.Increase(5)
	show("increase(5)")
	l.Decrease(2)
	show("decrease(2)")
	l.SetFull()
	show("setFull")
	if _, err := power.Surge(l, time.Now(), n); err != nil {
		return err
	}
	show("surge")
	if err := power.Outage(l, time.Now(), n); err != nil {
		return err
	}
	show("outage")
	l.SetFull()
	show("setFull")
	return nil
}

func run(prof profile.Profile, profilePath, broker string, heartbeat time.Duration, httpAddr string, pin int) error {
	l, err := lamp.New(prof.Name, prof.MaxLevel)
	if err != nil {
		return err
	}

	// Initialize MQTT
	client, err := mqtt.NewRealClient(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer client.Close()

	// Initialize GPIO output
	var driver gpio.Driver
	if pin >= 0 {
		realDriver, err := gpio.NewRealDriver(pin)
		if err != nil {
			return fmt.Errorf("init gpio: %w", err)
		}
		defer realDriver.Close()
		driver = realDriver
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		Broker:      broker,
		HTTPPort:    httpAddr,
		HeartbeatMs: heartbeat.Milliseconds(),
		Pin:         pin,
		ProfilePath: profilePath,
	})
	tracker.Update(l.Name, l.CurrentLevel, l.MaxLevel, status.EventCounts{})
	tracker.SetMQTTConnected(client.IsConnected())

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := client.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: device=%s max=%d broker=%s heartbeat=%v", l.Name, l.MaxLevel, broker, heartbeat)

	var heartbeatC <-chan time.Time
	if heartbeat > 0 {
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		heartbeatC = ticker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(l, client.Commands(), client, client, driver, tracker, time.Now, heartbeatC, sigCh)
}

// publishNotifier routes power notifications to the MQTT publisher.
type publishNotifier struct {
	pub mqtt.Publisher
}

func (p publishNotifier) Notify(event power.Event) error {
	return p.pub.PublishPower(event)
}

func runLoop(l *lamp.Lamp, cmds <-chan mqtt.Command, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, driver gpio.Driver, tracker *status.Tracker, now func() time.Time, heartbeat <-chan time.Time, sig <-chan os.Signal) error {
	var counts status.EventCounts

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-heartbeat:
			if tracker == nil {
				continue
			}
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
			tracker.Update(l.Name, l.CurrentLevel, l.MaxLevel, counts)
			snap := tracker.Snapshot()
			log.Printf("heartbeat: uptime=%v level=%d/%d", snap.Uptime().Truncate(time.Second), l.CurrentLevel, l.MaxLevel)
			hbEvent := mqtt.SystemEvent{
				Timestamp:  snap.Now,
				Event:      "HEARTBEAT",
				RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
			}
			if err := publisher.PublishSystem(hbEvent); err != nil {
				log.Printf("heartbeat publish error: %v", err)
			}

		case cmd := <-cmds:
			t := now()
			applied, err := applyCommand(l, cmd, t, publisher, &counts)
			if err != nil {
				// Don't crash on publish failure
				log.Printf("command %s: %v", cmd.Action, err)
			}
			if !applied {
				log.Printf("command %s ignored (lamp is off)", cmd.Action)
				continue
			}

			log.Printf("command: %s (level %d/%d)", cmd.Action, l.CurrentLevel, l.MaxLevel)

			stateEvent := mqtt.StateEvent{
				Timestamp: t,
				Command:   strings.ToUpper(string(cmd.Action)),
				Device:    l.Name,
				Level:     l.CurrentLevel,
				MaxLevel:  l.MaxLevel,
			}
			if err := publisher.PublishState(stateEvent); err != nil {
				log.Printf("publish error: %v", err)
			}

			if tracker != nil {
				tracker.Update(l.Name, l.CurrentLevel, l.MaxLevel, counts)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if driver != nil {
				if err := driver.Apply(l.IsOn()); err != nil {
					log.Printf("gpio apply error: %v", err)
				}
			}
		}
	}
}

// applyCommand applies one command to the lamp. It reports whether the
// lamp state changed (a surge on an off lamp is a no-op) and any
// notification publish error; power-event mutations are kept even when
// the notification fails.
func applyCommand(l *lamp.Lamp, cmd mqtt.Command, t time.Time, publisher mqtt.Publisher, counts *status.EventCounts) (bool, error) {
	n := publishNotifier{pub: publisher}

	switch cmd.Action {
	case mqtt.ActionIncrease:
		l.Increase(cmd.Amount)
		counts.Increase++
		return true, nil
	case mqtt.ActionDecrease:
		l.Decrease(cmd.Amount)
		counts.Decrease++
		return true, nil
	case mqtt.ActionOff:
		l.SetOff()
		counts.Off++
		return true, nil
	case mqtt.ActionFull:
		l.SetFull()
		counts.Full++
		return true, nil
	case mqtt.ActionOutage:
		counts.Outage++
		return true, power.Outage(l, t, n)
	case mqtt.ActionSurge:
		fired, err := power.Surge(l, t, n)
		if fired {
			counts.Surge++
		}
		return fired, err
	default:
		// ParseCommand rejects unknown actions before they get here.
		return false, fmt.Errorf("unknown action %q", cmd.Action)
	}
}
