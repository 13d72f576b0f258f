package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"dscheirer.com/segtimer/display"
	"dscheirer.com/segtimer/strip"
)

var wg sync.WaitGroup

// build tags add to this
var features []string

// segtimer -config={config file}

func openStrip(s *settings, l display.Layout) (*strip.Strip, error) {
	if s.GetBool(sSimulated) {
		return strip.New(l.Total(), &strip.LogDriver{DisableLog: !s.GetBool(sDebugDump)}), nil
	}
	d, err := strip.OpenAPA102(s.GetString(sSPIPort), l.Total(), s.GetByte(sIntensity))
	if err != nil {
		return nil, err
	}
	return strip.New(l.Total(), d), nil
}

func layoutFrom(s *settings) display.Layout {
	return display.Layout{
		LEDsPerSegment: s.GetInt(sLEDsPerSegment),
		LEDsPerDot:     s.GetInt(sLEDsPerDot),
	}
}

func main() {
	configFile := flag.String("config", "", "JSON settings file")
	flag.Parse()

	// read config information
	s := initSettings(*configFile)

	closer, err := setupLogging(s)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	log.Printf("segtimer starting, features: %s", strings.Join(features, ","))
	s.Dump()

	rt := initRuntime(s)
	layout := layoutFrom(s)
	leds, err := openStrip(s, layout)
	if err != nil {
		log.Fatalf("open led strip: %v", err)
	}

	// ^C and SIGTERM take everything down
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Printf("caught %v", sig)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	// the boot sweep owns the strip until it's done
	runBoot(rt, leds)

	panel := display.NewPanel(leds, layout)
	ctl := newController(rt, panel, newAlerter(rt))
	ctl.start()

	launch(rt, runLEDController)
	launch(rt, func(rt runtimeConfig) {
		runWatchButtons(rt, ctl.ButtonPress)
	})

	api := &httpAPIService{}
	api.launch(NewHandler(rt, ctl), leds, s.GetString(sAPIAddr))

	<-rt.comms.quit
	log.Println("shutting down")
	api.stop()
	ctl.Close()
	wg.Wait()

	if err := leds.Close(); err != nil {
		log.Printf("close led strip: %v", err)
	}
	log.Println("segtimer stopped")
}
