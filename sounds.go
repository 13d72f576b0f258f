// +build !noaudio

package main

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/bobertlo/go-mpg123/mpg123"
	"github.com/gordonklaus/portaudio"
)

func init() {
	features = append(features, "audio")
}

const sampleRate = 44100

// newAlerter picks the expiry sound from the settings
func newAlerter(rt runtimeConfig) alerter {
	s := rt.settings
	if !s.GetBool(sSound) {
		return &noSounds{}
	}
	if f := s.GetString(sAlertFile); f != "" {
		return &alertPlayer{play: func(stop chan bool) { playMP3(f, stop) }}
	}
	segs := toneSegments(s.GetList(sAlertTones), s.GetList(sAlertTiming))
	return &alertPlayer{play: func(stop chan bool) { playPattern(segs, stop) }}
}

// alertPlayer runs play in the background between start and stop
type alertPlayer struct {
	mu   sync.Mutex
	play func(stop chan bool)
	halt chan bool
}

func (ap *alertPlayer) start() {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	if ap.halt != nil {
		return
	}
	ap.halt = make(chan bool, 1)
	go ap.play(ap.halt)
}

func (ap *alertPlayer) stop() {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	if ap.halt == nil {
		return
	}
	ap.halt <- true
	ap.halt = nil
}

type soundSegment struct {
	frequencies []float64
	duration    time.Duration
	level       float64
	rampDown    time.Duration
}

// this is runtime info for generating the waves
type wave struct {
	step, phase float64
}

// a single segment of sounds, volume, and step information
type playSegment struct {
	steps    int64   // total steps
	level    float64 // volume multiplier
	waves    []wave  // runtime info on the sound
	rampDown int64   // # of steps below which we fade the level
}

type playbackPattern struct {
	*portaudio.Stream
	segments         []playSegment
	curSegment       int
	segmentRemaining int64
}

// toneSegments turns "880,660" and "150ms,100ms,..." into alternating
// sound/silence segments
func toneSegments(sfreqs []string, timing []string) []soundSegment {
	freqs := make([]float64, 0, len(sfreqs))
	for i := range sfreqs {
		f, e := strconv.ParseFloat(sfreqs[i], 64)
		if e != nil {
			log.Printf("bad alert tone %q: %v", sfreqs[i], e)
			continue
		}
		freqs = append(freqs, f)
	}

	segs := make([]soundSegment, 0, len(timing))
	for i := range timing {
		d, e := time.ParseDuration(timing[i])
		if e != nil {
			log.Printf("bad alert timing %q: %v", timing[i], e)
			continue
		}
		segs = append(segs, soundSegment{
			frequencies: freqs,
			duration:    d,
			level:       float64((len(segs) + 1) % 2),
			rampDown:    20 * time.Millisecond,
		})
	}
	return segs
}

// playPattern loops the segments until stop; call it as a goroutine
func playPattern(pattern []soundSegment, stop chan bool) {
	if len(pattern) == 0 {
		<-stop
		return
	}
	if err := portaudio.Initialize(); err != nil {
		log.Printf("portaudio: %v", err)
		<-stop
		return
	}
	defer portaudio.Terminate()

	s := newPlaySegments(pattern)
	if s == nil {
		<-stop
		return
	}
	defer s.Close()
	if err := s.Start(); err != nil {
		log.Println(err.Error())
		<-stop
		return
	}

	// block on the stop
	<-stop
	s.Stop()
}

func newPlaySegments(pattern []soundSegment) *playbackPattern {
	var pb playbackPattern
	pb.curSegment = -1

	pb.segments = make([]playSegment, len(pattern))
	for i := range pattern {
		pb.segments[i].waves = make([]wave, len(pattern[i].frequencies))
		pb.segments[i].level = pattern[i].level
		pb.segments[i].steps = int64(pattern[i].duration * time.Duration(sampleRate) / time.Second)
		pb.segments[i].rampDown = int64(pattern[i].rampDown * time.Duration(sampleRate) / time.Second)
		for w := range pattern[i].frequencies {
			pb.segments[i].waves[w].step = pattern[i].frequencies[w] / sampleRate
		}
	}

	var err error
	pb.Stream, err = portaudio.OpenDefaultStream(0, 2, sampleRate, 0, pb.processAudio)
	if err != nil {
		log.Println(err.Error())
		return nil
	}
	return &pb
}

func (g *playbackPattern) segmentInit(seg *playSegment) {
	g.segmentRemaining = seg.steps
	for i := range seg.waves {
		seg.waves[i].phase = 0
	}
}

func (g *playbackPattern) processAudio(out [][]float32) {
	for i := range out[0] {
		// start the next segment?
		if g.segmentRemaining <= 0 {
			g.curSegment = (g.curSegment + 1) % len(g.segments)
			g.segmentInit(&g.segments[g.curSegment])
		}
		curSeg := &g.segments[g.curSegment]
		g.segmentRemaining--

		// ramp down from normal level to 0 near the end of the segment
		level := curSeg.level
		if curSeg.rampDown > 0 && g.segmentRemaining < curSeg.rampDown {
			level = level * float64(g.segmentRemaining) / float64(curSeg.rampDown)
		}
		var val float32
		for w := range curSeg.waves {
			val += float32(math.Sin(2*math.Pi*curSeg.waves[w].phase) * level)
			_, curSeg.waves[w].phase = math.Modf(curSeg.waves[w].phase + curSeg.waves[w].step)
		}

		// average out the signal (if any)
		if len(curSeg.waves) > 0 {
			val = val / float32(len(curSeg.waves))
		}

		out[0][i] = val // L
		out[1][i] = val // R
	}
}

func getDecoder(fname string) (*mpg123.Decoder, error) {
	decoder, err := mpg123.NewDecoder("")
	if err != nil {
		return nil, err
	}

	if err = decoder.Open(fname); err != nil {
		decoder.Delete()
		return nil, err
	}

	// get audio format information
	rate, channels, _ := decoder.GetFormat()

	// make sure output format does not change
	decoder.FormatNone()
	decoder.Format(rate, channels, mpg123.ENC_SIGNED_16)

	return decoder, nil
}

// playMP3 plays fName on repeat until stop; call it as a goroutine
func playMP3(fName string, stop chan bool) {
	decoder, err := getDecoder(fName)
	if err != nil {
		log.Printf("alert file %s: %v", fName, err)
		<-stop
		return
	}
	defer decoder.Delete()

	if err := portaudio.Initialize(); err != nil {
		log.Printf("portaudio: %v", err)
		<-stop
		return
	}
	defer portaudio.Terminate()

	rate, channels, _ := decoder.GetFormat()
	out := make([]int16, 8192)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(rate), len(out)/channels, &out)
	if err != nil {
		log.Println(err.Error())
		<-stop
		return
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		log.Println(err.Error())
		<-stop
		return
	}
	defer stream.Stop()

	audio := make([]byte, 2*len(out))
	for {
		select {
		case <-stop:
			log.Println("Stopping playback")
			return
		default:
		}

		_, err := decoder.Read(audio)
		if err == mpg123.EOF {
			// around again
			decoder.Close()
			if err := decoder.Open(fName); err != nil {
				log.Printf("replay %s: %v", fName, err)
				<-stop
				return
			}
			continue
		} else if err != nil {
			log.Printf("decode %s: %v", fName, err)
			<-stop
			return
		}
		binary.Read(bytes.NewBuffer(audio), binary.LittleEndian, out)
		if err := stream.Write(); err != nil {
			log.Printf("audio write: %v", err)
		}
	}
}
