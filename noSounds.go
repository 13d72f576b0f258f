package main

import (
	"log"
	"sync"
)

// noSounds is a silent alerter that counts what it was asked to do
type noSounds struct {
	mu       sync.Mutex
	playing  bool
	startCnt int
	stopCnt  int
}

func (ns *noSounds) start() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if ns.playing {
		return
	}
	log.Println("STUB: alert start")
	ns.playing = true
	ns.startCnt++
}

func (ns *noSounds) stop() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if !ns.playing {
		return
	}
	log.Println("STUB: alert stop")
	ns.playing = false
	ns.stopCnt++
}

func (ns *noSounds) counts() (playing bool, starts, stops int) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.playing, ns.startCnt, ns.stopCnt
}
