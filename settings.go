package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"dscheirer.com/segtimer/rgb"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// settings keys
const (
	sLogFile         = "logFile"
	sLogStderr       = "logStderr"
	sLogMaxSize      = "logMaxSizeMB"
	sLogMaxBackups   = "logMaxBackups"
	sDebugDump       = "debugDump"
	sSimulated       = "simulated"
	sSPIPort         = "spiPort"
	sLEDsPerSegment  = "ledsPerSegment"
	sLEDsPerDot      = "ledsPerDot"
	sIntensity       = "intensity"
	sAPIAddr         = "apiAddr"
	sAPIUser         = "apiUser"
	sAPISecret       = "apiSecret"
	sSkipBoot        = "skipBoot"
	sBootStep        = "bootStep"
	sBootDwell       = "bootDwell"
	sColonBlink      = "colonBlink"
	sExpiredBlink    = "expiredBlink"
	sAnimationStep   = "animationStep"
	sAnimationDwell  = "animationDwell"
	sAnimationDelta  = "animationDelta"
	sRandomColors    = "randomColors"
	sDefaultColor    = "defaultColor"
	sStatusPin       = "statusPin"
	sButtonPin       = "buttonPin"
	sButtonPullup    = "buttonPullup"
	sButtonKey       = "buttonKey"
	sButtonSimulated = "buttonSimulated"
	sSound           = "sound"
	sAlertFile       = "alertFile"
	sAlertTones      = "alertTones"
	sAlertTiming     = "alertTiming"
)

// keep settings generic, type-convert on the fly
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sLogFile] = "/var/log/segtimer.log"
	s[sLogStderr] = true
	s[sLogMaxSize] = 10
	s[sLogMaxBackups] = 3
	s[sDebugDump] = false
	s[sSPIPort] = ""
	s[sLEDsPerSegment] = 3
	s[sLEDsPerDot] = 1
	s[sIntensity] = byte(255)
	s[sAPIAddr] = ":8080"
	s[sAPIUser] = "segtimer"
	s[sAPISecret] = ""
	s[sSkipBoot] = false
	s[sBootStep] = 50 * time.Millisecond
	s[sBootDwell] = 2 * time.Second
	s[sColonBlink] = 500 * time.Millisecond
	s[sExpiredBlink] = 750 * time.Millisecond
	s[sAnimationStep] = 50 * time.Millisecond
	s[sAnimationDwell] = 2 * time.Second
	s[sAnimationDelta] = 5
	s[sRandomColors] = 6
	s[sDefaultColor] = "#00ff00"
	s[sStatusPin] = 17
	s[sButtonPin] = 27
	s[sButtonPullup] = true
	s[sButtonKey] = "c"
	s[sButtonSimulated] = false
	s[sSound] = true
	s[sAlertFile] = ""
	s[sAlertTones] = "880,660"
	s[sAlertTiming] = "150ms,100ms,150ms,100ms,150ms,1500ms"

	on := true
	if runtime.GOARCH == "arm" {
		on = false
	}
	s[sSimulated] = on

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, dt, _, err := jsonparser.Get(data, k); err != nil || dt == jsonparser.NotExist {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// try strconv, for "0x70" style values
				var valString string
				if valString, err = jsonparser.GetString(data, k); err == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 255) {
				err = fmt.Errorf("%d out of range for a byte", val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var d time.Duration
				d, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = d
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %q", k)
		}
	}
	return nil
}

func initSettings(configFile string) *settings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()
	if configFile == "" {
		return s
	}

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		log.Fatalf("Could not load conf file '%s', terminating", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	// json parse it
	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}
	if _, err := rgb.ParseHex(s.GetString(sDefaultColor)); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

// GetColor reads a "#rrggbb" setting, black if it doesn't parse
func (s *settings) GetColor(key string) rgb.Color {
	c, err := rgb.ParseHex(s.GetString(key))
	if err != nil {
		return rgb.Black
	}
	return c
}

// GetList splits a comma separated setting
func (s *settings) GetList(key string) []string {
	ret := []string{}
	for _, v := range strings.Split(s.GetString(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

func (s *settings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		if k == sAPISecret && v != "" {
			v = "********"
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
