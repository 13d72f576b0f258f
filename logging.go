package main

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags each line with the worker that wrote it
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+tl.name+"] "+format, v...)
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Println(append([]interface{}{"[" + tl.name + "]"}, v...)...)
}

// setupLogging points the standard logger at a rotated file (and stderr
// when asked).  The returned closer flushes the file.
func setupLogging(s *settings) (io.Closer, error) {
	lj := &lumberjack.Logger{
		Filename:   s.GetString(sLogFile),
		MaxSize:    s.GetInt(sLogMaxSize),
		MaxBackups: s.GetInt(sLogMaxBackups),
		Compress:   true,
	}

	var out io.Writer = lj
	if s.GetBool(sLogStderr) {
		out = io.MultiWriter(os.Stderr, lj)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging to %s", lj.Filename)

	return lj, nil
}
