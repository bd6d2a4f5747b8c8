// Package rdfglog adapts github.com/golang/glog to the rdf.Logger
// interface, for callers who want the teacher pack's logging library
// wired into Decoder/Encoder diagnostics. The core rdf package never
// imports glog directly; only this adapter does.
package rdfglog

import "github.com/golang/glog"

// Logger is a rdf.Logger backed by glog's levelled, V-gated log streams.
type Logger struct{}

// New returns a glog-backed Logger.
func New() Logger { return Logger{} }

func (Logger) Severe(format string, args ...interface{})  { glog.Errorf(format, args...) }
func (Logger) Warning(format string, args ...interface{}) { glog.Warningf(format, args...) }
func (Logger) Info(format string, args ...interface{})    { glog.Infof(format, args...) }
func (Logger) Fine(format string, args ...interface{}) {
	if glog.V(2) {
		glog.Infof(format, args...)
	}
}
