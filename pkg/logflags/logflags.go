package logflags

import (
	"errors"
	"io/ioutil"
	"log"
	"strings"

	"github.com/sirupsen/logrus"
)

var parser = false
var fixture = false
var dap = false

func makeLogger(flag bool, fields logrus.Fields) *logrus.Entry {
	logger := logrus.New().WithFields(fields)
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.PanicLevel
	}
	return logger
}

// Parser returns true if the trace file parser should log the
// directives it processes.
func Parser() bool {
	return parser
}

// ParserLogger returns a logger for the trace file parser.
func ParserLogger() *logrus.Entry {
	return makeLogger(parser, logrus.Fields{"layer": "tracefile"})
}

// Fixture returns true if fixture loading should be logged.
func Fixture() bool {
	return fixture
}

// FixtureLogger returns a logger for the fixture repository.
func FixtureLogger() *logrus.Entry {
	return makeLogger(fixture, logrus.Fields{"layer": "fixture"})
}

// DAP returns true if stepping plan generation should be logged.
func DAP() bool {
	return dap
}

// DAPLogger returns a logger for the DAP stepping planner.
func DAPLogger() *logrus.Entry {
	return makeLogger(dap, logrus.Fields{"layer": "dap"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets logging flags based on the contents of logstr.
func Setup(logFlag bool, logstr string) error {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(ioutil.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "parser"
	}
	v := strings.Split(logstr, ",")
	for _, logcmd := range v {
		switch logcmd {
		case "parser":
			parser = true
		case "fixture":
			fixture = true
		case "dap":
			dap = true
		}
	}
	return nil
}
