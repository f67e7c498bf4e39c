package logging

import (
	"log/syslog"
	"strings"
)

// facilities maps configuration names to syslog facility codes
var facilities = map[string]syslog.Priority{
	"kern":   syslog.LOG_KERN,
	"user":   syslog.LOG_USER,
	"mail":   syslog.LOG_MAIL,
	"daemon": syslog.LOG_DAEMON,
	"auth":   syslog.LOG_AUTH,
	"syslog": syslog.LOG_SYSLOG,
	"local0": syslog.LOG_LOCAL0,
	"local1": syslog.LOG_LOCAL1,
	"local2": syslog.LOG_LOCAL2,
	"local3": syslog.LOG_LOCAL3,
	"local4": syslog.LOG_LOCAL4,
	"local5": syslog.LOG_LOCAL5,
	"local6": syslog.LOG_LOCAL6,
	"local7": syslog.LOG_LOCAL7,
}

// facilityPriority resolves a facility name, defaulting to mail
func facilityPriority(name string) syslog.Priority {
	if facility, ok := facilities[strings.ToLower(name)]; ok {
		return facility
	}
	return syslog.LOG_MAIL
}

// newSyslogWriter dials a local syslog unixgram socket
func newSyslogWriter(socket string, facility string, tag string) (*syslog.Writer, error) {
	return syslog.Dial("unixgram", socket, facilityPriority(facility)|syslog.LOG_INFO, tag)
}
